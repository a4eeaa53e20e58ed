// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package splitter divides a knowledge-base file into N part files.
//
// A run reads every entity from the input, computes near-equal contiguous
// ranges over them and writes range i to
//
//	{base}.part_{i}_of_{N}.xml
//
// where base is the input path without its .xml suffix, moved into the
// output directory when one is given. Parts are written one at a time and
// each file is closed before the next one is opened.
//
// Example usage:
//
//	s := splitter.New(splitter.Options{
//	    InputPath: "kb/entities.xml",
//	    Divisions: 4,
//	}, splitter.WithLogger(logger))
//
//	result, err := s.Run()
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Split %d entities into %d parts\n", result.Entities, len(result.Parts))
package splitter
