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

// Package entity reads <entity> records out of a knowledge-base XML file.
//
// The file is scanned line by line rather than parsed as XML. Only two line
// prefixes carry meaning:
//
//	<entity     opens a record
//	</entity>   closes the open record
//
// Every other line is opaque payload and is kept byte for byte, trailing
// newline included, so that records can be written back out unchanged.
// Lines outside of any record are dropped.
//
// Example usage:
//
//	entities, err := entity.ReadFile("kb.xml", entity.ModeStrict)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Read %d entities\n", len(entities))
package entity
