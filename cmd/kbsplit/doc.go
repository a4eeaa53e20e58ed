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

// Package main implements the kbsplit command-line interface.
// This tool splits a knowledge-base XML file of <entity> records into
// N roughly equal part files, each wrapped in <knowledge_base>.
//
// The CLI supports:
//   - Splitting next to the input file or into another directory
//   - Legacy reader behaviour for byte-compatible output (--legacy)
//   - A JSON manifest with per-part checksums (--manifest)
//   - Previewing the output files without writing them (--dry-run)
//   - Checking parts against a manifest (kbsplit verify <manifest.json>)
//
// Usage:
//
//	kbsplit <file> <splits> [path]
//	kbsplit verify <manifest.json>
//
// Example:
//
//	kbsplit kb/entities.xml 4 /scratch/parts
//
// Exit codes:
//   - 0: Success
//   - 1: Wrong number of arguments, failed verification or general error
//   - 2: Invalid argument or configuration
//   - 3: Input or output file could not be accessed
package main
