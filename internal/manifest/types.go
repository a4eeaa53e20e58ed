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

// Package manifest types define the record written after a split run.
package manifest

import (
	"time"
)

// CurrentVersion is the current manifest schema version.
// Increment this when making breaking changes to the Manifest structure.
const CurrentVersion = 1

// Manifest describes one completed split run: what was read, how it was
// divided and what was written. Downstream jobs use it to find the parts
// and check them for corruption before processing.
type Manifest struct {
	Version     int       `json:"version"`
	RunID       string    `json:"run_id"`
	ToolVersion string    `json:"tool_version"`
	Parameters  RunParams `json:"parameters"`
	Results     RunResult `json:"results"`
	Parts       []Part    `json:"parts"`
}

// RunParams captures the inputs of a split run.
type RunParams struct {
	Input      string `json:"input"`
	Divisions  int    `json:"divisions"`
	OutputDir  string `json:"output_dir,omitempty"`
	ReaderMode string `json:"reader_mode"`
}

// RunResult holds totals and timing for the run.
type RunResult struct {
	TotalEntities int       `json:"total_entities"`
	TotalBytes    int64     `json:"total_bytes"`
	Duration      string    `json:"duration"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Part describes one output file. SHA256 is the hex digest of the whole
// file, header and footer included.
type Part struct {
	Index    int    `json:"index"`
	Path     string `json:"path"`
	Entities int    `json:"entities"`
	Bytes    int64  `json:"bytes"`
	SHA256   string `json:"sha256"`
}
