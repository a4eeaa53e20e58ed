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

// Package manifest records what a split run produced. A manifest lists
// every part file with its entity count, size and SHA-256 digest so that
// downstream consumers can verify the parts before using them.
//
// Manifests are saved as indented JSON next to the part files, using a
// write-to-temp-and-rename pattern so a crash never leaves a half-written
// manifest behind.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	kberrors "github.com/sirseerhq/kbsplit/internal/errors"
)

// Tracker collects part records during a split run. Create one at the start
// of the run and call RecordPart after each part file is closed.
type Tracker struct {
	startTime time.Time
	parts     []Part
}

// New creates a new tracker and initializes it with the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// RecordPart hashes the finished part file at path and adds it to the run.
func (t *Tracker) RecordPart(index int, path string, entities int) error {
	sum, size, err := Checksum(path)
	if err != nil {
		return err
	}

	t.parts = append(t.parts, Part{
		Index:    index,
		Path:     path,
		Entities: entities,
		Bytes:    size,
		SHA256:   sum,
	})
	return nil
}

// Generate creates the Manifest for the run. Call it once every part has
// been recorded.
func (t *Tracker) Generate(toolVersion string, params RunParams) *Manifest {
	completedAt := time.Now()

	result := RunResult{
		Duration:    completedAt.Sub(t.startTime).String(),
		StartedAt:   t.startTime,
		CompletedAt: completedAt,
	}
	parts := make([]Part, len(t.parts))
	copy(parts, t.parts)
	for _, p := range parts {
		result.TotalEntities += p.Entities
		result.TotalBytes += p.Bytes
	}

	return &Manifest{
		Version:     CurrentVersion,
		RunID:       uuid.NewString(),
		ToolVersion: toolVersion,
		Parameters:  params,
		Results:     result,
		Parts:       parts,
	}
}

// PathFor returns the manifest location for a split whose parts share the
// given base path.
// Returns: {base}.manifest.json
func PathFor(base string) string {
	return base + ".manifest.json"
}

// Save atomically writes m to path as indented JSON.
func Save(m *Manifest, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w: %w", kberrors.ErrFileAccess, err)
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w: %w", kberrors.ErrFileAccess, err)
	}

	if err := Write(m, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write manifest: %w: %w", kberrors.ErrFileAccess, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to sync manifest file: %w: %w", kberrors.ErrFileAccess, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close manifest file: %w: %w", kberrors.ErrFileAccess, err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save manifest file: %w: %w", kberrors.ErrFileAccess, err)
	}
	return nil
}

// Load reads a manifest and checks its schema version.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w: %w", path, kberrors.ErrFileAccess, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest %s is corrupted (invalid JSON): %w", path, err)
	}
	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("manifest version (%d) is incompatible with current version (%d)",
			m.Version, CurrentVersion)
	}
	return &m, nil
}

// Verify re-hashes every part listed in m and reports the first one whose
// size or digest no longer matches.
func Verify(m *Manifest) error {
	for _, p := range m.Parts {
		sum, size, err := Checksum(p.Path)
		if err != nil {
			return err
		}
		if size != p.Bytes || sum != p.SHA256 {
			return fmt.Errorf("part %d (%s) is corrupted (checksum mismatch)", p.Index, p.Path)
		}
	}
	return nil
}

// Write serializes m as indented JSON to w.
func Write(m *Manifest, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(m)
}

// Checksum returns the hex SHA-256 digest and size of the file at path.
func Checksum(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open %s for checksum: %w: %w", path, kberrors.ErrFileAccess, err)
	}
	defer file.Close()

	hash := sha256.New()
	n, err := io.Copy(hash, file)
	if err != nil {
		return "", 0, fmt.Errorf("failed to hash %s: %w: %w", path, kberrors.ErrFileAccess, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), n, nil
}
