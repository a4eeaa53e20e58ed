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

package splitter

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sirseerhq/kbsplit/internal/entity"
	"github.com/sirseerhq/kbsplit/internal/manifest"
	"github.com/sirseerhq/kbsplit/internal/output"
	"github.com/sirseerhq/kbsplit/internal/partition"
)

// Options configures a split run.
type Options struct {
	// InputPath is the knowledge-base file to split.
	InputPath string

	// Divisions is the number of part files to produce.
	Divisions int

	// OutputDir replaces the input's directory when set.
	OutputDir string

	// Mode selects how the reader treats lines between records.
	Mode entity.Mode

	// Manifest writes {base}.manifest.json after the parts.
	Manifest bool

	// DryRun computes the result without writing any file.
	DryRun bool

	// ToolVersion is recorded in the manifest.
	ToolVersion string
}

// Option customizes a Splitter.
type Option func(*Splitter)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Splitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Splitter runs one split.
type Splitter struct {
	opts   Options
	logger *zap.Logger
}

// Part reports one output file.
type Part struct {
	Index    int
	Path     string
	Entities int
	Bytes    int64
}

// Result summarizes a run.
type Result struct {
	Plan         *Plan
	Entities     int
	Bounds       []int
	Parts        []Part
	ManifestPath string
	Duration     time.Duration
}

// New creates a Splitter for opts.
func New(opts Options, options ...Option) *Splitter {
	s := &Splitter{
		opts:   opts,
		logger: zap.NewNop(),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Run reads the input, then writes every part in order. The first error
// stops the run; parts already written are left in place.
func (s *Splitter) Run() (*Result, error) {
	start := time.Now()

	plan, err := NewPlan(s.opts)
	if err != nil {
		return nil, err
	}

	entities, err := entity.ReadFile(plan.Input, s.opts.Mode)
	if err != nil {
		return nil, err
	}
	var size int
	for _, e := range entities {
		size += e.Size()
	}
	s.logger.Info("Read entities",
		zap.String("input", plan.Input),
		zap.Int("entities", len(entities)),
		zap.Int("bytes", size),
		zap.Stringer("mode", s.opts.Mode))

	bounds, err := partition.Bounds(len(entities), plan.Divisions)
	if err != nil {
		return nil, err
	}
	chunks, err := partition.Split(entities, plan.Divisions)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Plan:     plan,
		Entities: len(entities),
		Bounds:   bounds,
		Parts:    make([]Part, 0, plan.Divisions),
	}

	var tracker *manifest.Tracker
	if s.opts.Manifest && !s.opts.DryRun {
		tracker = manifest.New()
	}

	for i, path := range plan.Parts {
		chunk := chunks[i]
		part := Part{Index: i, Path: path, Entities: len(chunk)}

		if s.opts.DryRun {
			s.logger.Debug("Skipping write in dry run", zap.Int("part", i), zap.String("path", path))
			result.Parts = append(result.Parts, part)
			continue
		}

		stats, err := output.WriteFile(path, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to write part %d of %d: %w", i, plan.Divisions, err)
		}
		part.Entities = stats.Entities
		part.Bytes = stats.Bytes
		result.Parts = append(result.Parts, part)

		s.logger.Info("Wrote part",
			zap.Int("part", i),
			zap.String("path", path),
			zap.Int("entities", part.Entities),
			zap.Int64("bytes", part.Bytes))

		if tracker != nil {
			if err := tracker.RecordPart(i, path, part.Entities); err != nil {
				return nil, err
			}
		}
	}

	if tracker != nil {
		m := tracker.Generate(s.opts.ToolVersion, manifest.RunParams{
			Input:      plan.Input,
			Divisions:  plan.Divisions,
			OutputDir:  s.opts.OutputDir,
			ReaderMode: s.opts.Mode.String(),
		})
		path := manifest.PathFor(plan.Base)
		if err := manifest.Save(m, path); err != nil {
			return nil, err
		}
		result.ManifestPath = path
		s.logger.Info("Wrote manifest", zap.String("path", path), zap.String("run_id", m.RunID))
	}

	result.Duration = time.Since(start)
	s.logger.Debug("Split complete",
		zap.Int("parts", len(result.Parts)),
		zap.Duration("duration", result.Duration))

	return result, nil
}
