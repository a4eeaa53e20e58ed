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
	"path/filepath"
	"strconv"
	"strings"

	kberrors "github.com/sirseerhq/kbsplit/internal/errors"
)

// Plan lists the files a run will produce. It is derived from the options
// alone, before any file is touched.
type Plan struct {
	Input     string
	Base      string
	Divisions int
	Parts     []string
}

// NewPlan validates opts and derives every output path.
func NewPlan(opts Options) (*Plan, error) {
	if strings.TrimSpace(opts.InputPath) == "" {
		return nil, fmt.Errorf("input file must not be empty: %w", kberrors.ErrInvalidArgument)
	}
	if opts.Divisions < 1 {
		return nil, fmt.Errorf("splits must be at least 1, got %d: %w", opts.Divisions, kberrors.ErrInvalidArgument)
	}

	base := BasePath(opts.InputPath, opts.OutputDir)
	parts := make([]string, opts.Divisions)
	for i := range parts {
		parts[i] = PartPath(base, i, opts.Divisions)
	}

	return &Plan{
		Input:     opts.InputPath,
		Base:      base,
		Divisions: opts.Divisions,
		Parts:     parts,
	}, nil
}

// BasePath strips a trailing .xml from inputPath and, when outputDir is set,
// moves the remaining file name into outputDir.
func BasePath(inputPath, outputDir string) string {
	base := strings.TrimSuffix(inputPath, ".xml")
	if outputDir != "" {
		base = filepath.Join(outputDir, filepath.Base(base))
	}
	return base
}

// PartPath names part i of divisions.
func PartPath(base string, i, divisions int) string {
	return fmt.Sprintf("%s.part_%d_of_%d.xml", base, i, divisions)
}

// ParseDivisions parses the split count argument.
func ParseDivisions(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("splits must be a positive integer, got %q: %w", s, kberrors.ErrInvalidArgument)
	}
	if n < 1 {
		return 0, fmt.Errorf("splits must be a positive integer, got %d: %w", n, kberrors.ErrInvalidArgument)
	}
	return n, nil
}
