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

package entity

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	kberrors "github.com/sirseerhq/kbsplit/internal/errors"
)

const (
	// OpenPrefix marks the first line of a record.
	OpenPrefix = "<entity "

	// ClosePrefix marks the last line of a record.
	ClosePrefix = "</entity>"
)

// Mode controls what the reader does with lines that fall between a closing
// tag and the next opening tag.
type Mode int

const (
	// ModeStrict treats the gap between records as outside any record.
	// Stray lines are dropped and a stray closing tag is ignored.
	ModeStrict Mode = iota

	// ModeLegacy keeps an empty record open after every closing tag.
	// Stray lines are absorbed into it and thrown away when the next record
	// opens, but a stray closing tag emits them as a record of their own.
	// Output matches files produced by the original split_kb tooling.
	ModeLegacy
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration value into a Mode.
// The empty string selects ModeStrict.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ModeStrict, nil
	case "legacy":
		return ModeLegacy, nil
	default:
		return ModeStrict, fmt.Errorf("unknown reader mode %q (expected strict or legacy): %w", s, kberrors.ErrInvalidArgument)
	}
}

// Entity is one record: its raw lines in file order, each with its original
// line terminator. Callers must not modify the returned slices.
type Entity []string

// Size returns the number of bytes the entity occupies on disk.
func (e Entity) Size() int {
	n := 0
	for _, line := range e {
		n += len(line)
	}
	return n
}

// ReadFile loads every complete record from the file at path.
// The whole file is consumed before returning.
func ReadFile(path string, mode Mode) ([]Entity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w: %w", path, kberrors.ErrFileAccess, err)
	}
	defer file.Close()

	entities, err := Read(file, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return entities, nil
}

// Read scans r line by line and returns the complete records in order.
// A record still open at end of input is dropped without error.
func Read(r io.Reader, mode Mode) ([]Entity, error) {
	br := bufio.NewReader(r)

	var (
		entities []Entity
		current  Entity
		// active is false until the first opening tag, and in strict
		// mode again after every closing tag.
		active bool
	)

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			switch {
			case strings.HasPrefix(line, OpenPrefix):
				current = Entity{line}
				active = true
			case strings.HasPrefix(line, ClosePrefix):
				if active {
					current = append(current, line)
					entities = append(entities, current)
					current = nil
					active = mode == ModeLegacy
				}
			case active:
				current = append(current, line)
			}
		}

		if errors.Is(err, io.EOF) {
			return entities, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", kberrors.ErrFileAccess, err)
		}
	}
}
