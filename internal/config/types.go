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

// Package config types define the configuration structures used throughout
// kbsplit. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for kbsplit.
type Config struct {
	Split   SplitConfig   `yaml:"split"`
	Logging LoggingConfig `yaml:"logging"`
}

// SplitConfig contains defaults for every split run. Positional arguments
// and flags on the command line take precedence over these values.
type SplitConfig struct {
	// OutputDir is used when no output directory argument is given.
	// Empty means next to the input file.
	OutputDir string `yaml:"output_dir"`

	// ReaderMode is "strict" or "legacy".
	ReaderMode string `yaml:"reader_mode"`

	// Manifest enables writing a JSON manifest next to the parts.
	Manifest bool `yaml:"manifest"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases.
func DefaultConfig() *Config {
	return &Config{
		Split: SplitConfig{
			OutputDir:  "",
			ReaderMode: "strict",
			Manifest:   false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
