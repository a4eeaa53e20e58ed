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

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sirseerhq/kbsplit/internal/config"
	"github.com/sirseerhq/kbsplit/internal/entity"
	kberrors "github.com/sirseerhq/kbsplit/internal/errors"
	"github.com/sirseerhq/kbsplit/internal/splitter"
)

// errUsage marks a wrong positional argument count. It is reported as a
// usage hint on stdout rather than as an error.
var errUsage = errors.New("wrong number of arguments")

// flags holds the optional switches of the root command.
type flags struct {
	configPath string
	legacy     bool
	manifest   bool
	dryRun     bool
	verbose    bool
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetFlagErrorFunc(splitsFlagError(args))
	cmd.SetArgs(args)

	err := cmd.Execute()
	if errors.Is(err, errUsage) {
		printUsage(stdout)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return mapErrorToExitCode(err)
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "kbsplit <file> <splits> [path]",
		Short: "Split a knowledge-base XML file into equal parts",
		Long: `Split a knowledge-base XML file containing <entity> records into
<splits> files of nearly equal entity count.

Part i is written to <file without .xml>.part_<i>_of_<splits>.xml, next to
the input or inside [path] when given. Every part starts with an XML
declaration and wraps its entities in <knowledge_base>.`,
		Version:       version,
		Args:          positionalArgs,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args, f, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(newVerifyCommand(stdout))

	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().BoolVar(&f.legacy, "legacy", false, "Keep stray lines between records the way older split output did (--legacy=false forces strict)")
	cmd.Flags().BoolVar(&f.manifest, "manifest", false, "Write <base>.manifest.json with part checksums")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the part files that would be written and exit")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// positionalArgs accepts <file> <splits> and an optional output directory.
func positionalArgs(_ *cobra.Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errUsage
	}
	return nil
}

// splitsFlagError reports a negative split count, which the flag parser
// sees as an unknown shorthand, as an invalid <splits> argument.
func splitsFlagError(args []string) func(*cobra.Command, error) error {
	return func(_ *cobra.Command, err error) error {
		for _, arg := range args {
			if arg == "--" {
				break
			}
			if len(arg) > 1 && arg[0] == '-' && arg[1] >= '0' && arg[1] <= '9' {
				return fmt.Errorf("splits must be a positive integer, got %s: %w", arg, kberrors.ErrInvalidArgument)
			}
		}
		return err
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Expected arguments: ")
	fmt.Fprintln(w, "  kbsplit <file> <splits> [path]")
}

// runSplit resolves configuration and performs the split.
func runSplit(cmd *cobra.Command, args []string, f flags, stdout, stderr io.Writer) error {
	divisions, err := splitter.ParseDivisions(args[1])
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mode, err := cfg.ReaderMode()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("legacy") {
		mode = entity.ModeStrict
		if f.legacy {
			mode = entity.ModeLegacy
		}
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if f.verbose {
		level = zapcore.DebugLevel
	}
	logger := newLogger(stderr, level)
	defer func() { _ = logger.Sync() }()

	opts := splitter.Options{
		InputPath:   args[0],
		Divisions:   divisions,
		OutputDir:   cfg.Split.OutputDir,
		Mode:        mode,
		Manifest:    cfg.Split.Manifest,
		DryRun:      f.dryRun,
		ToolVersion: version,
	}
	if len(args) == 3 {
		opts.OutputDir = args[2]
	}
	if cmd.Flags().Changed("manifest") {
		opts.Manifest = f.manifest
	}

	result, err := splitter.New(opts, splitter.WithLogger(logger)).Run()
	if err != nil {
		return err
	}

	if f.dryRun {
		for _, p := range result.Parts {
			fmt.Fprintf(stdout, "%s\t%d entities\n", p.Path, p.Entities)
		}
		return nil
	}

	fmt.Fprintf(stderr, "Split %d entities from %s into %d parts in %s\n",
		result.Entities, result.Plan.Input, len(result.Parts), result.Duration.Round(time.Millisecond))
	if result.ManifestPath != "" {
		fmt.Fprintf(stderr, "Manifest written to %s\n", result.ManifestPath)
	}
	return nil
}

// newLogger builds a JSON logger on w using zap's production encoding.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, kberrors.ErrInvalidArgument) {
		return 2
	}

	if errors.Is(err, kberrors.ErrFileAccess) {
		return 3
	}

	return 1 // General error
}
