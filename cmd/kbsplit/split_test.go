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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kberrors "github.com/sirseerhq/kbsplit/internal/errors"
)

const usageText = "Expected arguments: \n  kbsplit <file> <splits> [path]\n"

// isolateEnv keeps config discovery and environment overrides out of the test.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("KBSPLIT_OUTPUT_DIR", "")
	t.Setenv("KBSPLIT_READER_MODE", "")
	t.Setenv("KBSPLIT_MANIFEST", "")
	t.Setenv("KBSPLIT_LOG_LEVEL", "error")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeInput(t *testing.T, dir string, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='UTF-8'?>\n<knowledge_base>\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "<entity id=\"E%d\" name=\"Entity %d\">\n  <type>ORG</type>\n</entity>\n", i, i)
	}
	b.WriteString("</knowledge_base>\n")

	path := filepath.Join(dir, "kb.xml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRun_WrongArgumentCount(t *testing.T) {
	dir := isolateEnv(t)
	input := writeInput(t, dir, 3)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "one argument", args: []string{input}},
		{name: "four arguments", args: []string{input, "2", dir, "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout != usageText {
				t.Errorf("stdout = %q, want usage text", stdout)
			}
			if stderr != "" {
				t.Errorf("stderr = %q, want empty", stderr)
			}
		})
	}

	if names := listDir(t, dir); len(names) != 1 || names[0] != "kb.xml" {
		t.Errorf("files after usage errors = %v, want only kb.xml", names)
	}
}

func TestRun_Split(t *testing.T) {
	dir := isolateEnv(t)
	input := writeInput(t, dir, 5)

	code, stdout, stderr := runCLI(input, "2")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "Split 5 entities") {
		t.Errorf("stderr = %q, want summary line", stderr)
	}

	for i, want := range []int{2, 3} {
		path := filepath.Join(dir, fmt.Sprintf("kb.part_%d_of_2.xml", i))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("part %d missing: %v", i, err)
		}
		if got := strings.Count(string(data), "<entity "); got != want {
			t.Errorf("part %d has %d entities, want %d", i, got, want)
		}
		if !strings.HasPrefix(string(data), "<?xml version='1.0' encoding='UTF-8'?>\n<knowledge_base>\n") {
			t.Errorf("part %d does not start with the declaration and root tag", i)
		}
	}
}

func TestRun_OutputDirArgument(t *testing.T) {
	dir := isolateEnv(t)
	input := writeInput(t, dir, 4)
	outDir := filepath.Join(dir, "parts")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	code, _, stderr := runCLI(input, "4", outDir)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if got := len(listDir(t, outDir)); got != 4 {
		t.Errorf("output dir has %d files, want 4", got)
	}
}

func TestRun_InvalidSplits(t *testing.T) {
	dir := isolateEnv(t)
	input := writeInput(t, dir, 2)

	for _, splits := range []string{"0", "abc", "2.5", "-1", "-12"} {
		t.Run(splits, func(t *testing.T) {
			code, _, stderr := runCLI(input, splits)
			if code != 2 {
				t.Errorf("exit code = %d, want 2", code)
			}
			if !strings.Contains(stderr, "splits must be a positive integer") {
				t.Errorf("stderr = %q, want splits error", stderr)
			}
		})
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := isolateEnv(t)
	missing := filepath.Join(dir, "absent.xml")

	code, _, stderr := runCLI(missing, "2")
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if !strings.HasPrefix(stderr, "Error: ") || !strings.Contains(stderr, missing) {
		t.Errorf("stderr = %q, want error naming %s", stderr, missing)
	}
}

func TestRun_DryRun(t *testing.T) {
	dir := isolateEnv(t)
	input := writeInput(t, dir, 3)

	code, stdout, stderr := runCLI("--dry-run", input, "3")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	for i := 0; i < 3; i++ {
		want := fmt.Sprintf("%s\t1 entities\n", filepath.Join(dir, fmt.Sprintf("kb.part_%d_of_3.xml", i)))
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout = %q, want line %q", stdout, want)
		}
	}
	if names := listDir(t, dir); len(names) != 1 {
		t.Errorf("dry run wrote files: %v", names)
	}
}

func TestRun_ManifestFlagAndConfig(t *testing.T) {
	dir := isolateEnv(t)
	input := writeInput(t, dir, 2)
	configPath := filepath.Join(dir, "kbsplit.yaml")
	if err := os.WriteFile(configPath, []byte("split:\n  manifest: true\n  reader_mode: legacy\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	code, _, stderr := runCLI("--config", configPath, input, "1")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	manifestPath := filepath.Join(dir, "kb.manifest.json")
	if _, err := os.Stat(manifestPath); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	if err := os.Remove(manifestPath); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	// An explicit --manifest=false wins over the config file.
	code, _, stderr = runCLI("--config", configPath, "--manifest=false", input, "1")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if _, err := os.Stat(manifestPath); !os.IsNotExist(err) {
		t.Error("manifest written despite --manifest=false")
	}
}

func TestRun_NegativeSplitsNamedInError(t *testing.T) {
	dir := isolateEnv(t)
	input := writeInput(t, dir, 2)

	tests := []struct {
		name string
		args []string
	}{
		{name: "with output dir", args: []string{input, "-3", dir}},
		{name: "after flags", args: []string{"--dry-run", input, "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(tt.args...)
			if code != 2 {
				t.Errorf("exit code = %d, want 2", code)
			}
			if !strings.Contains(stderr, "got -3") {
				t.Errorf("stderr = %q, want the rejected value named", stderr)
			}
		})
	}

	// Other flag errors keep their own message and exit code.
	code, _, stderr := runCLI("--bogus", input, "2")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "unknown flag") {
		t.Errorf("stderr = %q, want unknown flag error", stderr)
	}
}

func TestRun_LegacyFlagOverridesConfig(t *testing.T) {
	dir := isolateEnv(t)
	input := filepath.Join(dir, "kb.xml")
	content := "<entity id=\"E1\">\n</entity>\n</entity>\n<entity id=\"E2\">\n</entity>\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	configPath := filepath.Join(dir, "kbsplit.yaml")
	if err := os.WriteFile(configPath, []byte("split:\n  reader_mode: legacy\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	part := filepath.Join(dir, "kb.part_0_of_1.xml")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "config legacy", args: []string{"--config", configPath, input, "1"}, want: 3},
		{name: "flag forces strict", args: []string{"--config", configPath, "--legacy=false", input, "1"}, want: 2},
		{name: "flag forces legacy", args: []string{"--legacy", input, "1"}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(tt.args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, stderr)
			}
			data, err := os.ReadFile(part)
			if err != nil {
				t.Fatalf("part missing: %v", err)
			}
			if got := strings.Count(string(data), "</entity>\n"); got != tt.want {
				t.Errorf("part has %d records, want %d", got, tt.want)
			}
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := isolateEnv(t)
	input := writeInput(t, dir, 2)
	configPath := filepath.Join(dir, "kbsplit.yaml")
	if err := os.WriteFile(configPath, []byte("split:\n  reader_mode: sloppy\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	code, _, stderr := runCLI("--config", configPath, input, "1")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "invalid configuration") {
		t.Errorf("stderr = %q, want configuration error", stderr)
	}
}

func TestRun_Version(t *testing.T) {
	isolateEnv(t)

	code, stdout, _ := runCLI("--version")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, version) {
		t.Errorf("stdout = %q, want version %s", stdout, version)
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: 0,
		},
		{
			name:     "general error",
			err:      os.ErrClosed,
			wantCode: 1,
		},
		{
			name:     "invalid argument",
			err:      fmt.Errorf("bad splits: %w", kberrors.ErrInvalidArgument),
			wantCode: 2,
		},
		{
			name:     "file access",
			err:      fmt.Errorf("open kb.xml: %w", kberrors.ErrFileAccess),
			wantCode: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorToExitCode(tt.err)
			if got != tt.wantCode {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
		})
	}
}
