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

package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

const (
	partHeader = "<?xml version='1.0' encoding='UTF-8'?>\n<knowledge_base>\n"
	partFooter = "</knowledge_base>\n"
)

// PartPath returns the file name kbsplit uses for part i of n.
func PartPath(base string, i, n int) string {
	return fmt.Sprintf("%s.part_%d_of_%d.xml", base, i, n)
}

// ReadPartBody validates the wrapper of a part file and returns the entity
// text between header and footer.
func ReadPartBody(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read part file: %v", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, partHeader) {
		t.Fatalf("Part %s does not start with the XML declaration and root tag:\n%s", path, content)
	}
	if !strings.HasSuffix(content, partFooter) {
		t.Fatalf("Part %s does not end with the closing root tag:\n%s", path, content)
	}
	return strings.TrimSuffix(strings.TrimPrefix(content, partHeader), partFooter)
}

// AssertPartEntityCount checks how many records a part file holds
func AssertPartEntityCount(t *testing.T, path string, expected int) {
	t.Helper()

	got := 0
	for _, line := range strings.SplitAfter(ReadPartBody(t, path), "\n") {
		if strings.HasPrefix(line, "<entity ") {
			got++
		}
	}
	if got != expected {
		t.Errorf("Expected %d entities in %s, got %d", expected, path, got)
	}
}

// AssertPartsReassemble checks that the parts, concatenated in order,
// reproduce entities exactly.
func AssertPartsReassemble(t *testing.T, paths []string, entities []string) {
	t.Helper()

	var got strings.Builder
	for _, path := range paths {
		got.WriteString(ReadPartBody(t, path))
	}
	want := strings.Join(entities, "")
	if got.String() != want {
		t.Errorf("Reassembled parts differ from input entities\nGot:\n%s\nWant:\n%s", got.String(), want)
	}
}
