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
	"path/filepath"
	"strings"
	"testing"
)

// KnowledgeBaseBuilder provides a fluent API for creating test knowledge-base files
type KnowledgeBaseBuilder struct {
	preamble []string
	chunks   []string
	entities []string
	newline  string
}

// NewKnowledgeBaseBuilder creates a builder that emits the standard
// declaration and root element.
func NewKnowledgeBaseBuilder() *KnowledgeBaseBuilder {
	return &KnowledgeBaseBuilder{
		preamble: []string{"<?xml version='1.0' encoding='UTF-8'?>", "<knowledge_base>"},
		newline:  "\n",
	}
}

// WithCRLF switches every line terminator to \r\n.
func (b *KnowledgeBaseBuilder) WithCRLF() *KnowledgeBaseBuilder {
	b.newline = "\r\n"
	return b
}

// WithPreamble adds a line before the first entity.
func (b *KnowledgeBaseBuilder) WithPreamble(line string) *KnowledgeBaseBuilder {
	b.preamble = append(b.preamble, line)
	return b
}

// WithEntities appends n entities with sequential IDs and a few facts each.
func (b *KnowledgeBaseBuilder) WithEntities(n int) *KnowledgeBaseBuilder {
	for i := 0; i < n; i++ {
		id := len(b.entities)
		lines := []string{
			fmt.Sprintf("<entity wiki_title=\"Entity_%d\" type=\"ORG\" id=\"E%07d\" name=\"Entity %d\">", id, id, id),
			"  <facts class=\"Infobox company\">",
			fmt.Sprintf("    <fact name=\"founded\">  %d  </fact>", 1900+id%100),
			"  </facts>",
			"</entity>",
		}
		text := strings.Join(lines, b.newline) + b.newline
		b.entities = append(b.entities, text)
		b.chunks = append(b.chunks, text)
	}
	return b
}

// WithStrayLine inserts a line between records that belongs to no entity.
func (b *KnowledgeBaseBuilder) WithStrayLine(line string) *KnowledgeBaseBuilder {
	b.chunks = append(b.chunks, line+b.newline)
	return b
}

// Entities returns the text of every entity added so far, in order.
func (b *KnowledgeBaseBuilder) Entities() []string {
	return append([]string(nil), b.entities...)
}

// Build renders the complete file content.
func (b *KnowledgeBaseBuilder) Build() string {
	var sb strings.Builder
	for _, line := range b.preamble {
		sb.WriteString(line + b.newline)
	}
	for _, chunk := range b.chunks {
		sb.WriteString(chunk)
	}
	sb.WriteString("</knowledge_base>" + b.newline)
	return sb.String()
}

// WriteFile writes the knowledge base into dir under name and returns the path.
func (b *KnowledgeBaseBuilder) WriteFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.Build()), 0o644); err != nil {
		t.Fatalf("Failed to write knowledge base: %v", err)
	}
	return path
}
