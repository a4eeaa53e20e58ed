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

package output

import "github.com/sirseerhq/kbsplit/internal/entity"

// EntityWriter defines the interface for writing knowledge-base records.
// Implementations own the document wrapper: the first Write (or Close on an
// empty document) emits the header and Close emits the footer.
type EntityWriter interface {
	// Write appends one entity's lines to the document unchanged.
	Write(e entity.Entity) error

	// Close finishes the document and releases any resources.
	// It must be called exactly once, even when no entity was written.
	Close() error
}
