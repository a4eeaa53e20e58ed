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

// Package output writes knowledge-base XML documents.
//
// Each document starts with a fixed XML declaration and a <knowledge_base>
// root element, followed by entity records copied line for line, and ends
// with the closing root tag:
//
//	<?xml version='1.0' encoding='UTF-8'?>
//	<knowledge_base>
//	<entity id="...">
//	...
//	</entity>
//	</knowledge_base>
//
// The primary type is Writer, which wraps an io.Writer or a file. Entity
// lines are written exactly as read; the writer never re-encodes, indents,
// or normalizes line endings.
//
// Example usage:
//
//	w, err := output.NewFileWriter("kb.part_0_of_2.xml")
//	if err != nil {
//	    return err
//	}
//	for _, e := range entities {
//	    if err := w.Write(e); err != nil {
//	        w.Close()
//	        return err
//	    }
//	}
//	if err := w.Close(); err != nil {
//	    return err
//	}
//
//	fmt.Printf("Wrote %d entities\n", w.Count())
package output
