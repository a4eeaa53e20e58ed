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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	kberrors "github.com/sirseerhq/kbsplit/internal/errors"
	"github.com/sirseerhq/kbsplit/internal/manifest"
)

// newVerifyCommand creates the verify subcommand, which re-hashes the parts
// listed in a manifest written by --manifest.
func newVerifyCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <manifest.json>",
		Short: "Check part files against a split manifest",
		Long: `Verify loads a manifest written with --manifest and checks that every
part file it lists still has the recorded size and SHA-256 digest.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("verify expects one manifest path, got %d arguments: %w", len(args), kberrors.ErrInvalidArgument)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args[0], stdout)
		},
	}
}

// runVerify checks the parts listed in the manifest at path
func runVerify(path string, stdout io.Writer) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if err := manifest.Verify(m); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Verified %d parts (%d entities) from %s\n",
		len(m.Parts), m.Results.TotalEntities, path)
	return nil
}
