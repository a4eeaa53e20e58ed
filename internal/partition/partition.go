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

// Package partition divides an ordered sequence into contiguous ranges of
// near-equal size.
package partition

import (
	"fmt"

	kberrors "github.com/sirseerhq/kbsplit/internal/errors"
)

// Bounds returns the divisions+1 fenceposts that cut a sequence of the given
// length into divisions contiguous ranges. Range i is [b[i], b[i+1]).
// b[i] is floor(length*i/divisions), so range sizes never differ by more
// than one and ranges are empty when divisions exceeds length.
func Bounds(length, divisions int) ([]int, error) {
	if divisions < 1 {
		return nil, fmt.Errorf("divisions must be at least 1, got %d: %w", divisions, kberrors.ErrInvalidArgument)
	}
	if length < 0 {
		return nil, fmt.Errorf("length must not be negative, got %d: %w", length, kberrors.ErrInvalidArgument)
	}

	bounds := make([]int, 0, divisions+1)
	for i := 0; i < divisions; i++ {
		bounds = append(bounds, length*i/divisions)
	}
	bounds = append(bounds, length)
	return bounds, nil
}

// Split cuts items into divisions sub-slices using Bounds.
// The sub-slices share items' backing array.
func Split[T any](items []T, divisions int) ([][]T, error) {
	bounds, err := Bounds(len(items), divisions)
	if err != nil {
		return nil, err
	}

	parts := make([][]T, divisions)
	for i := range parts {
		parts[i] = items[bounds[i]:bounds[i+1]:bounds[i+1]]
	}
	return parts, nil
}
