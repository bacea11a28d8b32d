// Copyright 2025 go-locality Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package locality

import (
	"fmt"
	"strings"
)

// Order is the sequence in which a mapping function visits elements.
type Order int

const (
	// RowMajor visits row 0 left to right, then row 1, and so on.
	RowMajor Order = iota

	// ColMajor visits column 0 top to bottom, then column 1, and so on.
	ColMajor

	// BlockMajor visits all elements of one block (row-major inside the
	// block) before moving on to the next block, blocks themselves taken in
	// row-major order.
	BlockMajor
)

// String returns the flag-style name of the order.
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	case BlockMajor:
		return "block-major"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder converts a name such as "row-major", "col" or "block-major"
// into an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row-major", "row", "rowmajor":
		return RowMajor, nil
	case "col-major", "col", "column-major", "colmajor":
		return ColMajor, nil
	case "block-major", "block", "blockmajor":
		return BlockMajor, nil
	default:
		return 0, fmt.Errorf("unknown order %q (want row-major, col-major or block-major)", s)
	}
}
