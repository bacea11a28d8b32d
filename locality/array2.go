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

// DefaultBlockBytes is the per-block memory budget used when a caller asks
// for a blocked array without choosing a block size. 64KiB keeps one block
// within a typical L2 cache.
const DefaultBlockBytes = 64 * 1024

// Visitor is called once per element during a traversal with the
// element's absolute coordinates and a pointer into the array's storage.
// The pointer may be read or written; it must not be retained past the
// array's lifetime.
type Visitor[T any] func(col, row int, elem *T)

// Array2 is the capability shared by the two-dimensional array layouts:
// index by coordinate and iterate in the layout's preferred order.
type Array2[T any] interface {
	// Width returns the number of columns.
	Width() int
	// Height returns the number of rows.
	Height() int
	// ElemSize returns the size in bytes of one element.
	ElemSize() int
	// BlockSize returns the edge length of one storage block; 1 for
	// unblocked layouts.
	BlockSize() int
	// At returns the element at (col, row), or an error if the coordinate
	// is out of range.
	At(col, row int) (*T, error)
	// MustAt is like At but panics on an invalid coordinate.
	MustAt(col, row int) *T
	// Map visits every element in the layout's default order.
	Map(visit Visitor[T]) error
}
