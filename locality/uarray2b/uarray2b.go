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

package uarray2b

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/ajroetker/go-locality/locality"
	"github.com/ajroetker/go-locality/locality/uarray"
	"github.com/ajroetker/go-locality/locality/uarray2"
)

var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("uarray2b: invalid dimensions")

	// ErrInvalidBlockSize is returned when the block size is not positive.
	ErrInvalidBlockSize = errors.New("uarray2b: invalid block size")

	// ErrInvalidElementSize is returned for zero-sized element types.
	ErrInvalidElementSize = errors.New("uarray2b: element type has zero size")

	// ErrInvalidBudget is returned when the per-block byte budget is not positive.
	ErrInvalidBudget = errors.New("uarray2b: invalid block byte budget")

	// ErrOutOfBounds is returned by At for a coordinate outside the grid.
	ErrOutOfBounds = errors.New("uarray2b: coordinate out of bounds")

	// ErrNilVisitor is returned by the traversals when visit is nil.
	ErrNilVisitor = errors.New("uarray2b: nil visitor")

	// ErrReleased is returned by accesses and traversals after Release.
	ErrReleased = errors.New("uarray2b: grid has been released")
)

// Grid is a width x height array of T stored in square blocks.
//
// A Grid never moves its blocks after construction, so pointers returned by
// At remain valid until Release is called.
type Grid[T any] struct {
	width     int
	height    int
	blockSize int

	// blocks is indexed by block coordinate; nil once released.
	blocks *uarray2.Array2[*uarray.Array[T]]
}

var _ locality.Array2[int] = (*Grid[int])(nil)

// New creates a grid with the given dimensions and block edge length.
// Every block is allocated with blockSize*blockSize zeroed elements.
func New[T any](width, height, blockSize int) (*Grid[T], error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}
	if blockSize > math.MaxInt/blockSize {
		return nil, fmt.Errorf("%w: %d*%d elements overflows int", ErrInvalidBlockSize, blockSize, blockSize)
	}
	if elemSize[T]() == 0 {
		return nil, ErrInvalidElementSize
	}

	blockedWidth := ceilDiv(width, blockSize)
	blockedHeight := ceilDiv(height, blockSize)
	if blockedWidth > 0 && blockedHeight > math.MaxInt/blockedWidth {
		return nil, fmt.Errorf("%w: %dx%d blocks overflows int", ErrInvalidDimensions, blockedWidth, blockedHeight)
	}

	blocks, err := uarray2.New[*uarray.Array[T]](blockedWidth, blockedHeight)
	if err != nil {
		return nil, err
	}
	for br := range blockedHeight {
		for bc := range blockedWidth {
			block, err := uarray.New[T](blockSize * blockSize)
			if err != nil {
				return nil, err
			}
			*blocks.MustAt(bc, br) = block
		}
	}

	return &Grid[T]{
		width:     width,
		height:    height,
		blockSize: blockSize,
		blocks:    blocks,
	}, nil
}

// NewWithByteBudget creates a grid whose block size is the largest edge
// length for which one block occupies at most maxBytesPerBlock bytes. See
// BlockSizeForBudget.
func NewWithByteBudget[T any](width, height, maxBytesPerBlock int) (*Grid[T], error) {
	if maxBytesPerBlock <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, maxBytesPerBlock)
	}
	size := elemSize[T]()
	if size == 0 {
		return nil, ErrInvalidElementSize
	}
	return New[T](width, height, BlockSizeForBudget(size, maxBytesPerBlock))
}

// New64KBlock creates a grid with a block budget of locality.DefaultBlockBytes.
func New64KBlock[T any](width, height int) (*Grid[T], error) {
	return NewWithByteBudget[T](width, height, locality.DefaultBlockBytes)
}

// BlockSizeForBudget returns max(1, floor(sqrt(maxBytesPerBlock/elemSize))),
// with the division truncated first. An element larger than the budget
// gives a block size of 1.
//
//	BlockSizeForBudget(3, 65536) == 147 // 147*147*3 = 64827 bytes
func BlockSizeForBudget(elemSize, maxBytesPerBlock int) int {
	if elemSize <= 0 || maxBytesPerBlock <= 0 || elemSize > maxBytesPerBlock {
		return 1
	}
	n := maxBytesPerBlock / elemSize
	b := int(math.Sqrt(float64(n)))
	// Correct float rounding in either direction.
	for b > 1 && b*b > n {
		b--
	}
	for (b+1)*(b+1) <= n {
		b++
	}
	return max(1, b)
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid[T]) Height() int {
	return g.height
}

// ElemSize returns the size in bytes of one element.
func (g *Grid[T]) ElemSize() int {
	return elemSize[T]()
}

// BlockSize returns the number of elements along one edge of a block.
func (g *Grid[T]) BlockSize() int {
	return g.blockSize
}

// BlockedWidth returns the number of block columns, ceil(Width/BlockSize).
func (g *Grid[T]) BlockedWidth() int {
	return ceilDiv(g.width, g.blockSize)
}

// BlockedHeight returns the number of block rows, ceil(Height/BlockSize).
func (g *Grid[T]) BlockedHeight() int {
	return ceilDiv(g.height, g.blockSize)
}

// Released reports whether Release has been called.
func (g *Grid[T]) Released() bool {
	return g.blocks == nil
}

// At returns a pointer to the element at (col, row).
func (g *Grid[T]) At(col, row int) (*T, error) {
	if g.blocks == nil {
		return nil, ErrReleased
	}
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return nil, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, col, row, g.width, g.height)
	}
	return g.at(col, row), nil
}

// MustAt is like At but panics if (col, row) is out of range or the grid
// has been released.
func (g *Grid[T]) MustAt(col, row int) *T {
	p, err := g.At(col, row)
	if err != nil {
		panic(err)
	}
	return p
}

// Release drops every block and the block index so the memory can be
// reclaimed. Pointers previously returned by At must not be used
// afterwards. Calling Release more than once is safe.
func (g *Grid[T]) Release() {
	if g.blocks == nil {
		return
	}
	_ = g.blocks.Map(func(_, _ int, block **uarray.Array[T]) {
		*block = nil
	})
	g.blocks = nil
}

// at assumes (col, row) is valid and the grid has not been released.
func (g *Grid[T]) at(col, row int) *T {
	bs := g.blockSize
	block := *g.blocks.MustAt(col/bs, row/bs)
	return &block.Elems()[bs*(row%bs)+col%bs]
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func ceilDiv(n, d int) int {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}
