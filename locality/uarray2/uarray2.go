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

// Package uarray2 provides a fixed-size two-dimensional array stored in
// row-major order in a single slice.
//
// Example usage:
//
//	a, err := uarray2.New[float32](640, 480)
//	if err != nil {
//	    return err
//	}
//	*a.MustAt(3, 4) = 1.5
//	a.MapColMajor(func(col, row int, v *float32) { ... })
package uarray2

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/ajroetker/go-locality/locality"
)

var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("uarray2: invalid dimensions")

	// ErrOutOfBounds is returned by At for a coordinate outside the array.
	ErrOutOfBounds = errors.New("uarray2: coordinate out of bounds")

	// ErrNilVisitor is returned by the map functions when visit is nil.
	ErrNilVisitor = errors.New("uarray2: nil visitor")
)

// Array2 is a width x height array of T in row-major order.
type Array2[T any] struct {
	data   []T
	width  int
	height int
}

var _ locality.Array2[int] = (*Array2[int])(nil)

// New allocates a zeroed width x height array. Either dimension may be zero.
func New[T any](width, height int) (*Array2[T], error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > 0 && height > math.MaxInt/width {
		return nil, fmt.Errorf("%w: %dx%d overflows int", ErrInvalidDimensions, width, height)
	}
	return &Array2[T]{
		data:   make([]T, width*height),
		width:  width,
		height: height,
	}, nil
}

// Width returns the number of columns.
func (a *Array2[T]) Width() int {
	return a.width
}

// Height returns the number of rows.
func (a *Array2[T]) Height() int {
	return a.height
}

// ElemSize returns the size in bytes of one element.
func (a *Array2[T]) ElemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// BlockSize returns 1: a row-major array is its own single-element blocking.
func (a *Array2[T]) BlockSize() int {
	return 1
}

// At returns a pointer to the element at (col, row).
func (a *Array2[T]) At(col, row int) (*T, error) {
	if col < 0 || col >= a.width || row < 0 || row >= a.height {
		return nil, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, col, row, a.width, a.height)
	}
	return &a.data[row*a.width+col], nil
}

// MustAt is like At but panics if (col, row) is out of range.
func (a *Array2[T]) MustAt(col, row int) *T {
	p, err := a.At(col, row)
	if err != nil {
		panic(err)
	}
	return p
}

// Map visits every element in row-major order.
func (a *Array2[T]) Map(visit locality.Visitor[T]) error {
	return a.MapRowMajor(visit)
}

// MapRowMajor visits every element, row by row, left to right.
func (a *Array2[T]) MapRowMajor(visit locality.Visitor[T]) error {
	if visit == nil {
		return ErrNilVisitor
	}
	for row := range a.height {
		base := row * a.width
		for col := range a.width {
			visit(col, row, &a.data[base+col])
		}
	}
	return nil
}

// MapColMajor visits every element, column by column, top to bottom.
func (a *Array2[T]) MapColMajor(visit locality.Visitor[T]) error {
	if visit == nil {
		return ErrNilVisitor
	}
	for col := range a.width {
		for row := range a.height {
			visit(col, row, &a.data[row*a.width+col])
		}
	}
	return nil
}
