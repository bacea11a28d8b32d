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

// Package uarray provides a fixed-length, contiguous one-dimensional array.
//
// It is the storage unit for one block of a blocked two-dimensional array:
// the length is fixed at creation and the backing slice never grows, so
// pointers returned by At stay valid for the life of the array.
package uarray

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrInvalidLength is returned when an array is created with a negative length.
	ErrInvalidLength = errors.New("uarray: invalid length")

	// ErrOutOfBounds is returned by At for an index outside [0, Len()).
	ErrOutOfBounds = errors.New("uarray: index out of bounds")
)

// Array is a fixed-length array of T stored in one contiguous slice.
type Array[T any] struct {
	elems []T
}

// New allocates a zeroed array of the given length.
func New[T any](length int) (*Array[T], error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	return &Array[T]{elems: make([]T, length)}, nil
}

// Len returns the number of elements.
func (a *Array[T]) Len() int {
	return len(a.elems)
}

// ElemSize returns the size in bytes of one element.
func (a *Array[T]) ElemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// At returns a pointer to element i.
func (a *Array[T]) At(i int) (*T, error) {
	if i < 0 || i >= len(a.elems) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfBounds, i, len(a.elems))
	}
	return &a.elems[i], nil
}

// Elems returns the backing slice. Its length is always Len(); callers may
// read and write elements but must not append to it.
func (a *Array[T]) Elems() []T {
	return a.elems[:len(a.elems):len(a.elems)]
}
