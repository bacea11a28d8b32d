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

// Package a2methods bundles an array layout with the mapping functions it
// supports, so that code written against locality.Array2 can switch between
// the plain and blocked layouts at run time.
//
//	m := a2methods.Blocked64K[Pixel]()
//	mapFn, err := m.Mapper(locality.BlockMajor)
//	src, _ := m.New(w, h)
//	err = mapFn(src, visit)
package a2methods

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-locality/locality"
	"github.com/ajroetker/go-locality/locality/contrib/workerpool"
	"github.com/ajroetker/go-locality/locality/uarray2"
	"github.com/ajroetker/go-locality/locality/uarray2b"
)

// ErrUnsupportedOrder is returned by Mapper when a suite cannot traverse in
// the requested order.
var ErrUnsupportedOrder = errors.New("a2methods: unsupported mapping order")

// ErrWrongArray is returned by a MapFunc given an array of another layout.
var ErrWrongArray = errors.New("a2methods: array does not belong to this suite")

// MapFunc visits every element of a in one fixed order.
type MapFunc[T any] func(a locality.Array2[T], visit locality.Visitor[T]) error

// Methods is a suite of operations for one array layout. Mapping fields
// are nil when the layout does not support that order.
type Methods[T any] struct {
	// Name identifies the layout in messages ("plain", "blocked").
	Name string

	// New allocates an array of this layout.
	New func(width, height int) (locality.Array2[T], error)

	Default    MapFunc[T]
	RowMajor   MapFunc[T]
	ColMajor   MapFunc[T]
	BlockMajor MapFunc[T]
}

// Mapper returns the suite's mapping function for order.
func (m *Methods[T]) Mapper(order locality.Order) (MapFunc[T], error) {
	var fn MapFunc[T]
	switch order {
	case locality.RowMajor:
		fn = m.RowMajor
	case locality.ColMajor:
		fn = m.ColMajor
	case locality.BlockMajor:
		fn = m.BlockMajor
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %s does not support %s mapping", ErrUnsupportedOrder, m.Name, order)
	}
	return fn, nil
}

// Plain returns the suite for row-major uarray2 arrays. It supports
// row-major (the default) and column-major mapping.
func Plain[T any]() *Methods[T] {
	rowMajor := func(a locality.Array2[T], visit locality.Visitor[T]) error {
		p, ok := a.(*uarray2.Array2[T])
		if !ok {
			return fmt.Errorf("%w: plain got %T", ErrWrongArray, a)
		}
		return p.MapRowMajor(visit)
	}
	colMajor := func(a locality.Array2[T], visit locality.Visitor[T]) error {
		p, ok := a.(*uarray2.Array2[T])
		if !ok {
			return fmt.Errorf("%w: plain got %T", ErrWrongArray, a)
		}
		return p.MapColMajor(visit)
	}
	return &Methods[T]{
		Name: "plain",
		New: func(width, height int) (locality.Array2[T], error) {
			a, err := uarray2.New[T](width, height)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
		Default:  rowMajor,
		RowMajor: rowMajor,
		ColMajor: colMajor,
	}
}

// Blocked returns the suite for uarray2b grids with a fixed block size.
// Only block-major mapping is supported.
func Blocked[T any](blockSize int) *Methods[T] {
	return blocked[T](func(width, height int) (*uarray2b.Grid[T], error) {
		return uarray2b.New[T](width, height, blockSize)
	})
}

// Blocked64K returns the suite for uarray2b grids whose block size is
// derived from a 64KiB per-block budget.
func Blocked64K[T any]() *Methods[T] {
	return blocked[T](uarray2b.New64KBlock[T])
}

// BlockedWithBudget returns the suite for uarray2b grids whose block size
// is derived from maxBytesPerBlock.
func BlockedWithBudget[T any](maxBytesPerBlock int) *Methods[T] {
	return blocked[T](func(width, height int) (*uarray2b.Grid[T], error) {
		return uarray2b.NewWithByteBudget[T](width, height, maxBytesPerBlock)
	})
}

func blocked[T any](newGrid func(width, height int) (*uarray2b.Grid[T], error)) *Methods[T] {
	blockMajor := func(a locality.Array2[T], visit locality.Visitor[T]) error {
		g, ok := a.(*uarray2b.Grid[T])
		if !ok {
			return fmt.Errorf("%w: blocked got %T", ErrWrongArray, a)
		}
		return g.ForEachBlockMajor(visit)
	}
	return &Methods[T]{
		Name: "blocked",
		New: func(width, height int) (locality.Array2[T], error) {
			g, err := newGrid(width, height)
			if err != nil {
				return nil, err
			}
			return g, nil
		},
		Default:    blockMajor,
		BlockMajor: blockMajor,
	}
}

// ForOrder picks the suite that supports order: plain for row- and
// column-major, blocked for block-major. A blockSize <= 0 selects the
// 64KiB budget.
func ForOrder[T any](order locality.Order, blockSize int) (*Methods[T], MapFunc[T], error) {
	var m *Methods[T]
	switch order {
	case locality.RowMajor, locality.ColMajor:
		m = Plain[T]()
	case locality.BlockMajor:
		if blockSize > 0 {
			m = Blocked[T](blockSize)
		} else {
			m = Blocked64K[T]()
		}
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedOrder, order)
	}
	fn, err := m.Mapper(order)
	if err != nil {
		return nil, nil, err
	}
	return m, fn, nil
}

// ParallelBlockMajor returns a MapFunc for blocked arrays that spreads
// blocks over pool. If stats is non-nil it receives the counters of the
// last traversal. The visitor runs concurrently and must only write the
// element it is given or state keyed by it.
func ParallelBlockMajor[T any](pool *workerpool.Pool, stats *uarray2b.Stats) MapFunc[T] {
	return func(a locality.Array2[T], visit locality.Visitor[T]) error {
		g, ok := a.(*uarray2b.Grid[T])
		if !ok {
			return fmt.Errorf("%w: blocked got %T", ErrWrongArray, a)
		}
		s, err := g.ParallelForEachBlock(pool, visit)
		if err != nil {
			return err
		}
		if stats != nil {
			*stats = s
		}
		return nil
	}
}
