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

// Package uarray2b provides a blocked two-dimensional array.
//
// A Grid stores its elements in square blocks of BlockSize x BlockSize
// elements. Each block is one contiguous allocation, so elements that are
// close in (column, row) space are close in memory. Algorithms that visit a
// grid block by block touch far fewer cache lines than a row-major array
// would when they also access neighbouring rows.
//
// # Layout
//
// The element at (col, row) lives in block (col/BlockSize, row/BlockSize)
// at linear offset BlockSize*(row%BlockSize) + col%BlockSize. Blocks on the
// right and bottom edges are allocated in full even when the grid's width
// or height is not a multiple of BlockSize; the slots past the edge are
// never returned by At and never visited.
//
// # Choosing a Block Size
//
//	g, _ := uarray2b.New[Pixel](w, h, 16)              // explicit
//	g, _ := uarray2b.NewWithByteBudget[Pixel](w, h, 32*1024)
//	g, _ := uarray2b.New64KBlock[Pixel](w, h)          // 64KiB per block
//
// # Traversal
//
// ForEachBlockMajor visits block rows top to bottom and the blocks within
// a row left to right; inside a block it visits rows top to bottom and
// columns left to right. Callers must not rely on any ordering across
// blocks beyond that: the traversal is neither globally row-major nor
// globally column-major.
//
// ParallelForEachBlock runs blocks on a workerpool.Pool. Blocks occupy
// disjoint memory, so a visitor that only touches the element it is given
// is free of data races.
package uarray2b
