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

import "github.com/ajroetker/go-locality/locality"

// Map visits every element in block-major order. It is the grid's default
// traversal and is equivalent to ForEachBlockMajor.
func (g *Grid[T]) Map(visit locality.Visitor[T]) error {
	return g.ForEachBlockMajor(visit)
}

// ForEachBlockMajor calls visit once for every element of the grid.
//
// Blocks are taken in row-major order of block coordinates. All elements
// of one block are visited consecutively, in row-major order inside the
// block, with their absolute coordinates. Unused slots of the right and
// bottom edge blocks are skipped. The traversal does not allocate.
func (g *Grid[T]) ForEachBlockMajor(visit locality.Visitor[T]) error {
	if visit == nil {
		return ErrNilVisitor
	}
	if g.blocks == nil {
		return ErrReleased
	}

	blockedWidth, blockedHeight := g.BlockedWidth(), g.BlockedHeight()
	for br := range blockedHeight {
		for bc := range blockedWidth {
			g.visitBlock(bc, br, visit)
		}
	}
	return nil
}

// visitBlock visits the valid elements of block (bc, br) in row-major order
// and returns how many it visited. It touches only that block's storage.
func (g *Grid[T]) visitBlock(bc, br int, visit locality.Visitor[T]) int {
	bs := g.blockSize
	validCols, validRows := g.blockExtent(bc, br)
	elems := (*g.blocks.MustAt(bc, br)).Elems()

	col0, row0 := bc*bs, br*bs
	for smallRow := range validRows {
		base := smallRow * bs
		for smallCol := range validCols {
			visit(col0+smallCol, row0+smallRow, &elems[base+smallCol])
		}
	}
	return validCols * validRows
}

// blockExtent returns how many columns and rows of block (bc, br) lie
// inside the grid.
//
// Only the last block column can be narrower than blockSize, and only the
// last block row can be shorter: block indices start at 0 and every block
// but the last in each axis is full. For the last column the result equals
// width % blockSize when width is not a multiple of blockSize.
func (g *Grid[T]) blockExtent(bc, br int) (validCols, validRows int) {
	bs := g.blockSize
	validCols = min(bs, g.width-bc*bs)
	validRows = min(bs, g.height-br*bs)
	return validCols, validRows
}
