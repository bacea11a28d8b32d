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

// Package locality provides two-dimensional arrays laid out for cache
// locality, and the small contract that lets the different layouts be
// swapped for one another.
//
// The main container lives in the uarray2b sub-package: a grid whose
// elements are grouped into square blocks stored contiguously, so that
// elements near each other in (column, row) space are also near each other
// in memory. The uarray2 sub-package provides the plain row-major array used
// both as an alternative layout and as the block index of uarray2b.
//
// # Basic Usage
//
//	g, err := uarray2b.New64KBlock[Pixel](1920, 1080)
//	if err != nil {
//	    return err
//	}
//	p := g.MustAt(10, 20)
//	p.R = 255
//
//	err = g.ForEachBlockMajor(func(col, row int, p *Pixel) {
//	    // all elements of a block are visited before the next block
//	})
//
// # Orders
//
// Every array implements [Array2]. Mapping functions visit elements in one
// of three orders ([RowMajor], [ColMajor], [BlockMajor]); which orders an
// array supports depends on its layout, see the a2methods sub-package.
package locality
