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

// Package transform applies rotations, flips and transposition to any
// locality.Array2.
//
// A transform maps every source element once, in whatever order the
// caller's mapping function uses, and copies it to the coordinate given by
// Dest. Dest depends only on the source coordinate and shape, never on the
// traversal order, so every order produces the same result.
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajroetker/go-locality/locality"
	"github.com/ajroetker/go-locality/locality/a2methods"
)

// ErrUnsupported is returned for an unknown rotation angle or flip direction.
var ErrUnsupported = errors.New("transform: unsupported transformation")

// Op is one geometric transformation.
type Op int

const (
	Rotate0 Op = iota
	Rotate90
	Rotate180
	Rotate270
	FlipHorizontal
	FlipVertical
	Transpose
)

// String returns a short human-readable name.
func (op Op) String() string {
	switch op {
	case Rotate0:
		return "rotate 0"
	case Rotate90:
		return "rotate 90"
	case Rotate180:
		return "rotate 180"
	case Rotate270:
		return "rotate 270"
	case FlipHorizontal:
		return "flip horizontal"
	case FlipVertical:
		return "flip vertical"
	case Transpose:
		return "transpose"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Degrees returns the rotation angle of a rotation op and false for any
// other op.
func (op Op) Degrees() (int, bool) {
	switch op {
	case Rotate0:
		return 0, true
	case Rotate90:
		return 90, true
	case Rotate180:
		return 180, true
	case Rotate270:
		return 270, true
	default:
		return 0, false
	}
}

// ParseRotation returns the op for a clockwise rotation by degrees.
func ParseRotation(degrees int) (Op, error) {
	switch degrees {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	default:
		return 0, fmt.Errorf("%w: rotation must be 0, 90, 180 or 270, got %d", ErrUnsupported, degrees)
	}
}

// ParseFlip returns the op for "horizontal" or "vertical".
func ParseFlip(direction string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "horizontal", "h":
		return FlipHorizontal, nil
	case "vertical", "v":
		return FlipVertical, nil
	default:
		return 0, fmt.Errorf("%w: flip must be horizontal or vertical, got %q", ErrUnsupported, direction)
	}
}

// DestSize returns the shape of the result of op on a width x height array.
func DestSize(op Op, width, height int) (int, int) {
	switch op {
	case Rotate90, Rotate270, Transpose:
		return height, width
	default:
		return width, height
	}
}

// Dest returns where the source element at (col, row) of a width x height
// array lands. Rotations are clockwise.
func Dest(op Op, col, row, width, height int) (int, int) {
	switch op {
	case Rotate90:
		return height - row - 1, col
	case Rotate180:
		return width - col - 1, height - row - 1
	case Rotate270:
		return row, width - col - 1
	case FlipHorizontal:
		return width - col - 1, row
	case FlipVertical:
		return col, height - row - 1
	case Transpose:
		return row, col
	default:
		return col, row
	}
}

// Apply allocates the destination with methods.New and copies every element
// of src into it, visiting src with mapFn.
func Apply[T any](src locality.Array2[T], op Op, mapFn a2methods.MapFunc[T], methods *a2methods.Methods[T]) (locality.Array2[T], error) {
	if op < Rotate0 || op > Transpose {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, op)
	}
	width, height := src.Width(), src.Height()
	dstWidth, dstHeight := DestSize(op, width, height)

	dst, err := methods.New(dstWidth, dstHeight)
	if err != nil {
		return nil, err
	}
	if err := Into(dst, src, op, mapFn); err != nil {
		return nil, err
	}
	return dst, nil
}

// Into copies src into an already allocated dst of the right shape.
func Into[T any](dst, src locality.Array2[T], op Op, mapFn a2methods.MapFunc[T]) error {
	width, height := src.Width(), src.Height()
	dstWidth, dstHeight := DestSize(op, width, height)
	if dst.Width() != dstWidth || dst.Height() != dstHeight {
		return fmt.Errorf("transform: %v of %dx%d needs a %dx%d destination, got %dx%d",
			op, width, height, dstWidth, dstHeight, dst.Width(), dst.Height())
	}
	return mapFn(src, func(col, row int, elem *T) {
		c, r := Dest(op, col, row, width, height)
		*dst.MustAt(c, r) = *elem
	})
}
