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

package pnm

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"

	"github.com/ajroetker/go-locality/locality/a2methods"
)

// maxValuer is implemented by decoded netpbm images.
type maxValuer interface {
	MaxValue() uint16
}

// Read decodes one image from r into a pixmap of the given layout.
func Read(r io.Reader, methods *a2methods.Methods[RGB]) (*Pixmap, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("could not read image header: %w", err)
	}

	var img image.Image
	if isNetpbm(magic) {
		img, err = netpbm.Decode(br, &netpbm.DecodeOptions{Target: netpbm.PPM})
	} else {
		img, _, err = image.Decode(br)
	}
	if err != nil {
		if err == image.ErrFormat {
			return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	return FromImage(img, denominatorOf(img), methods)
}

// FromImage copies img into a new pixmap, scaling every channel to
// [0, denominator].
func FromImage(img image.Image, denominator int, methods *a2methods.Methods[RGB]) (*Pixmap, error) {
	bounds := img.Bounds()
	pm, err := New(bounds.Dx(), bounds.Dy(), denominator, methods)
	if err != nil {
		return nil, err
	}

	for row := range pm.Height {
		for col := range pm.Width {
			r, g, b, _ := img.At(bounds.Min.X+col, bounds.Min.Y+row).RGBA()
			*pm.Pixels.MustAt(col, row) = RGB{
				Red:   from16(r, denominator),
				Green: from16(g, denominator),
				Blue:  from16(b, denominator),
			}
		}
	}
	return pm, nil
}

func isNetpbm(magic []byte) bool {
	return len(magic) == 2 && magic[0] == 'P' && magic[1] >= '1' && magic[1] <= '7'
}

func denominatorOf(img image.Image) int {
	if mv, ok := img.(maxValuer); ok && mv.MaxValue() > 0 {
		return int(mv.MaxValue())
	}
	switch img.ColorModel() {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model, color.Alpha16Model:
		return 65535
	default:
		return 255
	}
}
