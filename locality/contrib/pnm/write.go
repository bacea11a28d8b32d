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
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/spakin/netpbm"
	"golang.org/x/image/bmp"
)

// EncodeOptions controls Write.
type EncodeOptions struct {
	Format Format

	// Plain selects the ASCII "P3" netpbm variant instead of binary "P6".
	Plain bool

	// Quality is the JPEG quality in [1, 100]; 0 selects jpeg.DefaultQuality.
	Quality int
}

// Write encodes pm to w.
func Write(w io.Writer, pm *Pixmap, opts EncodeOptions) error {
	if pm.Denominator < 1 || pm.Denominator > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidDenominator, pm.Denominator)
	}
	img, err := pm.Image()
	if err != nil {
		return err
	}

	switch opts.Format {
	case FormatPPM:
		err = netpbm.Encode(w, img, &netpbm.EncodeOptions{
			Format:   netpbm.PPM,
			MaxValue: uint16(pm.Denominator),
			Plain:    opts.Plain,
		})
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatJPEG:
		quality := opts.Quality
		if quality == 0 {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", opts.Format, err)
	}
	return nil
}

// Image copies the pixmap into a standard library image: *image.RGBA when
// Denominator is 255, *image.RGBA64 otherwise. It fails if the pixels can
// no longer be traversed, for example after their grid was released.
func (pm *Pixmap) Image() (image.Image, error) {
	rect := image.Rect(0, 0, pm.Width, pm.Height)
	if pm.Denominator == 255 {
		out := image.NewRGBA(rect)
		err := pm.Pixels.Map(func(col, row int, p *RGB) {
			out.SetRGBA(col, row, color.RGBA{
				R: uint8(p.Red), G: uint8(p.Green), B: uint8(p.Blue), A: 0xff,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("could not copy pixels: %w", err)
		}
		return out, nil
	}

	out := image.NewRGBA64(rect)
	err := pm.Pixels.Map(func(col, row int, p *RGB) {
		out.SetRGBA64(col, row, color.RGBA64{
			R: to16(p.Red, pm.Denominator),
			G: to16(p.Green, pm.Denominator),
			B: to16(p.Blue, pm.Denominator),
			A: 0xffff,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("could not copy pixels: %w", err)
	}
	return out, nil
}
