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

// Package pnm reads and writes colour images into any locality.Array2
// layout.
//
// Netpbm files (P1-P7) are decoded with their exact maximum channel value,
// which becomes the pixmap's Denominator. PNG, JPEG and BMP inputs are
// converted to Denominator 255, or 65535 for 16-bit sources.
//
//	pm, err := pnm.Read(os.Stdin, a2methods.Blocked64K[pnm.RGB]())
//	...
//	err = pnm.Write(os.Stdout, pm, pnm.EncodeOptions{Format: pnm.FormatPPM})
package pnm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajroetker/go-locality/locality"
	"github.com/ajroetker/go-locality/locality/a2methods"
)

var (
	// ErrUnknownFormat is returned for an unrecognised format name or input.
	ErrUnknownFormat = errors.New("pnm: unknown image format")

	// ErrInvalidDenominator is returned for a denominator outside [1, 65535].
	ErrInvalidDenominator = errors.New("pnm: invalid denominator")
)

// RGB is one pixel. Channel values range over [0, Denominator] of the
// pixmap holding it.
type RGB struct {
	Red, Green, Blue uint16
}

// Pixmap is a colour image backed by a two-dimensional array.
type Pixmap struct {
	Width       int
	Height      int
	Denominator int
	Pixels      locality.Array2[RGB]
}

// New allocates a width x height pixmap using the given layout.
func New(width, height, denominator int, methods *a2methods.Methods[RGB]) (*Pixmap, error) {
	if denominator < 1 || denominator > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDenominator, denominator)
	}
	pixels, err := methods.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Pixmap{
		Width:       width,
		Height:      height,
		Denominator: denominator,
		Pixels:      pixels,
	}, nil
}

// Format selects the encoding used by Write.
type Format int

const (
	FormatPPM Format = iota
	FormatPNG
	FormatBMP
	FormatJPEG
)

// String returns the canonical lower-case name of the format.
func (f Format) String() string {
	switch f {
	case FormatPPM:
		return "ppm"
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatJPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts a name such as "ppm", "png", "bmp" or "jpg" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ppm", "pnm", "":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// to16 scales v in [0, denom] up to [0, 65535], rounding up so that
// scaling back down by either truncation or rounding recovers v.
func to16(v uint16, denom int) uint16 {
	if denom == 65535 {
		return v
	}
	s := (uint32(v)*65535 + uint32(denom) - 1) / uint32(denom)
	return uint16(min(s, 65535))
}

// from16 scales c in [0, 65535] down to [0, denom], rounding to nearest.
// from16(to16(v)) == v holds for every denom up to 32767, and for 65535.
func from16(c uint32, denom int) uint16 {
	if denom == 65535 {
		return uint16(c)
	}
	return uint16((c*uint32(denom) + 32767) / 65535)
}
