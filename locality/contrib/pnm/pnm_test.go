// Copyright 2025 go-locality Authors. SPDX-License-Identifier: Apache-2.0

package pnm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ajroetker/go-locality/locality/a2methods"
	"github.com/ajroetker/go-locality/locality/uarray2b"
)

func suites() []*a2methods.Methods[RGB] {
	return []*a2methods.Methods[RGB]{
		a2methods.Plain[RGB](),
		a2methods.Blocked[RGB](2),
		a2methods.Blocked64K[RGB](),
	}
}

func testPixmap(t *testing.T, w, h, denom int, methods *a2methods.Methods[RGB]) *Pixmap {
	t.Helper()
	pm, err := New(w, h, denom, methods)
	if err != nil {
		t.Fatalf("New(%d, %d, %d) error: %v", w, h, denom, err)
	}
	for row := range h {
		for col := range w {
			*pm.Pixels.MustAt(col, row) = RGB{
				Red:   uint16((col * 37) % (denom + 1)),
				Green: uint16((row * 11) % (denom + 1)),
				Blue:  uint16((col + row) % (denom + 1)),
			}
		}
	}
	return pm
}

func samePixels(t *testing.T, got, want *Pixmap) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	if got.Denominator != want.Denominator {
		t.Errorf("Denominator = %d, want %d", got.Denominator, want.Denominator)
	}
	for row := range want.Height {
		for col := range want.Width {
			g, w := *got.Pixels.MustAt(col, row), *want.Pixels.MustAt(col, row)
			if g != w {
				t.Errorf("pixel (%d, %d) = %v, want %v", col, row, g, w)
			}
		}
	}
}

func TestPPMRoundTrip(t *testing.T) {
	for _, m := range suites() {
		for _, plain := range []bool{false, true} {
			src := testPixmap(t, 7, 5, 255, m)
			var buf bytes.Buffer
			if err := Write(&buf, src, EncodeOptions{Format: FormatPPM, Plain: plain}); err != nil {
				t.Fatalf("%s Write error: %v", m.Name, err)
			}
			wantMagic := "P6"
			if plain {
				wantMagic = "P3"
			}
			if !strings.HasPrefix(buf.String(), wantMagic) {
				t.Errorf("%s plain=%v: output starts %q, want %q", m.Name, plain, buf.String()[:2], wantMagic)
			}

			got, err := Read(&buf, m)
			if err != nil {
				t.Fatalf("%s Read error: %v", m.Name, err)
			}
			samePixels(t, got, src)
		}
	}
}

func TestReadPlainPPMKeepsDenominator(t *testing.T) {
	input := "P3\n# two pixels\n2 1\n15\n15 0 0   0 7 15\n"
	pm, err := Read(strings.NewReader(input), a2methods.Blocked64K[RGB]())
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if pm.Width != 2 || pm.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", pm.Width, pm.Height)
	}
	if pm.Denominator != 15 {
		t.Errorf("Denominator = %d, want 15", pm.Denominator)
	}
	want := []RGB{{15, 0, 0}, {0, 7, 15}}
	for col, w := range want {
		if got := *pm.Pixels.MustAt(col, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", col, got, w)
		}
	}
}

func TestPPMRoundTripSmallDenominator(t *testing.T) {
	src := testPixmap(t, 4, 3, 15, a2methods.Plain[RGB]())
	var buf bytes.Buffer
	if err := Write(&buf, src, EncodeOptions{Format: FormatPPM}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	got, err := Read(&buf, a2methods.Plain[RGB]())
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	samePixels(t, got, src)
}

func TestPNGAndBMPRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatBMP} {
		src := testPixmap(t, 9, 4, 255, a2methods.Blocked[RGB](3))
		var buf bytes.Buffer
		if err := Write(&buf, src, EncodeOptions{Format: f}); err != nil {
			t.Fatalf("%v Write error: %v", f, err)
		}
		got, err := Read(&buf, a2methods.Plain[RGB]())
		if err != nil {
			t.Fatalf("%v Read error: %v", f, err)
		}
		samePixels(t, got, src)
	}
}

func TestJPEGWrite(t *testing.T) {
	src := testPixmap(t, 16, 16, 255, a2methods.Plain[RGB]())
	var buf bytes.Buffer
	if err := Write(&buf, src, EncodeOptions{Format: FormatJPEG, Quality: 90}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	got, err := Read(&buf, a2methods.Plain[RGB]())
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got.Width != 16 || got.Height != 16 || got.Denominator != 255 {
		t.Errorf("decoded %dx%d/%d, want 16x16/255", got.Width, got.Height, got.Denominator)
	}
}

func TestWriteReleasedGrid(t *testing.T) {
	for _, denom := range []int{255, 1000} {
		pm := testPixmap(t, 4, 3, denom, a2methods.Blocked[RGB](2))
		pm.Pixels.(*uarray2b.Grid[RGB]).Release()

		var buf bytes.Buffer
		err := Write(&buf, pm, EncodeOptions{Format: FormatPPM})
		if !errors.Is(err, uarray2b.ErrReleased) {
			t.Errorf("denom %d: Write after Release err = %v, want ErrReleased", denom, err)
		}
		if buf.Len() != 0 {
			t.Errorf("denom %d: Write after Release wrote %d bytes", denom, buf.Len())
		}
	}
}

func TestReadUnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader("definitely not an image"), a2methods.Plain[RGB]())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestReadEmpty(t *testing.T) {
	if _, err := Read(strings.NewReader(""), a2methods.Plain[RGB]()); err == nil {
		t.Error("Read of empty input should fail")
	}
}

func TestNewInvalidDenominator(t *testing.T) {
	for _, d := range []int{0, -1, 65536} {
		if _, err := New(1, 1, d, a2methods.Plain[RGB]()); !errors.Is(err, ErrInvalidDenominator) {
			t.Errorf("New denominator %d: err = %v, want ErrInvalidDenominator", d, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"ppm": FormatPPM, "PNM": FormatPPM, "": FormatPPM,
		"png": FormatPNG, "bmp": FormatBMP, "jpg": FormatJPEG, "jpeg": FormatJPEG,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(\"gif\") err = %v, want ErrUnknownFormat", err)
	}
}

func TestScaling(t *testing.T) {
	for _, denom := range []int{1, 7, 15, 255, 1000, 30000, 65535} {
		for v := 0; v <= denom; v += max(1, denom/50) {
			if got := from16(uint32(to16(uint16(v), denom)), denom); int(got) != v {
				t.Errorf("denom %d: from16(to16(%d)) = %d", denom, v, got)
			}
		}
	}
}
