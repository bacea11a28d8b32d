// Copyright 2025 go-locality Authors. SPDX-License-Identifier: Apache-2.0

package cputime

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestReportRotation(t *testing.T) {
	deg := 90
	r := Report{Pixels: 4, Op: "rotate 90", Degrees: &deg, Elapsed: 1000 * time.Nanosecond}
	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	want := "Number of pixels: 4\n" +
		"Rotation of 90 degrees was computed in 1000 nanoseconds\n" +
		"Time per pixel: 250 nanoseconds\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteTo wrote %q, want %q", got, want)
	}
	if n != int64(len(want)) {
		t.Errorf("WriteTo returned %d, want %d", n, len(want))
	}
}

func TestReportOtherOp(t *testing.T) {
	r := Report{Pixels: 3, Op: "transpose", Elapsed: 10 * time.Nanosecond}
	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	want := "Number of pixels: 3\n" +
		"transpose was computed in 10 nanoseconds\n" +
		"Time per pixel: 3 nanoseconds\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteTo wrote %q, want %q", got, want)
	}
}

func TestPerPixelEmpty(t *testing.T) {
	if got := (Report{Elapsed: time.Second}).PerPixel(); got != 0 {
		t.Errorf("PerPixel() with no pixels = %v, want 0", got)
	}
}

func TestTimerMeasuresWork(t *testing.T) {
	var timer Timer
	if got := timer.Stop(); got != 0 {
		t.Errorf("Stop() before Start() = %v, want 0", got)
	}

	elapsed, err := Measure(func() error {
		deadline := time.Now().Add(30 * time.Millisecond)
		x := 0
		for time.Now().Before(deadline) {
			x++
		}
		_ = x
		return nil
	})
	if err != nil {
		t.Fatalf("Measure error: %v", err)
	}
	if elapsed <= 0 {
		t.Errorf("Measure of a busy loop = %v, want > 0", elapsed)
	}
}

func TestMeasurePropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	if _, err := Measure(func() error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("Measure err = %v, want %v", err, sentinel)
	}
}
