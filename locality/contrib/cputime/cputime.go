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

// Package cputime measures how much processor time a computation consumes
// and writes the per-pixel timing report of the ppmtrans tool.
package cputime

import (
	"fmt"
	"io"
	"time"
)

// Timer is a stopwatch over the process's user plus system CPU time. On
// platforms without getrusage it falls back to wall-clock time.
//
// The zero value is ready to use.
type Timer struct {
	start   time.Duration
	running bool
}

// Start resets the timer and begins measuring.
func (t *Timer) Start() {
	t.start = now()
	t.running = true
}

// Stop returns the time consumed since Start. Calling Stop on a timer that
// was never started returns 0.
func (t *Timer) Stop() time.Duration {
	if !t.running {
		return 0
	}
	t.running = false
	return max(now()-t.start, 0)
}

// Measure runs fn and returns the CPU time it consumed.
func Measure(fn func() error) (time.Duration, error) {
	var t Timer
	t.Start()
	err := fn()
	return t.Stop(), err
}

// Report is the timing summary of one transformation.
type Report struct {
	Pixels int

	// Op names the transformation. When Degrees is set the report uses the
	// "Rotation of N degrees" wording instead.
	Op      string
	Degrees *int
	Elapsed time.Duration
}

// PerPixel returns the elapsed time divided by the pixel count, or 0 for an
// empty image.
func (r Report) PerPixel() float64 {
	if r.Pixels <= 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Pixels)
}

// WriteTo writes the three-line report to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	what := r.Op
	if r.Degrees != nil {
		what = fmt.Sprintf("Rotation of %d degrees", *r.Degrees)
	}
	n, err := fmt.Fprintf(w,
		"Number of pixels: %d\n%s was computed in %d nanoseconds\nTime per pixel: %.0f nanoseconds\n",
		r.Pixels, what, r.Elapsed.Nanoseconds(), r.PerPixel())
	return int64(n), err
}
