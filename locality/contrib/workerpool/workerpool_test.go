// Copyright 2025 The go-locality Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestForEach(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 1000
	var hits [1000]atomic.Int32
	var badSlot atomic.Bool

	pool.ForEach(n, func(worker, i int) {
		if worker < 0 || worker >= pool.NumWorkers() {
			badSlot.Store(true)
		}
		hits[i].Add(1)
	})

	if badSlot.Load() {
		t.Error("ForEach passed a worker slot outside [0, NumWorkers())")
	}
	for i := range n {
		if got := hits[i].Load(); got != 1 {
			t.Errorf("index %d visited %d times, want 1", i, got)
		}
	}
}

func TestForEachPerWorkerState(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	counts := make([]int, pool.NumWorkers())
	pool.ForEach(300, func(worker, i int) {
		counts[worker]++
	})

	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 300 {
		t.Errorf("sum of per-worker counts = %d, want 300", total)
	}
}

func TestZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ForEach(0, func(worker, i int) { called = true })

	if called {
		t.Error("n=0 should not call fn")
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 50
	results := make([]int, n)
	pool.ForEach(n, func(worker, i int) {
		if worker != 0 {
			t.Errorf("closed pool ran index %d on worker %d, want 0", i, worker)
		}
		results[i] = i + 1
	})

	for i := range n {
		if results[i] != i+1 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i+1)
		}
	}
}

func BenchmarkForEach(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ForEach(256, func(worker, j int) {
			_ = j * j
		})
	}
}
