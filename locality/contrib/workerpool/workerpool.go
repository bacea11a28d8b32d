// Copyright 2025 The go-locality Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for running
// independent units of work, such as the blocks of a blocked array, in
// parallel. A Pool is created once and reused across traversals so that
// goroutines are not spawned per call.
//
// Every work function receives the slot of the worker executing it, a
// number in [0, NumWorkers()). Callers use it to index per-worker state
// without synchronisation.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ForEach(numBlocks, func(worker, block int) {
//	    processBlock(block)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines fed from a shared queue.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	fn      func(worker int)
	barrier *sync.WaitGroup
}

// New starts a pool of numWorkers goroutines. If numWorkers <= 0 the pool
// uses GOMAXPROCS workers.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers),
	}
	for slot := range numWorkers {
		go p.worker(slot)
	}
	return p
}

func (p *Pool) worker(slot int) {
	for t := range p.workC {
		t.fn(slot)
		t.barrier.Done()
	}
}

// NumWorkers returns the number of worker slots.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers after pending work completes. It is safe to call
// Close more than once. A closed pool runs work on the calling goroutine
// as worker 0.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ForEach calls fn(worker, i) for every i in [0, n) and blocks until all
// calls return. Indices are handed out one at a time through an atomic
// counter, so a slow item does not hold back the rest of a worker's share.
// No order is guaranteed between different indices.
func (p *Pool) ForEach(n int, fn func(worker, i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for i := range n {
			fn(0, i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- task{
			fn: func(worker int) {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(worker, i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}
