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

package uarray2b

import (
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-locality/locality"
	"github.com/ajroetker/go-locality/locality/contrib/workerpool"
)

// WorkerStats counts the work done by one worker slot.
type WorkerStats struct {
	Blocks   int
	Elements int
}

// Stats summarises a parallel traversal.
type Stats struct {
	Blocks    int
	Elements  int
	PerWorker []WorkerStats
}

// paddedStats keeps each worker's counters on its own cache line.
type paddedStats struct {
	WorkerStats
	_ cpu.CacheLinePad
}

// ParallelForEachBlock visits every element like ForEachBlockMajor, but
// hands whole blocks to the workers of pool. Within a block elements are
// visited in row-major order by a single worker; different blocks run
// concurrently and in no particular order.
//
// visit is called from several goroutines at once. It must only modify the
// element it is given, or synchronise access to any other state.
//
// A nil pool runs the traversal sequentially on the calling goroutine.
func (g *Grid[T]) ParallelForEachBlock(pool *workerpool.Pool, visit locality.Visitor[T]) (Stats, error) {
	if visit == nil {
		return Stats{}, ErrNilVisitor
	}
	if g.blocks == nil {
		return Stats{}, ErrReleased
	}

	numWorkers := 1
	if pool != nil {
		numWorkers = pool.NumWorkers()
	}
	slots := make([]paddedStats, numWorkers)

	blockedWidth := g.BlockedWidth()
	numBlocks := blockedWidth * g.BlockedHeight()

	if pool == nil {
		for i := range numBlocks {
			slots[0].Elements += g.visitBlock(i%blockedWidth, i/blockedWidth, visit)
			slots[0].Blocks++
		}
	} else {
		pool.ForEach(numBlocks, func(worker, i int) {
			slots[worker].Elements += g.visitBlock(i%blockedWidth, i/blockedWidth, visit)
			slots[worker].Blocks++
		})
	}

	stats := Stats{PerWorker: make([]WorkerStats, numWorkers)}
	for i := range slots {
		stats.PerWorker[i] = slots[i].WorkerStats
		stats.Blocks += slots[i].Blocks
		stats.Elements += slots[i].Elements
	}
	return stats, nil
}
