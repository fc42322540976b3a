package schedule

import (
	"sync"

	"github.com/MultiCoreECS/SmolNBody/ecs"
)

// Context is handed to a System for one stage invocation. It carries the
// world the stage operates on, the current tick number, a per-stage
// sub-logger and the pool width for intra-stage parallelism.
type Context struct {
	world    *ecs.World
	logger   ecs.Logger
	tick     uint64
	poolSize int
}

func (c Context) World() *ecs.World {
	return c.world
}

func (c Context) Logger() ecs.Logger {
	return c.logger
}

// Tick is the tick number this invocation belongs to, starting at 0.
func (c Context) Tick() uint64 {
	return c.tick
}

// Parallel splits the half-open range [0, n) into at most pool-width chunks
// and runs fn over the chunks concurrently, returning once all complete.
// Chunk boundaries depend only on n and the pool size, so per-chunk work
// that writes disjoint targets stays deterministic across pool sizes.
func (c Context) Parallel(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	chunks := c.poolSize
	if chunks < 1 {
		chunks = 1
	}
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
