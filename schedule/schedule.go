// Package schedule runs named simulation stages over a world on a fixed-size
// worker pool, honoring a hand-declared dependency graph. The graph is
// validated once (unknown prerequisite names and cycles are construction
// failures, never mid-run discoveries); within a tick, a stage is dispatched
// only after every one of its prerequisites has fully completed.
package schedule

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"

	"github.com/MultiCoreECS/SmolNBody/ecs"
)

// System is the executable behavior of a stage. It runs to completion once
// dispatched; an error aborts the current tick.
type System func(ctx Context) error

type stage struct {
	name       string
	deps       []string
	fn         System
	dependents []int
	indegree   int
}

// Scheduler holds the registered stages and their prerequisite edges.
// Tick executes every stage exactly once and blocks until all have
// completed; there is no cross-tick pipelining.
type Scheduler struct {
	poolSize  int
	stages    []*stage
	byName    map[string]int
	validated bool
	tick      atomic.Uint64
}

// New creates a scheduler with a fixed worker pool size, held for the
// scheduler's lifetime.
func New(poolSize int) (*Scheduler, error) {
	if poolSize < 1 {
		return nil, eris.Errorf("pool size must be at least 1, got %d", poolSize)
	}
	return &Scheduler{
		poolSize: poolSize,
		byName:   make(map[string]int),
	}, nil
}

// Add registers a stage under a unique name with the names of the stages
// that must complete before it each tick. Prerequisites may reference stages
// registered later; reference integrity and acyclicity are checked by
// Validate before the first tick.
func (s *Scheduler) Add(name string, deps []string, system System) error {
	if name == "" {
		return eris.New("stage name must not be empty")
	}
	if system == nil {
		return eris.Errorf("stage %q has no system", name)
	}
	if _, exists := s.byName[name]; exists {
		return eris.Errorf("stage %q is already registered", name)
	}
	s.byName[name] = len(s.stages)
	s.stages = append(s.stages, &stage{
		name: name,
		deps: deps,
		fn:   system,
	})
	s.validated = false
	return nil
}

// Validate checks reference integrity and acyclicity of the declared graph
// and builds the dependency edges used at tick time. Called implicitly by
// the first Tick after registration.
func (s *Scheduler) Validate() error {
	for _, st := range s.stages {
		st.dependents = nil
		st.indegree = 0
	}
	for i, st := range s.stages {
		seen := make(map[string]struct{}, len(st.deps))
		for _, dep := range st.deps {
			depIdx, ok := s.byName[dep]
			if !ok {
				return eris.Errorf("stage %q depends on unknown stage %q", st.name, dep)
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			s.stages[depIdx].dependents = append(s.stages[depIdx].dependents, i)
			st.indegree++
		}
	}

	// Kahn's algorithm; anything left unprocessed sits on a cycle.
	remaining := make([]int, len(s.stages))
	var queue []int
	for i, st := range s.stages {
		remaining[i] = st.indegree
		if st.indegree == 0 {
			queue = append(queue, i)
		}
	}
	processed := 0
	for idx := 0; idx < len(queue); idx++ {
		processed++
		for _, dep := range s.stages[queue[idx]].dependents {
			remaining[dep]--
			if remaining[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if processed != len(s.stages) {
		var cyclic []string
		for i, st := range s.stages {
			if remaining[i] > 0 {
				cyclic = append(cyclic, st.name)
			}
		}
		sort.Strings(cyclic)
		return eris.Errorf("dependency cycle detected among stages %v", cyclic)
	}

	s.validated = true
	return nil
}

// CurrentTick returns the number of completed ticks.
func (s *Scheduler) CurrentTick() uint64 {
	return s.tick.Load()
}

type stageResult struct {
	idx int
	err error
}

// Tick executes exactly one tick over the world. Stages whose prerequisites
// have all completed in the current tick are dispatched to the pool, at most
// poolSize concurrently, in unspecified relative order. Tick returns only
// after every registered stage has completed once, or an error or panic in
// any stage has aborted the tick.
func (s *Scheduler) Tick(w *ecs.World) error {
	if !s.validated {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	if len(s.stages) == 0 {
		s.tick.Add(1)
		return nil
	}

	remaining := make([]int, len(s.stages))
	var ready []int
	for i, st := range s.stages {
		remaining[i] = st.indegree
		if st.indegree == 0 {
			ready = append(ready, i)
		}
	}

	done := make(chan stageResult, len(s.stages))
	running := 0
	var firstErr error
	for {
		for firstErr == nil && len(ready) > 0 && running < s.poolSize {
			idx := ready[0]
			ready = ready[1:]
			running++
			go s.runStage(idx, w, done)
		}
		if running == 0 {
			break
		}
		res := <-done
		running--
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		for _, dep := range s.stages[res.idx].dependents {
			remaining[dep]--
			if remaining[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}
	if firstErr != nil {
		return eris.Wrapf(firstErr, "tick %d aborted", s.tick.Load())
	}

	s.tick.Add(1)
	return nil
}

// runStage executes one stage, converting a panic into a stage error so the
// coordinating Tick can abort cleanly and report the failing stage.
func (s *Scheduler) runStage(idx int, w *ecs.World, done chan<- stageResult) {
	st := s.stages[idx]
	defer func() {
		if r := recover(); r != nil {
			done <- stageResult{idx: idx, err: eris.Errorf("stage %q panicked: %v", st.name, r)}
		}
	}()

	logger := w.Logger.CreateSystemLogger(st.name)
	ctx := Context{
		world:    w,
		logger:   logger,
		tick:     s.tick.Load(),
		poolSize: s.poolSize,
	}

	start := time.Now()
	err := st.fn(ctx)
	if err != nil {
		err = eris.Wrapf(err, "stage %q generated an error", st.name)
	} else {
		logger.Debug().Dur("duration", time.Since(start)).Msg("stage completed")
	}
	done <- stageResult{idx: idx, err: err}
}
