package schedule

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/MultiCoreECS/SmolNBody/assert"
	"github.com/MultiCoreECS/SmolNBody/ecs"
)

func testWorld() *ecs.World {
	return ecs.NewWorld(ecs.NewLogger(zerolog.Nop()))
}

// interval records when a stage invocation started and ended, in ticks of a
// shared monotonic sequence counter.
type interval struct {
	start, end int64
}

type recorder struct {
	c atomic.Int64

	mu   sync.Mutex
	runs map[string][]interval
}

func newRecorder() *recorder {
	return &recorder{runs: make(map[string][]interval)}
}

func (r *recorder) system(name string) System {
	return func(Context) error {
		start := r.c.Add(1)
		end := r.c.Add(1)
		r.mu.Lock()
		r.runs[name] = append(r.runs[name], interval{start: start, end: end})
		r.mu.Unlock()
		return nil
	}
}

func TestStageNeverStartsBeforeItsPrerequisitesEnd(t *testing.T) {
	const ticks = 25
	for _, poolSize := range []int{1, 2, 8} {
		rec := newRecorder()
		s, err := New(poolSize)
		assert.NilError(t, err)
		// Diamond: a -> {b, c} -> d.
		assert.NilError(t, s.Add("a", nil, rec.system("a")))
		assert.NilError(t, s.Add("b", []string{"a"}, rec.system("b")))
		assert.NilError(t, s.Add("c", []string{"a"}, rec.system("c")))
		assert.NilError(t, s.Add("d", []string{"b", "c"}, rec.system("d")))

		w := testWorld()
		for i := 0; i < ticks; i++ {
			assert.NilError(t, s.Tick(w))
		}

		for _, edge := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}} {
			before, after := rec.runs[edge[0]], rec.runs[edge[1]]
			assert.Len(t, before, ticks)
			assert.Len(t, after, ticks)
			for i := 0; i < ticks; i++ {
				assert.True(t, after[i].start > before[i].end,
					"pool=%d tick=%d: %q started at %d before %q ended at %d",
					poolSize, i, edge[1], after[i].start, edge[0], before[i].end)
			}
		}
	}
}

func TestUnknownPrerequisiteFailsValidation(t *testing.T) {
	s, err := New(2)
	assert.NilError(t, err)
	assert.NilError(t, s.Add("update", []string{"does_not_exist"}, func(Context) error { return nil }))

	err = s.Validate()
	assert.ErrorContains(t, err, `depends on unknown stage "does_not_exist"`)

	// The first Tick runs the same validation; it must fail, not hang.
	err = s.Tick(testWorld())
	assert.IsError(t, err)
}

func TestDependencyCycleFailsValidation(t *testing.T) {
	s, err := New(2)
	assert.NilError(t, err)
	assert.NilError(t, s.Add("a", []string{"b"}, func(Context) error { return nil }))
	assert.NilError(t, s.Add("b", []string{"a"}, func(Context) error { return nil }))

	err = s.Validate()
	assert.ErrorContains(t, err, "dependency cycle detected")
	assert.ErrorContains(t, err, "a")
	assert.ErrorContains(t, err, "b")
}

func TestSelfDependencyIsACycle(t *testing.T) {
	s, err := New(1)
	assert.NilError(t, err)
	assert.NilError(t, s.Add("a", []string{"a"}, func(Context) error { return nil }))
	assert.ErrorContains(t, s.Validate(), "dependency cycle detected")
}

func TestDuplicateStageNameRejected(t *testing.T) {
	s, err := New(1)
	assert.NilError(t, err)
	assert.NilError(t, s.Add("a", nil, func(Context) error { return nil }))
	assert.ErrorContains(t, s.Add("a", nil, func(Context) error { return nil }), "already registered")
}

func TestPoolSizeMustBePositive(t *testing.T) {
	_, err := New(0)
	assert.ErrorContains(t, err, "pool size must be at least 1")
}

func TestStageErrorAbortsTickAndSkipsDependents(t *testing.T) {
	s, err := New(2)
	assert.NilError(t, err)
	ran := false
	assert.NilError(t, s.Add("a", nil, func(Context) error { return eris.New("boom") }))
	assert.NilError(t, s.Add("b", []string{"a"}, func(Context) error { ran = true; return nil }))

	err = s.Tick(testWorld())
	assert.ErrorContains(t, err, "boom")
	assert.True(t, strings.Contains(err.Error(), `stage "a" generated an error`), err.Error())
	assert.False(t, ran, "dependent stage must not run after its prerequisite failed")
	assert.Equal(t, uint64(0), s.CurrentTick(), "an aborted tick does not count as completed")
}

func TestStagePanicBecomesError(t *testing.T) {
	s, err := New(1)
	assert.NilError(t, err)
	assert.NilError(t, s.Add("a", nil, func(Context) error { panic("kaboom") }))

	err = s.Tick(testWorld())
	assert.ErrorContains(t, err, `stage "a" panicked: kaboom`)
}

func TestEmptySchedulerTicks(t *testing.T) {
	s, err := New(4)
	assert.NilError(t, err)
	w := testWorld()
	assert.NilError(t, s.Tick(w))
	assert.NilError(t, s.Tick(w))
	assert.Equal(t, uint64(2), s.CurrentTick())
}

func TestContextParallelCoversRangeOnce(t *testing.T) {
	for _, poolSize := range []int{1, 3, 8} {
		s, err := New(poolSize)
		assert.NilError(t, err)

		const n = 103
		hits := make([]int32, n)
		assert.NilError(t, s.Add("count", nil, func(ctx Context) error {
			ctx.Parallel(n, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			return nil
		}))
		assert.NilError(t, s.Tick(testWorld()))

		for i, h := range hits {
			assert.Equal(t, int32(1), h, "pool=%d index %d hit %d times", poolSize, i, h)
		}
	}
}

func TestContextTickNumber(t *testing.T) {
	s, err := New(1)
	assert.NilError(t, err)
	var seen []uint64
	assert.NilError(t, s.Add("a", nil, func(ctx Context) error {
		seen = append(seen, ctx.Tick())
		return nil
	}))
	w := testWorld()
	assert.NilError(t, s.Tick(w))
	assert.NilError(t, s.Tick(w))
	assert.DeepEqual(t, []uint64{0, 1}, seen)
}
