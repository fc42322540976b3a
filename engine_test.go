package nbody

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/MultiCoreECS/SmolNBody/assert"
)

func TestEngineRejectsNegativeBodyCount(t *testing.T) {
	_, err := NewEngine(-3)
	assert.ErrorContains(t, err, "must not be negative")
}

func TestZeroBodiesRunsEveryStage(t *testing.T) {
	engine, err := NewEngine(0,
		WithTicks(100),
		WithPoolSize(2),
		WithLogger(zerolog.Nop()),
	)
	assert.NilError(t, err)
	assert.Equal(t, 0, engine.World().EntityCount())
	assert.NilError(t, engine.Run(context.Background()))
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	engine, err := NewEngine(1, WithTicks(1_000_000), WithLogger(zerolog.Nop()))
	assert.NilError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = engine.Run(ctx)
	assert.IsError(t, err)
	assert.True(t, strings.Contains(err.Error(), "run cancelled"), err.Error())
}

// newMockedEngine builds an engine whose ticks are driven by a mock clock,
// so deltas are fixed and caller-controlled.
func newMockedEngine(t *testing.T, poolSize int) (*Engine, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	engine, err := NewEngine(32,
		WithPoolSize(poolSize),
		WithSeed(42),
		WithClock(mock),
		WithLogger(zerolog.Nop()),
	)
	assert.NilError(t, err)
	return engine, mock
}

func TestTickOutputsAreBitIdenticalAcrossPoolSizes(t *testing.T) {
	serial, serialClock := newMockedEngine(t, 1)
	parallel, parallelClock := newMockedEngine(t, 8)

	const ticks = 10
	for i := 0; i < ticks; i++ {
		serialClock.Add(50 * time.Millisecond)
		assert.NilError(t, serial.Tick())
		parallelClock.Add(50 * time.Millisecond)
		assert.NilError(t, parallel.Tick())
	}

	serialState, err := serial.World().State()
	assert.NilError(t, err)
	parallelState, err := parallel.World().State()
	assert.NilError(t, err)
	assert.DeepEqual(t, serialState, parallelState)
}

func TestDumpStateWritesComponentSnapshot(t *testing.T) {
	engine, mock := newMockedEngine(t, 2)
	mock.Add(time.Second)
	assert.NilError(t, engine.Tick())

	var buf bytes.Buffer
	assert.NilError(t, engine.DumpState(&buf))
	out := buf.String()
	assert.True(t, bytes.Contains(buf.Bytes(), []byte(`"position"`)), out)
	assert.True(t, bytes.Contains(buf.Bytes(), []byte(`"mass"`)), out)
}
