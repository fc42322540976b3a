// Package nbody wires the simulation core into a runnable engine: a world
// holding the body components, a dependency-scheduled stage pipeline and a
// fixed-tick driver loop. It is a compute harness; beyond the optional state
// dump it produces no output other than final in-memory state.
package nbody

import (
	"context"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/MultiCoreECS/SmolNBody/codec"
	"github.com/MultiCoreECS/SmolNBody/ecs"
	"github.com/MultiCoreECS/SmolNBody/schedule"
	"github.com/MultiCoreECS/SmolNBody/sim"
)

// Engine owns the world and the scheduler for one simulation run.
type Engine struct {
	world     *ecs.World
	scheduler *schedule.Scheduler

	ticks    int
	poolSize int
	clock    clock.Clock
	logger   zerolog.Logger
	seed     int64
}

// NewEngine builds a ready-to-run engine with bodyCount randomly seeded
// bodies. Configuration comes from the environment, then options. All
// startup errors (invalid count, bad config, pool construction failure)
// surface here, before any simulation state is built.
func NewEngine(bodyCount int, opts ...Option) (*Engine, error) {
	if bodyCount < 0 {
		return nil, eris.Errorf("body count must not be negative, got %d", bodyCount)
	}
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)

	e := &Engine{
		ticks:    cfg.Ticks,
		poolSize: cfg.Workers,
		clock:    clock.New(),
		logger:   zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger(),
		seed:     time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ticks < 0 {
		return nil, eris.Errorf("tick count must not be negative, got %d", e.ticks)
	}

	e.scheduler, err = schedule.New(e.poolSize)
	if err != nil {
		return nil, err
	}
	e.world = ecs.NewWorld(ecs.NewLogger(e.logger))

	bounds := sim.WorldBounds{X: float64(cfg.BoundsX), Y: float64(cfg.BoundsY)}
	if err := sim.Register(e.world, e.scheduler, e.clock, bounds); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(e.seed))
	if err := sim.SpawnBodies(e.world, bodyCount, rng); err != nil {
		return nil, err
	}

	e.world.Logger.LogWorld(e.world, zerolog.DebugLevel)
	e.logger.Info().
		Int("bodies", bodyCount).
		Int("workers", e.poolSize).
		Int("ticks", e.ticks).
		Msg("engine ready")
	return e, nil
}

// World exposes the engine's world state; callers read it after (or between)
// ticks.
func (e *Engine) World() *ecs.World {
	return e.world
}

// Tick advances the simulation by exactly one tick.
func (e *Engine) Tick() error {
	return e.scheduler.Tick(e.world)
}

// Run executes the configured number of ticks. ctx is checked only between
// ticks; a stage error aborts the run immediately. There is no other exit
// condition, timeout or partial-result exposure.
func (e *Engine) Run(ctx context.Context) error {
	start := time.Now()
	for i := 0; i < e.ticks; i++ {
		if err := ctx.Err(); err != nil {
			return eris.Wrapf(err, "run cancelled after %d ticks", i)
		}
		if err := e.scheduler.Tick(e.world); err != nil {
			return err
		}
	}
	e.logger.Info().
		Int("ticks", e.ticks).
		Dur("elapsed", time.Since(start)).
		Msg("run complete")
	return nil
}

// DumpState writes a JSON snapshot of every entity's component values to w.
// A reporting layer on top of the core, fed by reading world state after the
// ticks it cares about.
func (e *Engine) DumpState(w io.Writer) error {
	state, err := e.world.State()
	if err != nil {
		return err
	}
	return codec.EncodeTo(w, state)
}
