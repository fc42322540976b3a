package nbody

import (
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Option augments how the engine is constructed, overriding the environment
// config where the two overlap.
type Option func(*Engine)

// WithTicks sets how many ticks Run executes. The default comes from
// NBODY_TICKS (100000 if unset).
func WithTicks(n int) Option {
	return func(e *Engine) {
		e.ticks = n
	}
}

// WithPoolSize sets the worker pool size used for stage dispatch and for
// the gravity stage's intra-stage parallelism. The default comes from
// NBODY_WORKERS (4 if unset).
func WithPoolSize(n int) Option {
	return func(e *Engine) {
		e.poolSize = n
	}
}

// WithClock sets the time source behind the clock resource. Tests can pass
// a clock.Mock for fixed, caller-controlled tick deltas.
func WithClock(source clock.Clock) Option {
	return func(e *Engine) {
		e.clock = source
	}
}

// WithLogger replaces the logger built from NBODY_LOG_LEVEL.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSeed fixes the RNG seed for body spawning, making the initial
// conditions reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}
