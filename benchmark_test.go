package nbody

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

func benchmarkTicks(b *testing.B, bodies, poolSize int) {
	mock := clock.NewMock()
	engine, err := NewEngine(bodies,
		WithPoolSize(poolSize),
		WithSeed(1),
		WithClock(mock),
		WithLogger(zerolog.Nop()),
	)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mock.Add(16 * time.Millisecond)
		if err := engine.Tick(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTick100Serial(b *testing.B)   { benchmarkTicks(b, 100, 1) }
func BenchmarkTick100Parallel(b *testing.B) { benchmarkTicks(b, 100, 4) }
func BenchmarkTick500Parallel(b *testing.B) { benchmarkTicks(b, 500, 4) }
