package sim

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Resource names.
const (
	ClockResource       = "clock"
	WorldBoundsResource = "world_bounds"
)

// Clock is the simulation time accounting resource. It is written exactly
// once per tick by the update_time stage, before any stage that reads it.
// Source is the injectable time source; tests drive it with clock.Mock for
// fixed, caller-controlled deltas.
type Clock struct {
	Source    clock.Clock
	Beginning time.Time
	Last      time.Time
	Total     float64
	Delta     float64
}

func NewClock(source clock.Clock) Clock {
	now := source.Now()
	return Clock{
		Source:    source,
		Beginning: now,
		Last:      now,
	}
}

// WorldBounds is an immutable pair of extents set once at startup. It seeds
// the initial position range and is otherwise informational; it is not
// enforced as a boundary constraint.
type WorldBounds struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
