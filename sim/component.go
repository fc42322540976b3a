package sim

import (
	"math"

	"github.com/MultiCoreECS/SmolNBody/types"
)

// Component store names. Every body entity carries all five.
const (
	BodyComponent         = "body"
	MassComponent         = "mass"
	PositionComponent     = "position"
	VelocityComponent     = "velocity"
	AccelerationComponent = "acceleration"
)

// Body tags an entity as a simulated body.
type Body struct{}

type Mass struct {
	Mass float64 `json:"mass"`
}

type Position struct {
	types.Vec2
}

type Velocity struct {
	types.Vec2
}

type Acceleration struct {
	types.Vec2
}

// overlapEpsilon is the axis-wise threshold below which two bodies are
// treated as overlapping and their interaction skipped, guarding against
// singular forces.
const overlapEpsilon = 0.05

// overlapping reports whether both per-axis absolute coordinate differences
// are within the overlap epsilon. Axis-wise, not a true radius check.
func overlapping(a, b Position) bool {
	return math.Abs(a.X-b.X) <= overlapEpsilon && math.Abs(a.Y-b.Y) <= overlapEpsilon
}

// distance is the true scalar distance between two positions. The force law
// deliberately does not use it (see gravity.go); it exists for callers that
// want the real metric.
func distance(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
