package sim

import (
	"math"

	"github.com/MultiCoreECS/SmolNBody/ecs"
	"github.com/MultiCoreECS/SmolNBody/schedule"
	"github.com/MultiCoreECS/SmolNBody/types"
)

// G is the gravitational constant.
const G = 6.67430e-11

// axisAccel is the per-axis pseudo-acceleration a body receives from a
// neighbor of mass otherMass at signed axis separation delta. Each axis is
// treated as an independent 1-D inverse-square interaction on the absolute
// axis difference, not the true scalar distance; a deliberate reproduction
// of the original force law (see DESIGN.md).
//
// An axis separation within the overlap epsilon contributes nothing: that is
// the zero-axis-distance policy, so an aligned pair never divides by zero on
// the aligned axis. The attracted body's own mass cancels out of F/m, which
// also keeps zero-mass bodies finite. The sign of delta directs the pull
// toward the neighbor.
func axisAccel(otherMass, delta float64) float64 {
	dist := math.Abs(delta)
	if dist <= overlapEpsilon {
		return 0
	}
	return math.Copysign(G*otherMass/(dist*dist), delta)
}

// ApplyGravity resets and recomputes every body's acceleration from scratch
// each tick: O(n²) over the body set. Reads Mass and Position, exclusively
// writes Acceleration. Depends on update_time for ordering only.
//
// The outer loop is the unit of parallel work. Each chunk accumulates into
// disjoint slots of a scratch slice (a Go map cannot take concurrent writes
// even to distinct keys) and the single write handle commits the results
// after the chunks join. The inner loop always walks bodies in entity ID
// order, so the float accumulation order, and therefore the result bits, do
// not depend on the pool size.
func ApplyGravity(ctx schedule.Context) error {
	w := ctx.World()
	masses, err := ecs.GetComponent[Mass](w, MassComponent)
	if err != nil {
		return err
	}
	positions, err := ecs.GetComponent[Position](w, PositionComponent)
	if err != nil {
		return err
	}
	accels, err := ecs.GetComponent[Acceleration](w, AccelerationComponent)
	if err != nil {
		return err
	}

	mr := masses.Reader()
	defer mr.Release()
	pr := positions.Reader()
	defer pr.Release()
	aw := accels.Writer()
	defer aw.Release()

	bodies := ecs.Join(w.Entities(), mr, pr, aw)
	scratch := make([]types.Vec2, len(bodies))

	ctx.Parallel(len(bodies), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			self := bodies[i]
			selfPos, _ := pr.Get(self)

			var acc types.Vec2
			for _, other := range bodies {
				if other == self {
					continue
				}
				otherPos, _ := pr.Get(other)
				if overlapping(selfPos, otherPos) {
					continue
				}
				otherMass, _ := mr.Get(other)
				acc.X += axisAccel(otherMass.Mass, otherPos.X-selfPos.X)
				acc.Y += axisAccel(otherMass.Mass, otherPos.Y-selfPos.Y)
			}
			scratch[i] = acc
		}
	})

	for i, id := range bodies {
		aw.Set(id, Acceleration{scratch[i]})
	}
	return nil
}
