package sim

import (
	"github.com/MultiCoreECS/SmolNBody/ecs"
	"github.com/MultiCoreECS/SmolNBody/schedule"
)

// Semi-implicit Euler, split across two stages: velocity picks up the
// acceleration computed this tick, then position picks up the velocity just
// updated this tick.

// UpdateVelocities reads Acceleration and the clock delta and exclusively
// writes Velocity: v += a·delta. Depends on update_time and apply_gravity.
func UpdateVelocities(ctx schedule.Context) error {
	w := ctx.World()
	delta, err := clockDelta(w)
	if err != nil {
		return err
	}
	accels, err := ecs.GetComponent[Acceleration](w, AccelerationComponent)
	if err != nil {
		return err
	}
	vels, err := ecs.GetComponent[Velocity](w, VelocityComponent)
	if err != nil {
		return err
	}

	ar := accels.Reader()
	defer ar.Release()
	vw := vels.Writer()
	defer vw.Release()

	for _, id := range ecs.Join(w.Entities(), ar, vw) {
		a, _ := ar.Get(id)
		v, _ := vw.Get(id)
		v.Vec2 = v.Add(a.Scale(delta))
		vw.Set(id, v)
	}
	return nil
}

// UpdatePositions reads Velocity and the clock delta and exclusively writes
// Position: p += v·delta. Depends on update_time and update_vels.
func UpdatePositions(ctx schedule.Context) error {
	w := ctx.World()
	delta, err := clockDelta(w)
	if err != nil {
		return err
	}
	vels, err := ecs.GetComponent[Velocity](w, VelocityComponent)
	if err != nil {
		return err
	}
	positions, err := ecs.GetComponent[Position](w, PositionComponent)
	if err != nil {
		return err
	}

	vr := vels.Reader()
	defer vr.Release()
	pw := positions.Writer()
	defer pw.Release()

	for _, id := range ecs.Join(w.Entities(), vr, pw) {
		v, _ := vr.Get(id)
		p, _ := pw.Get(id)
		p.Vec2 = p.Add(v.Scale(delta))
		pw.Set(id, p)
	}
	return nil
}

// clockDelta reads the most recent tick's delta under the clock's shared
// lock. Graph ordering guarantees the update_time write has completed.
func clockDelta(w *ecs.World) (float64, error) {
	res, err := ecs.GetResource[Clock](w, ClockResource)
	if err != nil {
		return 0, err
	}
	c, release := res.Read()
	defer release()
	return c.Delta, nil
}
