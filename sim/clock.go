package sim

import (
	"github.com/MultiCoreECS/SmolNBody/ecs"
	"github.com/MultiCoreECS/SmolNBody/schedule"
)

// UpdateTime is the exclusive writer of the clock resource. It reads the
// current instant from the clock's source and rolls delta, total and last
// forward. No prerequisites; always the first stage to become eligible.
func UpdateTime(ctx schedule.Context) error {
	res, err := ecs.GetResource[Clock](ctx.World(), ClockResource)
	if err != nil {
		return err
	}
	c, release := res.Write()
	defer release()

	now := c.Source.Now()
	c.Delta = now.Sub(c.Last).Seconds()
	c.Total = now.Sub(c.Beginning).Seconds()
	c.Last = now
	return nil
}
