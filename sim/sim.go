// Package sim implements the n-body physics pipeline on top of the ecs and
// schedule packages: time accounting, O(n²) gravity accumulation and
// two-stage semi-implicit Euler integration.
package sim

import (
	"math/rand"

	"github.com/benbjohnson/clock"
	"github.com/rotisserie/eris"

	"github.com/MultiCoreECS/SmolNBody/ecs"
	"github.com/MultiCoreECS/SmolNBody/schedule"
	"github.com/MultiCoreECS/SmolNBody/types"
)

// Stage names, and the hand-declared prerequisite lists wired in Register.
const (
	UpdateTimeStage       = "update_time"
	ApplyGravityStage     = "apply_gravity"
	UpdateVelocitiesStage = "update_vels"
	UpdatePositionsStage  = "update_positions"
)

// Register sets up the five body component stores, the clock and world
// bounds resources, and the four pipeline stages with their dependency
// edges. The declared edges are what serializes conflicting access: gravity
// writes Acceleration before update_vels reads it, update_vels writes
// Velocity before update_positions reads it, and the clock is written before
// anything reads the delta.
func Register(w *ecs.World, s *schedule.Scheduler, source clock.Clock, bounds WorldBounds) error {
	if _, err := ecs.RegisterComponent[Body](w, BodyComponent); err != nil {
		return err
	}
	if _, err := ecs.RegisterComponent[Mass](w, MassComponent); err != nil {
		return err
	}
	if _, err := ecs.RegisterComponent[Position](w, PositionComponent); err != nil {
		return err
	}
	if _, err := ecs.RegisterComponent[Velocity](w, VelocityComponent); err != nil {
		return err
	}
	if _, err := ecs.RegisterComponent[Acceleration](w, AccelerationComponent); err != nil {
		return err
	}
	if _, err := ecs.RegisterResource(w, ClockResource, NewClock(source)); err != nil {
		return err
	}
	if _, err := ecs.RegisterResource(w, WorldBoundsResource, bounds); err != nil {
		return err
	}

	if err := s.Add(UpdateTimeStage, nil, UpdateTime); err != nil {
		return err
	}
	if err := s.Add(ApplyGravityStage, []string{UpdateTimeStage}, ApplyGravity); err != nil {
		return err
	}
	if err := s.Add(UpdateVelocitiesStage, []string{UpdateTimeStage, ApplyGravityStage}, UpdateVelocities); err != nil {
		return err
	}
	if err := s.Add(UpdatePositionsStage, []string{UpdateTimeStage, UpdateVelocitiesStage}, UpdatePositions); err != nil {
		return err
	}
	return s.Validate()
}

// SpawnBodies creates n body entities with random initial conditions: mass
// in [1, 5), velocity components in [-1, 1) and position inside the world
// bounds. Runs at startup, before the first tick.
func SpawnBodies(w *ecs.World, n int, rng *rand.Rand) error {
	if n < 0 {
		return eris.Errorf("body count must not be negative, got %d", n)
	}
	boundsRes, err := ecs.GetResource[WorldBounds](w, WorldBoundsResource)
	if err != nil {
		return err
	}
	bounds, release := boundsRes.Read()
	release()

	bw, err := writerFor[Body](w, BodyComponent)
	if err != nil {
		return err
	}
	defer bw.Release()
	mw, err := writerFor[Mass](w, MassComponent)
	if err != nil {
		return err
	}
	defer mw.Release()
	pw, err := writerFor[Position](w, PositionComponent)
	if err != nil {
		return err
	}
	defer pw.Release()
	vw, err := writerFor[Velocity](w, VelocityComponent)
	if err != nil {
		return err
	}
	defer vw.Release()
	aw, err := writerFor[Acceleration](w, AccelerationComponent)
	if err != nil {
		return err
	}
	defer aw.Release()

	for i := 0; i < n; i++ {
		id := w.Create()
		bw.Set(id, Body{})
		mw.Set(id, Mass{Mass: 1 + rng.Float64()*4})
		pw.Set(id, Position{types.Vec2{
			X: rng.Float64() * bounds.X,
			Y: rng.Float64() * bounds.Y,
		}})
		vw.Set(id, Velocity{types.Vec2{
			X: -1 + rng.Float64()*2,
			Y: -1 + rng.Float64()*2,
		}})
		aw.Set(id, Acceleration{})
	}
	return nil
}

func writerFor[T any](w *ecs.World, name string) (*ecs.WriteHandle[T], error) {
	store, err := ecs.GetComponent[T](w, name)
	if err != nil {
		return nil, err
	}
	return store.Writer(), nil
}
