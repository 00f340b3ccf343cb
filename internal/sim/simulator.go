package sim

import (
	"fmt"

	"github.com/san-kum/orbitlab/internal/gravity"
	"github.com/san-kum/orbitlab/internal/integrator"
	"github.com/san-kum/orbitlab/internal/orbit"
)

// Observer is notified once per executed physics sub-step.
type Observer interface {
	OnStep(bodies orbit.Bodies, t float64)
}

// Simulator owns the live simulation state and drives it at a fixed
// physics sub-step regardless of how callers slice elapsed time.
// Single-threaded; every method runs to completion with no I/O.
type Simulator struct {
	bodies    orbit.Bodies
	accel     *gravity.Accelerator
	stepper   integrator.Stepper
	acc       *Accumulator
	steps     int64
	observers []Observer
}

func New(g, softening, step float64) *Simulator {
	accel := gravity.NewAccelerator(g, softening)
	return &Simulator{
		accel:   accel,
		stepper: integrator.NewRK4(accel),
		acc:     NewAccumulator(step),
	}
}

func (s *Simulator) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// SetStepper swaps the integration scheme. Safe only between Advance
// calls.
func (s *Simulator) SetStepper(st integrator.Stepper) {
	s.stepper = st
}

// LoadConfig replaces the live state with a clone of the given bodies.
// The previous state is discarded whole; the accumulator and step count
// restart from zero. Invalid configurations are rejected before they can
// reach the integrator.
func (s *Simulator) LoadConfig(bodies orbit.Bodies) error {
	if err := orbit.Validate(bodies, orbit.BodyCount); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	s.bodies = bodies.Clone()
	s.acc.Reset()
	s.steps = 0
	return nil
}

// Advance feeds a visual-time increment to the accumulator and executes
// the sub-steps it releases, zero or more. Increments must be
// non-negative. Non-finite values arising from extreme trajectories
// propagate silently; divergence is the stability evaluator's concern,
// not the stepper's.
func (s *Simulator) Advance(dtVisual float64) {
	n := s.acc.Add(dtVisual)
	h := s.acc.Step()
	for i := 0; i < n; i++ {
		s.stepper.Step(s.bodies, h)
		s.steps++
		for _, o := range s.observers {
			o.OnStep(s.bodies, s.Time())
		}
	}
}

// Snapshot returns an independent copy of the current state for
// rendering or inspection.
func (s *Simulator) Snapshot() orbit.Bodies {
	return s.bodies.Clone()
}

func (s *Simulator) TotalEnergy() float64 {
	return s.accel.TotalEnergy(s.bodies)
}

// Steps returns the number of physics sub-steps executed since the last
// LoadConfig.
func (s *Simulator) Steps() int64 {
	return s.steps
}

// Time returns the simulated time consumed by executed sub-steps.
func (s *Simulator) Time() float64 {
	return float64(s.steps) * s.acc.Step()
}
