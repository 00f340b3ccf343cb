package integrator

import (
	"github.com/san-kum/orbitlab/internal/gravity"
	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/vec"
)

// Stepper advances a body set by one sub-step of dt in place.
type Stepper interface {
	Step(bodies orbit.Bodies, dt float64)
}

// RK4 is the classical 4th-order Runge-Kutta stepper over the coupled
// (position, velocity) state. Positions derive from velocity, velocities
// from the gravitational acceleration. Stage evaluations work on a
// scratch clone so the authoritative state is only touched by the final
// commit; an external reader never observes a half-applied step.
type RK4 struct {
	accel *gravity.Accelerator

	stage          orbit.Bodies
	v1, v2, v3, v4 []vec.Vector3
}

func NewRK4(accel *gravity.Accelerator) *RK4 {
	return &RK4{accel: accel}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.stage) != n {
		r.stage = make(orbit.Bodies, n)
		r.v1 = make([]vec.Vector3, n)
		r.v2 = make([]vec.Vector3, n)
		r.v3 = make([]vec.Vector3, n)
		r.v4 = make([]vec.Vector3, n)
	}
}

// evalStage populates the scratch state as base advanced by (v, a)*dt and
// returns the accelerations there.
func (r *RK4) evalStage(base orbit.Bodies, v, a []vec.Vector3, dt float64) []vec.Vector3 {
	for i := range base {
		r.stage[i].Position = base[i].Position.Add(v[i].Scale(dt))
		r.stage[i].Velocity = base[i].Velocity.Add(a[i].Scale(dt))
		r.stage[i].Mass = base[i].Mass
	}
	return r.accel.Accelerations(r.stage)
}

func (r *RK4) Step(bodies orbit.Bodies, dt float64) {
	n := len(bodies)
	r.ensureScratch(n)

	a1 := r.accel.Accelerations(bodies)
	for i := range bodies {
		r.v1[i] = bodies[i].Velocity
	}

	a2 := r.evalStage(bodies, r.v1, a1, dt*0.5)
	for i := range bodies {
		r.v2[i] = r.stage[i].Velocity
	}

	a3 := r.evalStage(bodies, r.v2, a2, dt*0.5)
	for i := range bodies {
		r.v3[i] = r.stage[i].Velocity
	}

	a4 := r.evalStage(bodies, r.v3, a3, dt)
	for i := range bodies {
		r.v4[i] = r.stage[i].Velocity
	}

	dt6 := dt / 6.0
	for i := range bodies {
		dv := a1[i].Add(a2[i].Scale(2)).Add(a3[i].Scale(2)).Add(a4[i]).Scale(dt6)
		dp := r.v1[i].Add(r.v2[i].Scale(2)).Add(r.v3[i].Scale(2)).Add(r.v4[i]).Scale(dt6)
		bodies[i].Velocity = bodies[i].Velocity.Add(dv)
		bodies[i].Position = bodies[i].Position.Add(dp)
	}
}
