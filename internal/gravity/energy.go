package gravity

import (
	"github.com/san-kum/orbitlab/internal/orbit"
)

// TotalEnergy returns kinetic plus potential energy. The potential term
// uses the unsoftened pairwise distance, unlike the force computation;
// the diagnostic is for drift monitoring only and never feeds back into
// the simulation.
func (a *Accelerator) TotalEnergy(bodies orbit.Bodies) float64 {
	ke := 0.0
	pe := 0.0

	for i := range bodies {
		v2 := bodies[i].Velocity.MagnitudeSquared()
		ke += 0.5 * bodies[i].Mass * v2

		for j := i + 1; j < len(bodies); j++ {
			d := bodies[i].Position.DistanceTo(bodies[j].Position)
			pe -= a.G * bodies[i].Mass * bodies[j].Mass / d
		}
	}

	return ke + pe
}

// Momentum returns the total linear momentum. Internal forces cancel
// pairwise, so this should stay constant up to round-off.
func Momentum(bodies orbit.Bodies) (px, py, pz float64) {
	for i := range bodies {
		px += bodies[i].Mass * bodies[i].Velocity.X
		py += bodies[i].Mass * bodies[i].Velocity.Y
		pz += bodies[i].Mass * bodies[i].Velocity.Z
	}
	return
}

// AngularMomentum returns the z component of total angular momentum about
// the origin.
func AngularMomentum(bodies orbit.Bodies) float64 {
	L := 0.0
	for i := range bodies {
		b := &bodies[i]
		L += b.Mass * (b.Position.X*b.Velocity.Y - b.Position.Y*b.Velocity.X)
	}
	return L
}
