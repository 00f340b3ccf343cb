package orbit

import (
	"fmt"

	"github.com/san-kum/orbitlab/internal/vec"
)

// BodyCount is the number of bodies a live simulation holds. The physics
// code below generalizes to any n, but a loaded configuration is always
// three bodies.
const BodyCount = 3

// Body is a point mass. Mass is set at load time and never mutated by the
// integrator; position and velocity are owned by whichever Bodies slice
// the body lives in.
type Body struct {
	Position vec.Vector3
	Velocity vec.Vector3
	Mass     float64
}

// Bodies is an ordered simulation state. Index is identity: cloning and
// stepping must keep body i at index i.
type Bodies []Body

// Clone returns a deep copy sharing no storage with the receiver.
func (b Bodies) Clone() Bodies {
	c := make(Bodies, len(b))
	copy(c, b)
	return c
}

// IsValid reports whether every component of every body is finite.
func (b Bodies) IsValid() bool {
	for i := range b {
		if !b[i].Position.IsFinite() || !b[i].Velocity.IsFinite() {
			return false
		}
	}
	return true
}

// Validate rejects configurations the integrator must never see: wrong
// body count, non-positive mass, non-finite initial conditions.
func Validate(bodies Bodies, wantCount int) error {
	if len(bodies) != wantCount {
		return fmt.Errorf("expected %d bodies, got %d", wantCount, len(bodies))
	}
	for i, b := range bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("body %d: mass must be positive, got %f", i+1, b.Mass)
		}
		if !b.Position.IsFinite() {
			return fmt.Errorf("body %d: position is not finite", i+1)
		}
		if !b.Velocity.IsFinite() {
			return fmt.Errorf("body %d: velocity is not finite", i+1)
		}
	}
	return nil
}
