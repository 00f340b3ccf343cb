package gravity

import (
	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/vec"
)

const (
	DefaultG         = 1000.0
	DefaultSoftening = 5.0

	// minSeparation bounds the direction normalization when two bodies
	// coincide. Softening only enters the force magnitude; the unit
	// vector still divides by the raw distance.
	minSeparation = 1e-9
)

// Accelerator computes pairwise softened-gravity accelerations.
type Accelerator struct {
	G             float64
	Softening     float64
	MinSeparation float64
}

func NewAccelerator(g, softening float64) *Accelerator {
	return &Accelerator{
		G:             g,
		Softening:     softening,
		MinSeparation: minSeparation,
	}
}

// Accelerations returns one acceleration vector per body, summing the
// softened pull of every other body. Each unordered pair is visited once
// and contributes equal and opposite forces. The input is never mutated.
//
// The force magnitude uses the softened squared distance d^2+eps^2 while
// the direction uses the raw distance d. The asymmetry is intentional and
// matches the simulated trajectories this tool is built around.
func (a *Accelerator) Accelerations(bodies orbit.Bodies) []vec.Vector3 {
	n := len(bodies)
	acc := make([]vec.Vector3, n)
	eps2 := a.Softening * a.Softening

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := bodies[j].Position.Sub(bodies[i].Position)
			d := r.Magnitude()
			d2s := d*d + eps2

			if d < a.MinSeparation {
				d = a.MinSeparation
			}
			dir := r.Scale(1.0 / d)

			// F/m_i and F/m_j directly; the pair force magnitude is
			// G*m_i*m_j/d2s.
			acc[i] = acc[i].Add(dir.Scale(a.G * bodies[j].Mass / d2s))
			acc[j] = acc[j].Sub(dir.Scale(a.G * bodies[i].Mass / d2s))
		}
	}

	return acc
}
