package analysis

import (
	"math"

	"github.com/san-kum/orbitlab/internal/gravity"
	"github.com/san-kum/orbitlab/internal/integrator"
	"github.com/san-kum/orbitlab/internal/orbit"
)

// DivergenceExponent estimates the largest Lyapunov exponent of a
// configuration by the trajectory-separation method: run the base and a
// slightly perturbed twin side by side, average the log of their
// separation growth, renormalize when the separation gets large. A
// positive value indicates a chaotic region of parameter space, which
// is where the stability sweep produces its fractal boundaries.
func DivergenceExponent(base orbit.Bodies, g, softening, perturbation, dt, duration float64) float64 {
	if len(base) == 0 || perturbation <= 0 {
		return 0
	}

	a := base.Clone()
	b := base.Clone()
	b[0].Position.X += perturbation

	accel := gravity.NewAccelerator(g, softening)
	stepA := integrator.NewRK4(accel)
	stepB := integrator.NewRK4(gravity.NewAccelerator(g, softening))

	d0 := perturbation
	sumLog := 0.0
	count := 0

	for t := 0.0; t < duration; t += dt {
		stepA.Step(a, dt)
		stepB.Step(b, dt)

		sep := separation(a, b)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		// Renormalize so the twin stays in the linear regime.
		if sep > 1.0 {
			scale := d0 / sep
			for i := range b {
				b[i].Position = a[i].Position.Add(b[i].Position.Sub(a[i].Position).Scale(scale))
				b[i].Velocity = a[i].Velocity.Add(b[i].Velocity.Sub(a[i].Velocity).Scale(scale))
			}
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

func separation(a, b orbit.Bodies) float64 {
	sum := 0.0
	for i := range a {
		dp := b[i].Position.Sub(a[i].Position)
		dv := b[i].Velocity.Sub(a[i].Velocity)
		sum += dp.MagnitudeSquared() + dv.MagnitudeSquared()
	}
	return math.Sqrt(sum)
}
