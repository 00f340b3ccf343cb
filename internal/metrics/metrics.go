package metrics

import (
	"math"

	"github.com/san-kum/orbitlab/internal/gravity"
	"github.com/san-kum/orbitlab/internal/orbit"
)

// Metric accumulates a diagnostic over sub-step observations. Metrics
// read state, never mutate it.
type Metric interface {
	Name() string
	OnStep(bodies orbit.Bodies, t float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative deviation of total energy from
// its first observation.
type EnergyDrift struct {
	accel   *gravity.Accelerator
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift(accel *gravity.Accelerator) *EnergyDrift {
	return &EnergyDrift{accel: accel}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) OnStep(bodies orbit.Bodies, t float64) {
	energy := e.accel.TotalEnergy(bodies)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}

// MaxRadius tracks the largest distance from the origin any body
// reaches, the quantity the escape rule thresholds.
type MaxRadius struct {
	max float64
}

func NewMaxRadius() *MaxRadius { return &MaxRadius{} }

func (m *MaxRadius) Name() string { return "max_radius" }

func (m *MaxRadius) OnStep(bodies orbit.Bodies, t float64) {
	for i := range bodies {
		r := bodies[i].Position.Magnitude()
		if r > m.max {
			m.max = r
		}
	}
}

func (m *MaxRadius) Value() float64 { return m.max }
func (m *MaxRadius) Reset()         { m.max = 0 }

// MomentumDrift tracks the magnitude of total momentum change since the
// first observation. Internal forces cancel pairwise, so growth here
// points at an integrator bug rather than physics.
type MomentumDrift struct {
	px0, py0, pz0 float64
	max           float64
	samples       int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) OnStep(bodies orbit.Bodies, t float64) {
	px, py, pz := gravity.Momentum(bodies)

	if m.samples == 0 {
		m.px0, m.py0, m.pz0 = px, py, pz
	}
	m.samples++

	dx, dy, dz := px-m.px0, py-m.py0, pz-m.pz0
	drift := math.Sqrt(dx*dx + dy*dy + dz*dz)
	m.max = math.Max(m.max, drift)
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() {
	m.px0, m.py0, m.pz0 = 0, 0, 0
	m.max = 0
	m.samples = 0
}
