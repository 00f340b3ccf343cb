package sim

import "math"

// DefaultStep is the fixed physics sub-step in seconds.
const DefaultStep = 0.01

const microsPerSecond = 1e6

// Accumulator converts variable visual-time increments into a whole
// number of fixed physics sub-steps. The residual is kept in integer
// microseconds: integer addition is exact, so the number of sub-steps
// taken depends only on the total elapsed time, not on how a caller
// sliced it into increments. Floating accumulation drifts after enough
// additions and can make differently-sliced drives disagree on step
// counts.
//
// Increments must be non-negative; the residual invariant is
// 0 <= residual < step.
type Accumulator struct {
	stepMicros int64
	residual   int64
}

// MinStep is the smallest representable sub-step, one microsecond.
const MinStep = 1.0 / microsPerSecond

func NewAccumulator(step float64) *Accumulator {
	stepMicros := int64(math.Round(step * microsPerSecond))
	// A step below half a microsecond would round to zero and make Add
	// divide by zero.
	if stepMicros < 1 {
		stepMicros = 1
	}
	return &Accumulator{stepMicros: stepMicros}
}

// Add consumes a visual-time increment in seconds and returns the number
// of whole sub-steps it releases. Leftover time carries to the next call.
func (a *Accumulator) Add(dtVisual float64) int {
	a.residual += int64(math.Round(dtVisual * microsPerSecond))

	n := a.residual / a.stepMicros
	a.residual -= n * a.stepMicros
	return int(n)
}

// Step returns the fixed sub-step in seconds.
func (a *Accumulator) Step() float64 {
	return float64(a.stepMicros) / microsPerSecond
}

// Residual returns the unconsumed time in seconds, always in [0, step).
func (a *Accumulator) Residual() float64 {
	return float64(a.residual) / microsPerSecond
}

// Reset drops any unconsumed time.
func (a *Accumulator) Reset() {
	a.residual = 0
}
