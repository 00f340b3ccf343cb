package vec

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vector3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff != (Vector3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vector3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", scaled)
	}

	if a != (Vector3{1, 2, 3}) {
		t.Error("operations mutated the receiver")
	}
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		v        Vector3
		expected float64
	}{
		{Vector3{3, 4, 0}, 5.0},
		{Vector3{1, 0, 0}, 1.0},
		{Vector3{0, 0, 0}, 0.0},
		{Vector3{1, 1, 1}, math.Sqrt(3)},
	}

	for _, tt := range tests {
		if got := tt.v.Magnitude(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Magnitude(%v) = %v, want %v", tt.v, got, tt.expected)
		}
		if got := tt.v.MagnitudeSquared(); math.Abs(got-tt.expected*tt.expected) > 1e-12 {
			t.Errorf("MagnitudeSquared(%v) = %v, want %v", tt.v, got, tt.expected*tt.expected)
		}
	}
}

func TestDistanceTo(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, 6, 3}
	if got := a.DistanceTo(b); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
	if got := b.DistanceTo(a); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("DistanceTo is not symmetric: %v", got)
	}
}

func TestDot(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, -5, 6}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot = %v, want 12", got)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name   string
		v      Vector3
		finite bool
	}{
		{"zero", Vector3{}, true},
		{"normal", Vector3{1, -2, 3}, true},
		{"nan x", Vector3{math.NaN(), 0, 0}, false},
		{"inf y", Vector3{0, math.Inf(1), 0}, false},
		{"neg inf z", Vector3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.finite {
				t.Errorf("IsFinite() = %v, want %v", got, tt.finite)
			}
		})
	}
}
