package stability

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/orbitlab/internal/orbit"
)

// Field selects which body component a perturbation offsets.
type Field int

const (
	FieldMass Field = iota
	FieldPosition
	FieldVelocity
)

// Param is a parsed perturbation target: one scalar component of one
// body. Recognized names are "mass_<n>", "pos_<axis>_<n>" and
// "vel_<axis>_<n>" with n in 1..3 and axis in {x, y, z}.
type Param struct {
	Field Field
	Axis  int // 0=x 1=y 2=z; unused for mass
	Body  int // zero-based
}

var axisNames = map[string]int{"x": 0, "y": 1, "z": 2}

func ParseParam(name string) (Param, error) {
	parts := strings.Split(name, "_")

	switch {
	case len(parts) == 2 && parts[0] == "mass":
		body, err := parseBodyIndex(parts[1])
		if err != nil {
			return Param{}, fmt.Errorf("param %q: %w", name, err)
		}
		return Param{Field: FieldMass, Body: body}, nil

	case len(parts) == 3 && (parts[0] == "pos" || parts[0] == "vel"):
		axis, ok := axisNames[parts[1]]
		if !ok {
			return Param{}, fmt.Errorf("param %q: unknown axis %q", name, parts[1])
		}
		body, err := parseBodyIndex(parts[2])
		if err != nil {
			return Param{}, fmt.Errorf("param %q: %w", name, err)
		}
		field := FieldPosition
		if parts[0] == "vel" {
			field = FieldVelocity
		}
		return Param{Field: field, Axis: axis, Body: body}, nil
	}

	return Param{}, fmt.Errorf("unrecognized param %q", name)
}

func parseBodyIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > orbit.BodyCount {
		return 0, fmt.Errorf("body index must be 1..%d, got %q", orbit.BodyCount, s)
	}
	return n - 1, nil
}

// Apply adds offset to the targeted component. The caller passes its own
// clone; the base configuration is never touched.
func (p Param) Apply(bodies orbit.Bodies, offset float64) {
	b := &bodies[p.Body]

	switch p.Field {
	case FieldMass:
		b.Mass += offset
	case FieldPosition:
		switch p.Axis {
		case 0:
			b.Position.X += offset
		case 1:
			b.Position.Y += offset
		case 2:
			b.Position.Z += offset
		}
	case FieldVelocity:
		switch p.Axis {
		case 0:
			b.Velocity.X += offset
		case 1:
			b.Velocity.Y += offset
		case 2:
			b.Velocity.Z += offset
		}
	}
}

func (p Param) String() string {
	axis := [...]string{"x", "y", "z"}[p.Axis]
	switch p.Field {
	case FieldMass:
		return fmt.Sprintf("mass_%d", p.Body+1)
	case FieldPosition:
		return fmt.Sprintf("pos_%s_%d", axis, p.Body+1)
	default:
		return fmt.Sprintf("vel_%s_%d", axis, p.Body+1)
	}
}
