package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitlab/internal/gravity"
	"github.com/san-kum/orbitlab/internal/integrator"
	"github.com/san-kum/orbitlab/internal/orbit"
	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/stability"
	"github.com/san-kum/orbitlab/internal/vec"
)

const DefaultDuration = 30.0

type VectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type BodyConfig struct {
	Position VectorConfig `yaml:"position"`
	Velocity VectorConfig `yaml:"velocity"`
	Mass     float64      `yaml:"mass"`
}

type SweepConfig struct {
	XParam       string  `yaml:"x_param"`
	XMin         float64 `yaml:"x_min"`
	XMax         float64 `yaml:"x_max"`
	XSteps       int     `yaml:"x_steps"`
	YParam       string  `yaml:"y_param"`
	YMin         float64 `yaml:"y_min"`
	YMax         float64 `yaml:"y_max"`
	YSteps       int     `yaml:"y_steps"`
	Budget       int     `yaml:"budget"`
	Dt           float64 `yaml:"dt"`
	EscapeRadius float64 `yaml:"escape_radius"`
	Workers      int     `yaml:"workers"`
}

type Config struct {
	Bodies     []BodyConfig `yaml:"bodies"`
	G          float64      `yaml:"g"`
	Softening  float64      `yaml:"softening"`
	Step       float64      `yaml:"step"`
	Duration   float64      `yaml:"duration"`
	Integrator string       `yaml:"integrator,omitempty"` // "rk4" (default) or "leapfrog"
	Sweep      SweepConfig  `yaml:"sweep"`
}

func Default() *Config {
	c := GetPreset("binary")
	return c
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := orbit.Validate(c.BodySet(), orbit.BodyCount); err != nil {
		return err
	}
	if c.Step < sim.MinStep {
		return fmt.Errorf("step must be at least %g seconds, got %g", sim.MinStep, c.Step)
	}
	if c.Softening <= 0 {
		return fmt.Errorf("softening must be positive, got %f", c.Softening)
	}
	switch c.Integrator {
	case "", "rk4", "leapfrog":
	default:
		return fmt.Errorf("unknown integrator %q", c.Integrator)
	}
	return nil
}

// BodySet converts the yaml shape into simulation bodies.
func (c *Config) BodySet() orbit.Bodies {
	bodies := make(orbit.Bodies, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = orbit.Body{
			Position: vec.Vector3{X: b.Position.X, Y: b.Position.Y, Z: b.Position.Z},
			Velocity: vec.Vector3{X: b.Velocity.X, Y: b.Velocity.Y, Z: b.Velocity.Z},
			Mass:     b.Mass,
		}
	}
	return bodies
}

// Evaluator builds a stability evaluator from the sweep section, falling
// back to the standard defaults for unset fields.
func (c *Config) Evaluator() *stability.Evaluator {
	ev := stability.NewEvaluator()
	ev.G = c.G
	ev.Softening = c.Softening
	if c.Sweep.Budget > 0 {
		ev.StepBudget = c.Sweep.Budget
	}
	if c.Sweep.Dt > 0 {
		ev.Dt = c.Sweep.Dt
	}
	if c.Sweep.EscapeRadius > 0 {
		ev.EscapeRadius = c.Sweep.EscapeRadius
	}
	return ev
}

// SweepSpec parses the sweep section's param names and assembles the
// grid specification.
func (c *Config) SweepSpec() (stability.SweepSpec, error) {
	xp, err := stability.ParseParam(c.Sweep.XParam)
	if err != nil {
		return stability.SweepSpec{}, fmt.Errorf("sweep x: %w", err)
	}
	yp, err := stability.ParseParam(c.Sweep.YParam)
	if err != nil {
		return stability.SweepSpec{}, fmt.Errorf("sweep y: %w", err)
	}
	return stability.SweepSpec{
		XParam: xp, YParam: yp,
		XMin: c.Sweep.XMin, XMax: c.Sweep.XMax, XSteps: c.Sweep.XSteps,
		YMin: c.Sweep.YMin, YMax: c.Sweep.YMax, YSteps: c.Sweep.YSteps,
		Workers: c.Sweep.Workers,
	}, nil
}

// Simulator builds a live simulator loaded with this configuration.
func (c *Config) Simulator() (*sim.Simulator, error) {
	s := sim.New(c.G, c.Softening, c.Step)
	if c.Integrator == "leapfrog" {
		s.SetStepper(integrator.NewLeapfrog(c.Accelerator()))
	}
	if err := s.LoadConfig(c.BodySet()); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Config) Accelerator() *gravity.Accelerator {
	return gravity.NewAccelerator(c.G, c.Softening)
}
