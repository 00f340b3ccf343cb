package config

import "sort"

func defaultSweep() SweepConfig {
	return SweepConfig{
		XParam: "vel_x_3", XMin: -10, XMax: 10, XSteps: 40,
		YParam: "vel_y_3", YMin: -10, YMax: 10, YSteps: 40,
		Budget: 1000, Dt: 0.2, EscapeRadius: 6000,
	}
}

var presets = map[string]func() *Config{
	// Two heavy bodies flung apart with an inclined intruder. The
	// reference configuration for the stability sweep.
	"binary": func() *Config {
		return &Config{
			Bodies: []BodyConfig{
				{Position: VectorConfig{X: -100}, Velocity: VectorConfig{Y: 5, Z: 0.5}, Mass: 20},
				{Position: VectorConfig{X: 100}, Velocity: VectorConfig{Y: -5, Z: -0.5}, Mass: 20},
				{Position: VectorConfig{Y: -150, Z: 50}, Velocity: VectorConfig{X: 4}, Mass: 15},
			},
			G:         1000,
			Softening: 5,
			Step:      0.01,
			Duration:  DefaultDuration,
			Sweep:     defaultSweep(),
		}
	},

	// The Chenciner-Montgomery figure-eight choreography, in its
	// conventional G=1 unit system.
	"figure8": func() *Config {
		return &Config{
			Bodies: []BodyConfig{
				{Position: VectorConfig{X: 0.97000436, Y: -0.24308753}, Velocity: VectorConfig{X: 0.466203685, Y: 0.43236573}, Mass: 1},
				{Position: VectorConfig{X: -0.97000436, Y: 0.24308753}, Velocity: VectorConfig{X: 0.466203685, Y: 0.43236573}, Mass: 1},
				{Velocity: VectorConfig{X: -0.93240737, Y: -0.86473146}, Mass: 1},
			},
			G:         1,
			Softening: 0.001,
			Step:      0.001,
			Duration:  DefaultDuration,
			Sweep: SweepConfig{
				XParam: "vel_x_3", XMin: -0.05, XMax: 0.05, XSteps: 40,
				YParam: "vel_y_3", YMin: -0.05, YMax: 0.05, YSteps: 40,
				Budget: 1000, Dt: 0.02, EscapeRadius: 20,
			},
		}
	},

	// Equal masses on an equilateral triangle in rigid rotation, the
	// classic Lagrange solution. Unstable to almost any perturbation,
	// which makes for a dramatic sweep.
	"triangle": func() *Config {
		// Tangential speed for rigid rotation: v^2 = G*m/(sqrt(3)*r).
		const v = 10.74569931823542 // r=100, m=20, G=1000
		return &Config{
			Bodies: []BodyConfig{
				{Position: VectorConfig{X: 100}, Velocity: VectorConfig{Y: v}, Mass: 20},
				{Position: VectorConfig{X: -50, Y: 86.60254037844386}, Velocity: VectorConfig{X: -v * 0.8660254037844386, Y: -v * 0.5}, Mass: 20},
				{Position: VectorConfig{X: -50, Y: -86.60254037844386}, Velocity: VectorConfig{X: v * 0.8660254037844386, Y: -v * 0.5}, Mass: 20},
			},
			G:         1000,
			Softening: 5,
			Step:      0.01,
			Duration:  DefaultDuration,
			Sweep:     defaultSweep(),
		}
	},
}

// GetPreset returns a fresh Config for the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
