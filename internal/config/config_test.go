package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Bodies) != 3 {
		t.Errorf("expected 3 bodies, got %d", len(cfg.Bodies))
	}
	if cfg.G != 1000 {
		t.Errorf("expected G=1000, got %f", cfg.G)
	}
	if cfg.Step <= 0 {
		t.Error("step should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("binary")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies[0].Position.X != -100 {
		t.Errorf("expected x=-100, got %f", cfg.Bodies[0].Position.X)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_Fresh(t *testing.T) {
	a := GetPreset("binary")
	a.G = 1
	b := GetPreset("binary")
	if b.G != 1000 {
		t.Error("presets share storage between calls")
	}
}

func TestPresets_AllValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
		if _, err := cfg.SweepSpec(); err != nil {
			t.Errorf("preset %s has a bad sweep section: %v", name, err)
		}
	}
}

func TestLoadSave_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := GetPreset("binary")
	cfg.Sweep.XSteps = 77
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Sweep.XSteps != 77 {
		t.Errorf("x_steps = %d, want 77", loaded.Sweep.XSteps)
	}
	if loaded.G != cfg.G {
		t.Errorf("g = %f, want %f", loaded.G, cfg.G)
	}
	if len(loaded.Bodies) != 3 {
		t.Errorf("bodies = %d, want 3", len(loaded.Bodies))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBodySet(t *testing.T) {
	bodies := GetPreset("binary").BodySet()

	if bodies[2].Position.Y != -150 || bodies[2].Position.Z != 50 {
		t.Errorf("body 3 position wrong: %v", bodies[2].Position)
	}
	if bodies[2].Mass != 15 {
		t.Errorf("body 3 mass = %f, want 15", bodies[2].Mass)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cfg := GetPreset("binary")
	cfg.Bodies[0].Mass = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative mass")
	}

	cfg = GetPreset("binary")
	cfg.Step = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero step")
	}

	cfg = GetPreset("binary")
	cfg.Bodies = cfg.Bodies[:1]
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for wrong body count")
	}
}

func TestEvaluator_FromSweepSection(t *testing.T) {
	cfg := GetPreset("figure8")
	ev := cfg.Evaluator()

	if ev.G != 1 {
		t.Errorf("evaluator G = %f, want preset value", ev.G)
	}
	if ev.Dt != 0.02 {
		t.Errorf("evaluator dt = %f, want 0.02", ev.Dt)
	}
	if ev.EscapeRadius != 20 {
		t.Errorf("evaluator escape radius = %f, want 20", ev.EscapeRadius)
	}
}

func TestValidate_Integrator(t *testing.T) {
	cfg := GetPreset("binary")
	cfg.Integrator = "leapfrog"
	if err := cfg.Validate(); err != nil {
		t.Errorf("leapfrog should validate, got %v", err)
	}

	cfg.Integrator = "euler"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestSimulator_IntegratorChoice(t *testing.T) {
	for _, scheme := range []string{"", "rk4", "leapfrog"} {
		cfg := GetPreset("binary")
		cfg.Integrator = scheme

		s, err := cfg.Simulator()
		if err != nil {
			t.Fatalf("integrator %q: %v", scheme, err)
		}

		s.Advance(1.0)
		for _, b := range s.Snapshot() {
			if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
				t.Errorf("integrator %q produced non-finite state", scheme)
			}
		}
	}
}

func TestValidate_SubMicrosecondStep(t *testing.T) {
	cfg := GetPreset("binary")
	cfg.Step = 1e-7
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for step below one microsecond")
	}
}
