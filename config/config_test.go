package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Field.Resolution < 1 {
		t.Errorf("expected resolution >= 1, got %d", cfg.Field.Resolution)
	}
	if cfg.Derived.GridW != cfg.Screen.Width/cfg.Field.Resolution {
		t.Errorf("grid width %d does not match width/resolution", cfg.Derived.GridW)
	}
	if cfg.Derived.WindowW != cfg.Screen.Width*cfg.Screen.Scale {
		t.Errorf("window width %d does not match width*scale", cfg.Derived.WindowW)
	}
	if cfg.Derived.Primary != [3]uint8{5, 4, 1} {
		t.Errorf("unexpected primary color %v", cfg.Derived.Primary)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := []byte("field:\n  resolution: 4\nsources:\n  count: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Field.Resolution != 4 {
		t.Errorf("expected resolution 4, got %d", cfg.Field.Resolution)
	}
	if cfg.Sources.Count != 3 {
		t.Errorf("expected 3 sources, got %d", cfg.Sources.Count)
	}
	// Untouched fields keep their defaults
	if cfg.Screen.Width != 320 {
		t.Errorf("expected default width 320, got %d", cfg.Screen.Width)
	}
}

func TestValidateClamps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := []byte("field:\n  resolution: 0\nsources:\n  min_radius: -2\n  max_radius: -5\ncolors:\n  primary: [9, -1, 3]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Field.Resolution != 1 {
		t.Errorf("expected resolution clamped to 1, got %d", cfg.Field.Resolution)
	}
	if cfg.Sources.MinRadius <= 0 || cfg.Sources.MaxRadius < cfg.Sources.MinRadius {
		t.Errorf("expected positive ordered radii, got %f..%f", cfg.Sources.MinRadius, cfg.Sources.MaxRadius)
	}
	if cfg.Derived.Primary != [3]uint8{5, 0, 3} {
		t.Errorf("expected color clamped to [5 0 3], got %v", cfg.Derived.Primary)
	}
}

func TestValidateClampsTargetFPS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("screen:\n  target_fps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("expected target_fps reset to 60, got %d", cfg.Screen.TargetFPS)
	}
}

func TestValidateRejectsShortColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("colors:\n  outline: [1, 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for two-channel color")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.Resolution = 3

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if back.Field.Resolution != 3 {
		t.Errorf("expected resolution 3 after roundtrip, got %d", back.Field.Resolution)
	}
}
