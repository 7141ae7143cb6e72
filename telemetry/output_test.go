package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/metaballs/config"
	"github.com/pthm-cable/metaballs/systems"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}

	// Every method is a no-op on a nil manager
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Error(err)
	}
	if path, err := om.WriteSnapshot(&Snapshot{}, systems.NewPixelBuffer(1, 1), 1); path != "" || err != nil {
		t.Errorf("expected no snapshot, got %q, %v", path, err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("expected empty dir and nil close")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndFrame: i * 60, Sources: 8}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{PhasePct: map[string]float64{PhaseSample: 40}}, 60); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Contains(lines[0], "WindowStartFrame") {
		t.Error("expected start frame to be excluded from the CSV")
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(perf), "sample_pct") {
		t.Error("expected sample_pct column in perf.csv")
	}
}

func TestOutputManagerConfigAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config.yaml: %v", err)
	}

	snap := &Snapshot{Version: SnapshotVersion, Frame: 12}
	path, err := om.WriteSnapshot(snap, systems.NewPixelBuffer(8, 8), 2)
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if path != filepath.Join(dir, "snapshots", "scene_12.json") {
		t.Errorf("unexpected scene path %s", path)
	}
	if _, err := os.Stat(filepath.Join(dir, "snapshots", "frame_12.png")); err != nil {
		t.Errorf("expected frame png: %v", err)
	}
}
