package game

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pthm-cable/metaballs/components"
	"github.com/pthm-cable/metaballs/telemetry"
)

// defaultSnapshotDir is used for snapshots when no output directory is set.
const defaultSnapshotDir = "snapshots"

// flushTelemetry checks if the stats window should be flushed and writes it.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	field := telemetry.MeasureField(g.field.Grid())
	stats := g.collector.Flush(g.frame, len(g.sources), g.field.Options().Resolution, field)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot() *telemetry.Snapshot {
	opts := g.field.Options()
	snapshot := &telemetry.Snapshot{
		Version:        telemetry.SnapshotVersion,
		Seed:           g.rngSeed,
		CanvasWidth:    g.cfg.Screen.Width,
		CanvasHeight:   g.cfg.Screen.Height,
		Frame:          g.frame,
		Resolution:     opts.Resolution,
		Interpolated:   opts.Interpolated,
		Filled:         opts.Filled,
		Outlined:       opts.Outlined,
		ResolveSaddles: opts.ResolveSaddles,
		Falloff:        g.falloffName,
	}

	g.scene.Each(func(pos components.Position, vel components.Velocity, body components.Body) {
		snapshot.Sources = append(snapshot.Sources, telemetry.SourceState{
			X:      pos.X,
			Y:      pos.Y,
			VelX:   vel.X,
			VelY:   vel.Y,
			Radius: body.Radius,
		})
	})

	return snapshot
}

// SaveSnapshot writes the scene and a PNG of the last frame. Without an
// output directory they go to ./snapshots. Returns the scene path.
func (g *Game) SaveSnapshot() (string, error) {
	snapshot := g.createSnapshot()

	var path string
	var err error
	if g.outputManager != nil {
		path, err = g.outputManager.WriteSnapshot(snapshot, g.canvas, g.snapshotScale)
	} else {
		path, err = telemetry.SaveSnapshot(snapshot, defaultSnapshotDir)
		if err == nil {
			img := filepath.Join(defaultSnapshotDir, fmt.Sprintf("frame_%d.png", snapshot.Frame))
			err = telemetry.WriteImage(img, g.canvas, g.snapshotScale)
		}
	}
	if err != nil {
		return path, err
	}

	slog.Info("snapshot saved", "path", path, "frame", g.frame, "sources", len(snapshot.Sources))
	return path, nil
}

// LoadScene replaces the sources and field options with a saved scene. The
// scene must have been saved on a canvas of the same size.
func (g *Game) LoadScene(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	if snapshot.CanvasWidth != g.cfg.Screen.Width || snapshot.CanvasHeight != g.cfg.Screen.Height {
		return fmt.Errorf("scene canvas %dx%d does not match %dx%d",
			snapshot.CanvasWidth, snapshot.CanvasHeight, g.cfg.Screen.Width, g.cfg.Screen.Height)
	}
	return g.applySnapshot(snapshot)
}

// applySnapshot restores a scene into the running game.
func (g *Game) applySnapshot(snapshot *telemetry.Snapshot) error {
	if snapshot.Falloff != "" {
		if err := g.SetFalloff(snapshot.Falloff); err != nil {
			return fmt.Errorf("scene falloff: %w", err)
		}
	}

	opts := g.field.Options()
	opts.Resolution = snapshot.Resolution
	opts.Interpolated = snapshot.Interpolated
	opts.Filled = snapshot.Filled
	opts.Outlined = snapshot.Outlined
	opts.ResolveSaddles = snapshot.ResolveSaddles
	g.field.SetOptions(opts)
	g.syncOverlays()

	g.scene.Clear()
	for _, s := range snapshot.Sources {
		g.scene.Spawn(s.X, s.Y, s.VelX, s.VelY, s.Radius)
	}
	g.sources = g.scene.Collect()

	slog.Info("scene loaded",
		"sources", len(snapshot.Sources),
		"saved_frame", snapshot.Frame,
		"seed", snapshot.Seed,
	)
	return nil
}
