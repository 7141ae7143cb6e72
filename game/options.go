package game

import (
	"time"

	"github.com/pthm-cable/metaballs/config"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64          // RNG seed for the initial sources
	LogStats       bool           // log window stats via slog
	StatsWindowSec float64        // 0 uses Telemetry.StatsWindow
	OutputDir      string         // CSV logs, config copy and snapshots ("" = disabled)
	ScenePath      string         // restore sources and field options from a snapshot
	SnapshotScale  int            // upscale factor for saved PNGs (0 = Screen.Scale)
	Headless       bool           // skip GPU resources and the UI
}

// DefaultOptions returns options for an interactive session on the global
// configuration with a time-based seed.
func DefaultOptions() Options {
	return Options{Seed: time.Now().UnixNano()}
}
