package game

import (
	"fmt"
	"io"
	"time"

	"github.com/pthm-cable/metaballs/components"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logSceneState dumps the sources and the last frame's passes.
func (g *Game) logSceneState() {
	opts := g.field.Options()
	Logf("=== Frame %d ===", g.frame)
	Logf("Resolution: %d | Fill: %v | Outline: %v | Interpolated: %v | Saddles: %v | Falloff: %s",
		opts.Resolution, opts.Filled, opts.Outlined, opts.Interpolated, opts.ResolveSaddles, g.falloffName)
	Logf("Cells: %d | Inside: %d | Segments: %d | Points: %d",
		g.lastStats.Cells, g.lastStats.Inside, g.lastStats.Segments, g.lastStats.Points)

	sel := g.selectedIndex()
	i := 0
	g.scene.Each(func(pos components.Position, vel components.Velocity, body components.Body) {
		held := ""
		if i == sel {
			held = " [held]"
		}
		Logf("  #%d @ (%.1f,%.1f) v=(%.1f,%.1f) r=%.1f%s", i, pos.X, pos.Y, vel.X, vel.Y, body.Radius, held)
		i++
	})

	perf := g.perfCollector.Stats()
	Logf("Avg frame: %s", perf.AvgFrame.Round(time.Microsecond))
	Logf("")
}
