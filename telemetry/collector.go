// Package telemetry provides frame timing, render statistics, CSV output and
// snapshots for the metaball demo.
package telemetry

import "github.com/pthm-cable/metaballs/systems"

// Collector accumulates per-frame render stats within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec    float64
	windowDurationFrames int32
	dt                   float32

	windowStartFrame int32

	inside   []float64
	segments []float64
	points   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each window lasts in simulated seconds
// dt: seconds per frame (used for frame-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	frames := int32(windowDurationSec / float64(dt))
	if frames < 1 {
		frames = 1
	}
	return &Collector{
		windowDurationSec:    windowDurationSec,
		windowDurationFrames: frames,
		dt:                   dt,
	}
}

// RecordFrame adds one frame's render stats to the current window.
func (c *Collector) RecordFrame(fs systems.FrameStats) {
	c.inside = append(c.inside, float64(fs.Inside))
	c.segments = append(c.segments, float64(fs.Segments))
	c.points += fs.Points
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int32) bool {
	return currentFrame-c.windowStartFrame >= c.windowDurationFrames
}

// Flush produces a WindowStats and resets the window. sources and resolution
// describe the scene at currentFrame; field is the last sampled field.
func (c *Collector) Flush(currentFrame int32, sources, resolution int, field FieldStats) WindowStats {
	insideMean, insideP10, insideP50, insideP90 := Summarize(c.inside)
	segMean, _, _, segP90 := Summarize(c.segments)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		TimeSec:          float64(currentFrame) * float64(c.dt),
		Frames:           len(c.inside),

		Sources:    sources,
		Resolution: resolution,

		InsideMean: insideMean,
		InsideP10:  insideP10,
		InsideP50:  insideP50,
		InsideP90:  insideP90,

		SegmentsMean: segMean,
		SegmentsP90:  segP90,
		PointsTotal:  c.points,

		Coverage:  field.Coverage,
		FieldMean: field.Mean,
		FieldPeak: field.Peak,
	}

	c.windowStartFrame = currentFrame
	c.inside = c.inside[:0]
	c.segments = c.segments[:0]
	c.points = 0

	return stats
}

// WindowDurationFrames returns the number of frames per window.
func (c *Collector) WindowDurationFrames() int32 {
	return c.windowDurationFrames
}
