package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated render statistics for a time window.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	TimeSec          float64 `csv:"time"`
	Frames           int     `csv:"frames"`

	// Scene at window end
	Sources    int `csv:"sources"`
	Resolution int `csv:"resolution"`

	// Inside cells per frame
	InsideMean float64 `csv:"inside_mean"`
	InsideP10  float64 `csv:"inside_p10"`
	InsideP50  float64 `csv:"inside_p50"`
	InsideP90  float64 `csv:"inside_p90"`

	// Contour output per frame
	SegmentsMean float64 `csv:"segments_mean"`
	SegmentsP90  float64 `csv:"segments_p90"`
	PointsTotal  int     `csv:"points_total"`

	// Field measured at window end
	Coverage  float64 `csv:"coverage"`
	FieldMean float64 `csv:"field_mean"`
	FieldPeak float64 `csv:"field_peak"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Summarize returns the mean and the 10th/50th/90th percentiles of values.
// values is left unchanged.
func Summarize(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("time", s.TimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("sources", s.Sources),
		slog.Int("resolution", s.Resolution),
		slog.Float64("inside_mean", s.InsideMean),
		slog.Float64("inside_p50", s.InsideP50),
		slog.Float64("segments_mean", s.SegmentsMean),
		slog.Int("points_total", s.PointsTotal),
		slog.Float64("coverage", s.Coverage),
		slog.Float64("field_peak", s.FieldPeak),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"time", s.TimeSec,
		"frames", s.Frames,
		"sources", s.Sources,
		"resolution", s.Resolution,
		"inside_mean", s.InsideMean,
		"inside_p10", s.InsideP10,
		"inside_p90", s.InsideP90,
		"segments_mean", s.SegmentsMean,
		"segments_p90", s.SegmentsP90,
		"points_total", s.PointsTotal,
		"coverage", s.Coverage,
		"field_mean", s.FieldMean,
	)
}
