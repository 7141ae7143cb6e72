package telemetry

import (
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/metaballs/systems"
)

// FieldStats describes one sampled field.
type FieldStats struct {
	Cells    int
	Inside   int
	Coverage float64 // Inside / Cells

	// Sum and mean include the finite stand-in written at source centers.
	Sum  float64
	Mean float64

	Peak         float64
	PeakX, PeakY int
}

// MeasureField summarises a sample grid. Samples are never negative, so the
// absolute sum is the plain sum.
func MeasureField(grid *systems.SampleGrid) FieldStats {
	cells := grid.Cells()
	n := len(cells)
	if n == 0 {
		return FieldStats{}
	}

	v := blas32.Vector{N: n, Inc: 1, Data: cells}
	sum := float64(blas32.Asum(v))
	peak := blas32.Iamax(v)

	inside := 0
	for _, s := range cells {
		if s >= systems.Threshold {
			inside++
		}
	}

	return FieldStats{
		Cells:    n,
		Inside:   inside,
		Coverage: float64(inside) / float64(n),
		Sum:      sum,
		Mean:     sum / float64(n),
		Peak:     float64(cells[peak]),
		PeakX:    peak % grid.W,
		PeakY:    peak / grid.W,
	}
}
