package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowFeatures are descriptive statistics over one window. They are
// recomputed on every analysis and never cached across requests.
type WindowFeatures struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// ComputeFeatures calculates the per-window statistics. samples must be
// non-empty.
func ComputeFeatures(samples []float64) WindowFeatures {
	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) < 2 {
		std = 0
	}
	return WindowFeatures{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(samples),
		Max:  floats.Max(samples),
	}
}

// ComputeSignalStats summarizes the whole input sequence for the result
// payload.
func ComputeSignalStats(seq []float64) SignalStats {
	f := ComputeFeatures(seq)
	return SignalStats{
		Mean:   f.Mean,
		Std:    f.Std,
		Min:    f.Min,
		Max:    f.Max,
		Length: len(seq),
	}
}
