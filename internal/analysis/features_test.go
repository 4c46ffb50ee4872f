package analysis

import (
	"math"
	"testing"
)

func TestComputeFeatures(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    WindowFeatures
		epsilon float64
	}{
		{
			name:    "constant signal",
			samples: []float64{5, 5, 5, 5},
			want:    WindowFeatures{Mean: 5, Std: 0, Min: 5, Max: 5},
			epsilon: 1e-12,
		},
		{
			name:    "ascending ramp",
			samples: []float64{1, 2, 3, 4, 5},
			want:    WindowFeatures{Mean: 3, Std: math.Sqrt(2.5), Min: 1, Max: 5},
			epsilon: 1e-12,
		},
		{
			name:    "single sample has zero deviation",
			samples: []float64{7},
			want:    WindowFeatures{Mean: 7, Std: 0, Min: 7, Max: 7},
			epsilon: 1e-12,
		},
		{
			name:    "mixed signs",
			samples: []float64{-2, 0, 2},
			want:    WindowFeatures{Mean: 0, Std: 2, Min: -2, Max: 2},
			epsilon: 1e-12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFeatures(tt.samples)
			check := func(field string, got, want float64) {
				if math.Abs(got-want) > tt.epsilon {
					t.Errorf("%s = %v, want %v", field, got, want)
				}
			}
			check("Mean", got.Mean, tt.want.Mean)
			check("Std", got.Std, tt.want.Std)
			check("Min", got.Min, tt.want.Min)
			check("Max", got.Max, tt.want.Max)
		})
	}
}

func TestComputeSignalStats(t *testing.T) {
	stats := ComputeSignalStats([]float64{1, 2, 3, 4})
	if stats.Length != 4 {
		t.Errorf("Length = %d, want 4", stats.Length)
	}
	if stats.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", stats.Mean)
	}
	if stats.Min != 1 || stats.Max != 4 {
		t.Errorf("Min/Max = %v/%v, want 1/4", stats.Min, stats.Max)
	}
}
