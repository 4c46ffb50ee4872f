package analysis

import "testing"

func TestSegmentSequence(t *testing.T) {
	tests := []struct {
		name        string
		length      int
		size        int
		wantWindows int
	}{
		{name: "exact multiple", length: 1000, size: 250, wantWindows: 4},
		{name: "partial trailing window dropped", length: 1100, size: 250, wantWindows: 4},
		{name: "single full window", length: 250, size: 250, wantWindows: 1},
		{name: "shorter than one window", length: 249, size: 250, wantWindows: 0},
		{name: "empty sequence", length: 0, size: 250, wantWindows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := make([]float64, tt.length)
			for i := range seq {
				seq[i] = float64(i)
			}

			windows := SegmentSequence(seq, tt.size)
			if len(windows) != tt.wantWindows {
				t.Fatalf("got %d windows, want %d", len(windows), tt.wantWindows)
			}

			for i, w := range windows {
				if len(w.Samples) != tt.size {
					t.Errorf("window %d has %d samples, want %d", i, len(w.Samples), tt.size)
				}
				if w.Start != i*tt.size {
					t.Errorf("window %d starts at %d, want %d", i, w.Start, i*tt.size)
				}
				// Windows alias the source in order; the first sample of each
				// window carries its own index as the value.
				if w.Samples[0] != float64(w.Start) {
					t.Errorf("window %d first sample = %v, want %v", i, w.Samples[0], float64(w.Start))
				}
			}

			// The trailing L mod W samples must not appear in any window.
			if tt.wantWindows > 0 {
				last := windows[len(windows)-1]
				if last.Start+tt.size > tt.length {
					t.Errorf("last window overruns the sequence")
				}
			}
		})
	}
}
