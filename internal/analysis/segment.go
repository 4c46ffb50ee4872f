package analysis

// Window is a fixed-length contiguous slice of the input sequence. Samples
// aliases the original sequence; windows are never mutated.
type Window struct {
	// Start is the offset of the first sample within the source sequence.
	Start   int
	Samples []float64
}

// SegmentSequence partitions seq into non-overlapping windows of exactly
// size samples. A trailing partial window is dropped entirely, not padded:
// detection operates only on full windows.
func SegmentSequence(seq []float64, size int) []Window {
	if size <= 0 || len(seq) < size {
		return nil
	}
	windows := make([]Window, 0, len(seq)/size)
	for start := 0; start+size <= len(seq); start += size {
		windows = append(windows, Window{Start: start, Samples: seq[start : start+size]})
	}
	return windows
}
