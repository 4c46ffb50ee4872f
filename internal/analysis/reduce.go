package analysis

// ReduceSignal down-samples the raw sequence to at most maxPoints
// (time, value) pairs for rendering. Sequences at or under the cap pass
// through unchanged; longer ones are stride-sampled with
// stride = ceil(len/maxPoints), which keeps the output within the cap for
// any input length. Timestamps are derived from sample index and rate.
func ReduceSignal(seq []float64, maxPoints, samplingRate int) []ChartPoint {
	if len(seq) == 0 || maxPoints <= 0 {
		return nil
	}
	stride := 1
	if len(seq) > maxPoints {
		stride = (len(seq) + maxPoints - 1) / maxPoints
	}
	points := make([]ChartPoint, 0, (len(seq)+stride-1)/stride)
	for i := 0; i < len(seq); i += stride {
		points = append(points, ChartPoint{
			Time:  float64(i) / float64(samplingRate),
			Value: seq[i],
		})
	}
	return points
}
