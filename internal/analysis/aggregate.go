package analysis

// minDurationHours floors the AHI denominator so short recordings do not
// blow the rate up.
const minDurationHours = 0.1

// AggregateIndex converts an event count and recording length into the
// AHI-style rate, its severity band, and the recording duration in hours.
// The returned duration is the true value; only the AHI denominator is
// floored.
func AggregateIndex(eventCount, totalSamples, samplingRate int) (ahi float64, band string, durationHours float64) {
	durationHours = float64(totalSamples) / (float64(samplingRate) * 3600)
	denom := durationHours
	if denom < minDurationHours {
		denom = minDurationHours
	}
	ahi = float64(eventCount) / denom
	return ahi, SeverityBand(ahi), durationHours
}

// SeverityBand maps an AHI value onto the clinical-style band. Thresholds
// are inclusive-lower, exclusive-upper.
func SeverityBand(ahi float64) string {
	switch {
	case ahi < 5:
		return BandNormal
	case ahi < 15:
		return BandMild
	case ahi < 30:
		return BandModerate
	default:
		return BandSevere
	}
}
