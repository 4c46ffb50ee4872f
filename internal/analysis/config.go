// Package analysis turns a numeric waveform sequence into a structured
// apnea screening result: fixed windows, per-window features and likelihoods,
// merged events, an AHI-style rate with a severity band, and bounded
// visualization curves.
package analysis

// Config groups the fixed constants the pipeline depends on. Group them here
// rather than scattering literals so behavior stays reproducible and
// testable. DefaultConfig values must be preserved for compatible output.
type Config struct {
	// SamplingRate is the assumed uniform sampling rate in samples per second.
	SamplingRate int
	// WindowSize is the number of samples per analysis window (one second).
	WindowSize int
	// EventThreshold is the likelihood above which a window is classified
	// apnea-positive.
	EventThreshold float64
	// MaxReportedEvents bounds the event list in the result payload. This is
	// a presentation limit only; counts and AHI use the full event total.
	MaxReportedEvents int
	// MaxChartPoints bounds the reduced raw-signal visualization curve.
	MaxChartPoints int
}

// DefaultConfig returns the standard pipeline constants.
func DefaultConfig() Config {
	return Config{
		SamplingRate:      250,
		WindowSize:        250,
		EventThreshold:    0.5,
		MaxReportedEvents: 50,
		MaxChartPoints:    5000,
	}
}
