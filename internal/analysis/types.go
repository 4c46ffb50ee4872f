package analysis

import "errors"

// ErrEmptySequence is returned when a zero-length sequence reaches the
// analyzer. Parsing rejects empty extractions, so seeing this means the
// caller bypassed the parser.
var ErrEmptySequence = errors.New("analysis: empty signal sequence")

// EventSeverity labels a single apnea event.
type EventSeverity string

const (
	SeverityMild     EventSeverity = "mild"
	SeverityModerate EventSeverity = "moderate"
	SeveritySevere   EventSeverity = "severe"
)

// Severity bands for the aggregate AHI, in ascending order.
const (
	BandNormal   = "Normal"
	BandMild     = "Mild"
	BandModerate = "Moderate"
	BandSevere   = "Severe"
)

// ApneaEvent is a maximal run of adjacent apnea-positive windows, expressed
// in seconds and sample indices. Start and end indices always fall on window
// boundaries; the end index is exclusive.
type ApneaEvent struct {
	StartTime  float64       `json:"start_time"`
	EndTime    float64       `json:"end_time"`
	Duration   float64       `json:"duration"`
	StartIndex int           `json:"start_index"`
	EndIndex   int           `json:"end_index"`
	Severity   EventSeverity `json:"severity"`
}

// ProbabilityPoint is one sample of the likelihood curve: the score of the
// window starting at Time seconds.
type ProbabilityPoint struct {
	Time        float64 `json:"time"`
	Probability float64 `json:"probability"`
}

// ChartPoint is one sample of the reduced raw-signal visualization curve.
type ChartPoint struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// SignalStats are descriptive statistics over the whole input sequence.
type SignalStats struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Length int     `json:"length"`
}

// Result is the sole output of an analysis. ApneaCount is the full event
// total even when Events has been truncated for payload size.
type Result struct {
	ApneaCount      int                `json:"apnea_count"`
	AHI             float64            `json:"ahi"`
	Severity        string             `json:"severity"`
	DurationHours   float64            `json:"duration_hours"`
	Events          []ApneaEvent       `json:"apnea_events"`
	ProbabilityData []ProbabilityPoint `json:"probability_data"`
	SignalStats     SignalStats        `json:"signal_stats"`
}
