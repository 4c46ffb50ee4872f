package analysis

import "math"

// Analyzer runs the windowed detection pipeline. An Analyzer is cheap to
// construct and is meant to be created fresh per request; nothing is shared
// or cached between analyses.
type Analyzer struct {
	cfg    Config
	policy ScoringPolicy
}

// NewAnalyzer builds an analyzer with the given constants and scoring policy.
func NewAnalyzer(cfg Config, policy ScoringPolicy) *Analyzer {
	return &Analyzer{cfg: cfg, policy: policy}
}

// Analyze runs the full pipeline over seq: segmentation, per-window scoring,
// event extraction, and aggregation. Sensitivity is clamped into [0,1].
// An empty sequence returns ErrEmptySequence.
func (a *Analyzer) Analyze(seq []float64, sensitivity float64) (*Result, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	sensitivity = clamp01(sensitivity)

	windows := SegmentSequence(seq, a.cfg.WindowSize)
	curve := make([]ProbabilityPoint, 0, len(windows))
	events := a.detectEvents(windows, sensitivity, &curve)

	ahi, band, durationHours := AggregateIndex(len(events), len(seq), a.cfg.SamplingRate)

	reported := events
	if len(reported) > a.cfg.MaxReportedEvents {
		reported = reported[:a.cfg.MaxReportedEvents]
	}

	return &Result{
		ApneaCount:      len(events),
		AHI:             round2(ahi),
		Severity:        band,
		DurationHours:   round2(durationHours),
		Events:          reported,
		ProbabilityData: curve,
		SignalStats:     ComputeSignalStats(seq),
	}, nil
}

// detectEvents walks the window stream with a two-state machine: scanning
// opens an event on the first positive window, inside-event closes it on the
// first negative window or at end of stream. Each window's likelihood is
// appended to the visualization curve as a side effect, stamped at the
// window's start offset.
func (a *Analyzer) detectEvents(windows []Window, sensitivity float64, curve *[]ProbabilityPoint) []ApneaEvent {
	rate := float64(a.cfg.SamplingRate)

	var events []ApneaEvent
	openStart := -1 // start sample index of the open event, -1 when scanning
	lastEnd := 0    // exclusive end sample index of the last positive window

	closeEvent := func() {
		ev := ApneaEvent{
			StartIndex: openStart,
			EndIndex:   lastEnd,
			StartTime:  float64(openStart) / rate,
			EndTime:    float64(lastEnd) / rate,
			Severity:   a.policy.Severity(),
		}
		ev.Duration = ev.EndTime - ev.StartTime
		events = append(events, ev)
		openStart = -1
	}

	for _, w := range windows {
		f := ComputeFeatures(w.Samples)
		score := a.policy.Score(f, sensitivity)
		*curve = append(*curve, ProbabilityPoint{
			Time:        float64(w.Start) / rate,
			Probability: score,
		})

		if score > a.cfg.EventThreshold {
			if openStart == -1 {
				openStart = w.Start
			}
			lastEnd = w.Start + len(w.Samples)
		} else if openStart != -1 {
			closeEvent()
		}
	}
	if openStart != -1 {
		closeEvent()
	}
	return events
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
