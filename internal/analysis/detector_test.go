package analysis

import (
	"errors"
	"math"
	"testing"
)

// scriptedPolicy replays a fixed score sequence, cycling when exhausted, and
// always labels events mild. It stands in for the randomized policy so the
// state machine can be tested deterministically.
type scriptedPolicy struct {
	scores []float64
	next   int
}

func (p *scriptedPolicy) Score(_ WindowFeatures, _ float64) float64 {
	s := p.scores[p.next%len(p.scores)]
	p.next++
	return s
}

func (p *scriptedPolicy) Severity() EventSeverity {
	return SeverityMild
}

// testConfig shrinks the window so detector tests stay small. The production
// constants are exercised by the handler end-to-end test.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SamplingRate = 10
	cfg.WindowSize = 10
	return cfg
}

func TestAnalyzeEmptySequence(t *testing.T) {
	a := NewAnalyzer(DefaultConfig(), NewSeededPolicy(1))
	_, err := a.Analyze(nil, 0.5)
	if !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("expected ErrEmptySequence, got %v", err)
	}
}

func TestAnalyzeEventStateMachine(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   []ApneaEvent
	}{
		{
			name:   "no positives",
			scores: []float64{0.1, 0.2, 0.3, 0.4},
			want:   nil,
		},
		{
			name:   "single positive window",
			scores: []float64{0.1, 0.9, 0.1, 0.1},
			want: []ApneaEvent{
				{StartIndex: 10, EndIndex: 20, StartTime: 1, EndTime: 2, Duration: 1},
			},
		},
		{
			name:   "adjacent positives merge into one event",
			scores: []float64{0.9, 0.9, 0.9, 0.1},
			want: []ApneaEvent{
				{StartIndex: 0, EndIndex: 30, StartTime: 0, EndTime: 3, Duration: 3},
			},
		},
		{
			name:   "event open at end of stream is closed",
			scores: []float64{0.1, 0.1, 0.9, 0.9},
			want: []ApneaEvent{
				{StartIndex: 20, EndIndex: 40, StartTime: 2, EndTime: 4, Duration: 2},
			},
		},
		{
			name:   "separate runs yield separate events",
			scores: []float64{0.9, 0.1, 0.9, 0.9},
			want: []ApneaEvent{
				{StartIndex: 0, EndIndex: 10, StartTime: 0, EndTime: 1, Duration: 1},
				{StartIndex: 20, EndIndex: 40, StartTime: 2, EndTime: 4, Duration: 2},
			},
		},
		{
			name:   "threshold is exclusive",
			scores: []float64{0.5, 0.5, 0.5, 0.5},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			seq := make([]float64, len(tt.scores)*cfg.WindowSize)
			a := NewAnalyzer(cfg, &scriptedPolicy{scores: tt.scores})

			result, err := a.Analyze(seq, 0.5)
			if err != nil {
				t.Fatalf("Analyze returned error: %v", err)
			}

			if result.ApneaCount != len(tt.want) {
				t.Fatalf("ApneaCount = %d, want %d", result.ApneaCount, len(tt.want))
			}
			if len(result.Events) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(result.Events), len(tt.want))
			}
			for i, want := range tt.want {
				got := result.Events[i]
				if got.StartIndex != want.StartIndex || got.EndIndex != want.EndIndex {
					t.Errorf("event %d indices = [%d,%d), want [%d,%d)", i, got.StartIndex, got.EndIndex, want.StartIndex, want.EndIndex)
				}
				if got.StartTime != want.StartTime || got.EndTime != want.EndTime {
					t.Errorf("event %d times = [%v,%v], want [%v,%v]", i, got.StartTime, got.EndTime, want.StartTime, want.EndTime)
				}
				if got.Duration != want.Duration {
					t.Errorf("event %d duration = %v, want %v", i, got.Duration, want.Duration)
				}
				if got.Severity != SeverityMild {
					t.Errorf("event %d severity = %q, want %q", i, got.Severity, SeverityMild)
				}
			}
		})
	}
}

func TestAnalyzeEventInvariants(t *testing.T) {
	cfg := testConfig()
	seq := make([]float64, 200*cfg.WindowSize)
	a := NewAnalyzer(cfg, NewSeededPolicy(42))

	result, err := a.Analyze(seq, 0.7)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	prevEnd := -1
	for i, ev := range result.Events {
		if ev.StartIndex%cfg.WindowSize != 0 || ev.EndIndex%cfg.WindowSize != 0 {
			t.Errorf("event %d boundaries [%d,%d) not on window multiples", i, ev.StartIndex, ev.EndIndex)
		}
		if ev.StartIndex < prevEnd {
			t.Errorf("event %d overlaps previous (start %d < prev end %d)", i, ev.StartIndex, prevEnd)
		}
		if ev.EndIndex <= ev.StartIndex {
			t.Errorf("event %d is empty or inverted", i)
		}
		prevEnd = ev.EndIndex
	}
}

func TestAnalyzeProbabilityCurve(t *testing.T) {
	cfg := testConfig()
	// 5 full windows plus a partial that must not produce a point.
	seq := make([]float64, 5*cfg.WindowSize+3)
	a := NewAnalyzer(cfg, NewSeededPolicy(7))

	result, err := a.Analyze(seq, 0.5)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if len(result.ProbabilityData) != 5 {
		t.Fatalf("got %d probability points, want one per full window (5)", len(result.ProbabilityData))
	}
	for i, p := range result.ProbabilityData {
		wantTime := float64(i*cfg.WindowSize) / float64(cfg.SamplingRate)
		if p.Time != wantTime {
			t.Errorf("point %d time = %v, want %v", i, p.Time, wantTime)
		}
		if p.Probability < 0 || p.Probability > 1 {
			t.Errorf("point %d probability %v outside [0,1]", i, p.Probability)
		}
	}
}

func TestAnalyzeEventTruncation(t *testing.T) {
	cfg := testConfig()
	// Alternating positive/negative windows: one event per two windows.
	scores := []float64{0.9, 0.1}
	windowCount := 160 // 80 events, above the 50-event payload cap
	seq := make([]float64, windowCount*cfg.WindowSize)

	a := NewAnalyzer(cfg, &scriptedPolicy{scores: scores})
	result, err := a.Analyze(seq, 0.5)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.ApneaCount != 80 {
		t.Errorf("ApneaCount = %d, want 80 (truncation must not affect the count)", result.ApneaCount)
	}
	if len(result.Events) != cfg.MaxReportedEvents {
		t.Errorf("got %d reported events, want %d", len(result.Events), cfg.MaxReportedEvents)
	}
	// AHI is computed from the full count: 160 windows of one second is
	// 160/3600 hours, floored to 0.1 for the denominator.
	if math.Abs(result.AHI-800) > 1e-9 {
		t.Errorf("AHI = %v, want 800", result.AHI)
	}
}

func TestAnalyzeSensitivityClamped(t *testing.T) {
	cfg := testConfig()
	seq := make([]float64, 10*cfg.WindowSize)

	for _, sensitivity := range []float64{-3, 0, 0.5, 1, 42} {
		a := NewAnalyzer(cfg, NewSeededPolicy(3))
		result, err := a.Analyze(seq, sensitivity)
		if err != nil {
			t.Fatalf("Analyze(%v) returned error: %v", sensitivity, err)
		}
		for _, p := range result.ProbabilityData {
			if p.Probability < 0 || p.Probability > 1 {
				t.Fatalf("sensitivity %v produced probability %v outside [0,1]", sensitivity, p.Probability)
			}
		}
	}
}

func TestRandomPolicyBounds(t *testing.T) {
	p := NewSeededPolicy(99)
	for i := 0; i < 10000; i++ {
		s := p.Score(WindowFeatures{}, 1.0)
		if s < 0 || s > 1 {
			t.Fatalf("score %v outside [0,1]", s)
		}
	}

	seen := map[EventSeverity]bool{}
	for i := 0; i < 1000; i++ {
		seen[p.Severity()] = true
	}
	for _, sev := range []EventSeverity{SeverityMild, SeverityModerate, SeveritySevere} {
		if !seen[sev] {
			t.Errorf("severity %q never drawn", sev)
		}
	}
}
