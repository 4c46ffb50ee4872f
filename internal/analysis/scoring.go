package analysis

import (
	"math/rand"
	"time"
)

// ScoringPolicy assigns a per-window apnea likelihood in [0,1] and a severity
// label to each closed event. It is the substitution point for a real
// classifier: the segmentation, event merging, and aggregation logic never
// look behind this interface.
type ScoringPolicy interface {
	// Score returns the apnea likelihood for one window given its features
	// and the caller's sensitivity in [0,1].
	Score(f WindowFeatures, sensitivity float64) float64
	// Severity labels a closed event.
	Severity() EventSeverity
}

var severities = []EventSeverity{SeverityMild, SeverityModerate, SeveritySevere}

// RandomPolicy is the reference scoring policy: a bounded random draw scaled
// by sensitivity, explicitly not a trained model. Scores are uniform on
// [0, 0.5+sensitivity] clamped to 1, so higher sensitivity shifts the
// distribution upward and produces more positive windows. Severity labels
// are drawn uniformly.
//
// Each policy instance owns its rand.Rand, so concurrent analyses never
// share a random source.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy returns a time-seeded policy. Results are non-reproducible
// by design; use NewSeededPolicy when determinism matters.
func NewRandomPolicy() *RandomPolicy {
	return NewSeededPolicy(time.Now().UnixNano())
}

// NewSeededPolicy returns a policy with a fixed seed for reproducible runs.
func NewSeededPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

// Score draws the window likelihood. The features argument is unused by the
// reference policy but kept in the contract for real classifiers.
func (p *RandomPolicy) Score(_ WindowFeatures, sensitivity float64) float64 {
	s := p.rng.Float64() * (0.5 + clamp01(sensitivity))
	if s > 1 {
		return 1
	}
	return s
}

// Severity draws a uniform label from the three-valued severity domain.
func (p *RandomPolicy) Severity() EventSeverity {
	return severities[p.rng.Intn(len(severities))]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
