package rules

import (
	"math"

	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

// ScalingEvaluator computes dynamic effect magnitudes from tracked counters.
type ScalingEvaluator struct {
	tracker *tracking.Store
}

// NewScalingEvaluator creates an evaluator over the given tracking store.
func NewScalingEvaluator(tracker *tracking.Store) *ScalingEvaluator {
	return &ScalingEvaluator{tracker: tracker}
}

// ScaledAmount returns base + floor(counter * multiplier). The cap only
// binds when it exceeds the base amount; a cap at or below the base is
// ignored and the scaled amount is returned uncapped. A nil rule returns
// the base unchanged.
func (s *ScalingEvaluator) ScaledAmount(base int, rule *card.ScalingRule, key tracking.Key) int {
	if rule == nil {
		return base
	}
	counter := s.tracker.Get(key, rule.Source)
	scaled := base + int(math.Floor(float64(counter)*rule.Multiplier))
	if rule.Cap > base && scaled > rule.Cap {
		return rule.Cap
	}
	return scaled
}
