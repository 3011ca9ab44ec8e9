package rules

import (
	"testing"

	"github.com/google/uuid"

	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

func TestScaledAmount(t *testing.T) {
	tests := []struct {
		name       string
		base       int
		counter    int
		multiplier float64
		cap        int
		want       int
	}{
		{"cap above base binds", 3, 10, 1.0, 10, 10},
		{"cap above base but not reached", 3, 4, 1.5, 10, 9},
		{"cap at or below base is ignored", 3, 4, 1.5, 2, 9},
		{"cap equal to base is ignored", 3, 4, 1.5, 3, 9},
		{"fractional product floors", 5, 3, 0.5, 0, 6},
		{"zero counter", 5, 0, 2.0, 20, 5},
		{"zero multiplier", 5, 9, 0, 20, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := tracking.NewStore()
			actor := uuid.New()
			key := tracking.ActorKey(actor)
			tracker.Increment(key, tracking.CounterComboCount, tt.counter)

			eval := NewScalingEvaluator(tracker)
			rule := &card.ScalingRule{
				Source:     tracking.CounterComboCount,
				Multiplier: tt.multiplier,
				Cap:        tt.cap,
			}
			got := eval.ScaledAmount(tt.base, rule, key)
			if got != tt.want {
				t.Errorf("ScaledAmount(%d, counter=%d, mult=%v, cap=%d) = %d, want %d",
					tt.base, tt.counter, tt.multiplier, tt.cap, got, tt.want)
			}
		})
	}
}

func TestScaledAmountNilRule(t *testing.T) {
	eval := NewScalingEvaluator(tracking.NewStore())
	if got := eval.ScaledAmount(7, nil, tracking.ActorKey(uuid.New())); got != 7 {
		t.Errorf("nil rule: got %d, want 7", got)
	}
}

func TestScaledAmountMissingHealthStub(t *testing.T) {
	tracker := tracking.NewStore()
	actor := uuid.New()
	key := tracking.ActorKey(actor)
	// Even a direct write must not surface: the counter is a stub.
	tracker.Increment(key, tracking.CounterMissingHealth, 50)

	eval := NewScalingEvaluator(tracker)
	rule := &card.ScalingRule{Source: tracking.CounterMissingHealth, Multiplier: 2.0, Cap: 100}
	if got := eval.ScaledAmount(4, rule, key); got != 4 {
		t.Errorf("missing-health scaling: got %d, want 4", got)
	}
}
