package rules

import (
	"go.uber.org/zap"

	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

// ConditionEvaluator evaluates conditional-effect predicates against
// combatant state and tracking snapshots.
type ConditionEvaluator struct {
	tracker *tracking.Store
	logger  *zap.Logger
}

// NewConditionEvaluator creates an evaluator over the given tracking store.
func NewConditionEvaluator(tracker *tracking.Store, logger *zap.Logger) *ConditionEvaluator {
	return &ConditionEvaluator{tracker: tracker, logger: logger}
}

// Met evaluates a condition for a play of def by source against target.
// Health predicates compare current health against the literal threshold.
// Counter predicates hold when the counter is at least the threshold.
// Unrecognized predicate kinds evaluate to false and are logged, never fatal.
func (e *ConditionEvaluator) Met(cond *card.Condition, source, target *Combatant, def *card.Definition) bool {
	if cond == nil {
		return false
	}

	actorKey := tracking.ActorKey(source.ID)

	switch cond.Kind {
	case card.CondSourceHealthBelow:
		return source.Health < cond.Threshold
	case card.CondSourceHealthAbove:
		return source.Health > cond.Threshold
	case card.CondTargetHealthBelow:
		return target != nil && target.Health < cond.Threshold
	case card.CondTargetHealthAbove:
		return target != nil && target.Health > cond.Threshold
	case card.CondCardsInHand:
		return e.tracker.Get(actorKey, tracking.CounterCardsInHand) >= cond.Threshold
	case card.CondCardsInDeck:
		return e.tracker.Get(actorKey, tracking.CounterCardsInDeck) >= cond.Threshold
	case card.CondCardsInDiscard:
		return e.tracker.Get(actorKey, tracking.CounterCardsInDiscard) >= cond.Threshold
	case card.CondTimesPlayed:
		cardKey := tracking.CardKey(source.ID, def.ID)
		return e.tracker.Get(cardKey, tracking.CounterTimesPlayed) >= cond.Threshold
	case card.CondDamageDealtThisEncounter:
		return e.tracker.Get(actorKey, tracking.CounterDamageDealtThisEncounter) >= cond.Threshold
	case card.CondDamageDealtLastTurn:
		return e.tracker.Get(actorKey, tracking.CounterDamageDealtLastTurn) >= cond.Threshold
	case card.CondHealingDealtThisEncounter:
		return e.tracker.Get(actorKey, tracking.CounterHealingDealtThisEncounter) >= cond.Threshold
	case card.CondHealingDealtLastTurn:
		return e.tracker.Get(actorKey, tracking.CounterHealingDealtLastTurn) >= cond.Threshold
	case card.CondPerfectionStreak:
		return e.tracker.Get(actorKey, tracking.CounterPerfectionStreak) >= cond.Threshold
	case card.CondComboCount:
		return e.tracker.Get(actorKey, tracking.CounterComboCount) >= cond.Threshold
	case card.CondZeroCostThisTurn:
		return e.tracker.Get(actorKey, tracking.CounterZeroCostThisTurn) >= cond.Threshold
	case card.CondZeroCostThisEncounter:
		return e.tracker.Get(actorKey, tracking.CounterZeroCostThisEncounter) >= cond.Threshold
	case card.CondInStance:
		return source.Stance == card.Stance(cond.Threshold)
	case card.CondLastCardType:
		return e.tracker.Get(actorKey, tracking.CounterLastCardType) == cond.Threshold
	default:
		e.logger.Warn("unrecognized condition kind, evaluating to false",
			zap.Int("kind", int(cond.Kind)),
			zap.String("card", def.Name))
		return false
	}
}
