package tracking

import "github.com/google/uuid"

// Scope determines when a counter is cleared.
type Scope int

const (
	ScopeTurn Scope = iota
	ScopeLastTurn
	ScopeEncounter
	ScopeLifetime
)

func (s Scope) String() string {
	switch s {
	case ScopeTurn:
		return "turn"
	case ScopeLastTurn:
		return "last-turn"
	case ScopeEncounter:
		return "encounter"
	case ScopeLifetime:
		return "lifetime"
	default:
		return "unknown"
	}
}

// CounterKind enumerates every tracked counter. Scaling rules, condition
// predicates and upgrade rules all reference counters by kind.
type CounterKind int

const (
	CounterNone CounterKind = iota

	// Turn-scoped
	CounterCardsPlayedThisTurn
	CounterZeroCostThisTurn
	CounterDamageDealtThisTurn
	CounterDamageTakenThisTurn
	CounterHealingDealtThisTurn
	CounterHealingTakenThisTurn

	// Snapshot of the previous turn, written only by RollTurn
	CounterDamageDealtLastTurn
	CounterDamageTakenLastTurn
	CounterHealingDealtLastTurn
	CounterHealingTakenLastTurn

	// Encounter-scoped
	CounterCardsPlayedThisEncounter
	CounterZeroCostThisEncounter
	CounterDamageDealtThisEncounter
	CounterDamageTakenThisEncounter
	CounterHealingDealtThisEncounter
	CounterHealingTakenThisEncounter
	CounterComboCount
	CounterTimesPlayed
	CounterCardsDrawn
	CounterCardsDiscarded
	CounterPerfectionStreak
	CounterCardsInHand
	CounterCardsInDeck
	CounterCardsInDiscard
	CounterLastCardType

	// Lifetime, persisted across encounters
	CounterLifetimeTimesPlayed
	CounterLifetimeWins
	CounterLifetimeLosses
	CounterLifetimePerfectTurns
	CounterLifetimeZeroCostPlays
	CounterLifetimeDamageDealt
	CounterLifetimeDamageTaken
	CounterLifetimeHealingDealt
	CounterLifetimeHealingTaken
	CounterLifetimeCardsDrawn
	CounterLifetimeCardsDiscarded
	CounterLifetimeHeldAtEnd
	CounterLifetimeSurvivedStatuses

	// Defined but intentionally unimplemented: always reads 0.
	CounterMissingHealth
)

func (k CounterKind) String() string {
	switch k {
	case CounterCardsPlayedThisTurn:
		return "cards-played-this-turn"
	case CounterZeroCostThisTurn:
		return "zero-cost-this-turn"
	case CounterDamageDealtThisTurn:
		return "damage-dealt-this-turn"
	case CounterDamageTakenThisTurn:
		return "damage-taken-this-turn"
	case CounterHealingDealtThisTurn:
		return "healing-dealt-this-turn"
	case CounterHealingTakenThisTurn:
		return "healing-taken-this-turn"
	case CounterDamageDealtLastTurn:
		return "damage-dealt-last-turn"
	case CounterDamageTakenLastTurn:
		return "damage-taken-last-turn"
	case CounterHealingDealtLastTurn:
		return "healing-dealt-last-turn"
	case CounterHealingTakenLastTurn:
		return "healing-taken-last-turn"
	case CounterCardsPlayedThisEncounter:
		return "cards-played-this-encounter"
	case CounterZeroCostThisEncounter:
		return "zero-cost-this-encounter"
	case CounterDamageDealtThisEncounter:
		return "damage-dealt-this-encounter"
	case CounterDamageTakenThisEncounter:
		return "damage-taken-this-encounter"
	case CounterHealingDealtThisEncounter:
		return "healing-dealt-this-encounter"
	case CounterHealingTakenThisEncounter:
		return "healing-taken-this-encounter"
	case CounterComboCount:
		return "combo-count"
	case CounterTimesPlayed:
		return "times-played"
	case CounterCardsDrawn:
		return "cards-drawn"
	case CounterCardsDiscarded:
		return "cards-discarded"
	case CounterPerfectionStreak:
		return "perfection-streak"
	case CounterCardsInHand:
		return "cards-in-hand"
	case CounterCardsInDeck:
		return "cards-in-deck"
	case CounterCardsInDiscard:
		return "cards-in-discard"
	case CounterLastCardType:
		return "last-card-type"
	case CounterLifetimeTimesPlayed:
		return "lifetime-times-played"
	case CounterLifetimeWins:
		return "lifetime-wins"
	case CounterLifetimeLosses:
		return "lifetime-losses"
	case CounterLifetimePerfectTurns:
		return "lifetime-perfect-turns"
	case CounterLifetimeZeroCostPlays:
		return "lifetime-zero-cost-plays"
	case CounterLifetimeDamageDealt:
		return "lifetime-damage-dealt"
	case CounterLifetimeDamageTaken:
		return "lifetime-damage-taken"
	case CounterLifetimeHealingDealt:
		return "lifetime-healing-dealt"
	case CounterLifetimeHealingTaken:
		return "lifetime-healing-taken"
	case CounterLifetimeCardsDrawn:
		return "lifetime-cards-drawn"
	case CounterLifetimeCardsDiscarded:
		return "lifetime-cards-discarded"
	case CounterLifetimeHeldAtEnd:
		return "lifetime-held-at-end"
	case CounterLifetimeSurvivedStatuses:
		return "lifetime-survived-statuses"
	case CounterMissingHealth:
		return "missing-health"
	default:
		return "none"
	}
}

// Scope returns the scope a counter is written under.
func (k CounterKind) Scope() Scope {
	switch k {
	case CounterCardsPlayedThisTurn, CounterZeroCostThisTurn,
		CounterDamageDealtThisTurn, CounterDamageTakenThisTurn,
		CounterHealingDealtThisTurn, CounterHealingTakenThisTurn:
		return ScopeTurn
	case CounterDamageDealtLastTurn, CounterDamageTakenLastTurn,
		CounterHealingDealtLastTurn, CounterHealingTakenLastTurn:
		return ScopeLastTurn
	case CounterLifetimeTimesPlayed, CounterLifetimeWins, CounterLifetimeLosses,
		CounterLifetimePerfectTurns, CounterLifetimeZeroCostPlays,
		CounterLifetimeDamageDealt, CounterLifetimeDamageTaken,
		CounterLifetimeHealingDealt, CounterLifetimeHealingTaken,
		CounterLifetimeCardsDrawn, CounterLifetimeCardsDiscarded,
		CounterLifetimeHeldAtEnd, CounterLifetimeSurvivedStatuses:
		return ScopeLifetime
	default:
		return ScopeEncounter
	}
}

// lastTurnPartner maps a turn-scoped counter to its last-turn snapshot kind.
var lastTurnPartner = map[CounterKind]CounterKind{
	CounterDamageDealtThisTurn:  CounterDamageDealtLastTurn,
	CounterDamageTakenThisTurn:  CounterDamageTakenLastTurn,
	CounterHealingDealtThisTurn: CounterHealingDealtLastTurn,
	CounterHealingTakenThisTurn: CounterHealingTakenLastTurn,
}

// Key identifies the owner of a counter: an actor, or one of its cards
// (CardID 0 means the actor itself).
type Key struct {
	Actor  uuid.UUID
	CardID int
}

// ActorKey returns the actor-level key for an actor ID.
func ActorKey(actor uuid.UUID) Key {
	return Key{Actor: actor}
}

// CardKey returns the per-card key for an (actor, card definition) pair.
func CardKey(actor uuid.UUID, cardID int) Key {
	return Key{Actor: actor, CardID: cardID}
}
