// Package card holds the immutable card data model: definitions, effect
// descriptors and upgrade rules, plus the read-only catalog they live in.
// Nothing in this package mutates after catalog load.
package card

import "cardcore/internal/tracking"

// Type categorizes a card for last-card-type predicates.
type Type int

const (
	TypeNone Type = iota
	TypeAttack
	TypeSkill
	TypePower
)

func (t Type) String() string {
	switch t {
	case TypeAttack:
		return "Attack"
	case TypeSkill:
		return "Skill"
	case TypePower:
		return "Power"
	default:
		return "None"
	}
}

// EffectKind enumerates everything a single effect can do. Status kinds
// (Weak through Elemental) are applied through the shared named-status path.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectDamage
	EffectHeal
	EffectDraw
	EffectRestoreEnergy
	EffectWeak
	EffectBreak
	EffectBurn
	EffectSalve
	EffectShield
	EffectThorns
	EffectCurse
	EffectStun
	EffectStrength
	EffectCriticalUp
	EffectElemental
	EffectStanceEnter
	EffectStanceExit
)

func (k EffectKind) String() string {
	switch k {
	case EffectDamage:
		return "damage"
	case EffectHeal:
		return "heal"
	case EffectDraw:
		return "draw"
	case EffectRestoreEnergy:
		return "restore-energy"
	case EffectWeak:
		return "weak"
	case EffectBreak:
		return "break"
	case EffectBurn:
		return "burn"
	case EffectSalve:
		return "salve"
	case EffectShield:
		return "shield"
	case EffectThorns:
		return "thorns"
	case EffectCurse:
		return "curse"
	case EffectStun:
		return "stun"
	case EffectStrength:
		return "strength"
	case EffectCriticalUp:
		return "critical-up"
	case EffectElemental:
		return "elemental"
	case EffectStanceEnter:
		return "stance-enter"
	case EffectStanceExit:
		return "stance-exit"
	default:
		return "none"
	}
}

// IsStatus reports whether the kind is applied as a named status.
func (k EffectKind) IsStatus() bool {
	switch k {
	case EffectWeak, EffectBreak, EffectBurn, EffectSalve, EffectShield,
		EffectThorns, EffectCurse, EffectStun, EffectStrength,
		EffectCriticalUp, EffectElemental:
		return true
	}
	return false
}

// TargetKind selects who an effect resolves against. The zero value is the
// none sentinel, so unrecognized target names in card content resolve to no
// targets instead of silently hitting the caster.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSelf
	TargetAlly
	TargetOpponent
	TargetRandom
)

func (t TargetKind) String() string {
	switch t {
	case TargetSelf:
		return "self"
	case TargetAlly:
		return "ally"
	case TargetOpponent:
		return "opponent"
	case TargetRandom:
		return "random"
	default:
		return "none"
	}
}

// Stance is the mutually-exclusive modal state an actor can hold.
type Stance int

const (
	StanceNone Stance = iota
	StanceAggressive
	StanceDefensive
)

func (s Stance) String() string {
	switch s {
	case StanceAggressive:
		return "aggressive"
	case StanceDefensive:
		return "defensive"
	default:
		return "none"
	}
}

// Comparator compares a counter value against an upgrade rule's required value.
type Comparator int

const (
	CmpGTE Comparator = iota
	CmpEQ
	CmpLTE
	CmpGT
	CmpLT
)

func (c Comparator) String() string {
	switch c {
	case CmpGTE:
		return ">="
	case CmpEQ:
		return "=="
	case CmpLTE:
		return "<="
	case CmpGT:
		return ">"
	case CmpLT:
		return "<"
	default:
		return "?"
	}
}

// Compare applies the comparator to (value, required).
func (c Comparator) Compare(value, required int) bool {
	switch c {
	case CmpGTE:
		return value >= required
	case CmpEQ:
		return value == required
	case CmpLTE:
		return value <= required
	case CmpGT:
		return value > required
	case CmpLT:
		return value < required
	default:
		return false
	}
}

// ConditionKind enumerates the predicates a conditional effect can test.
type ConditionKind int

const (
	CondNone ConditionKind = iota
	CondSourceHealthBelow
	CondSourceHealthAbove
	CondTargetHealthBelow
	CondTargetHealthAbove
	CondCardsInHand
	CondCardsInDeck
	CondCardsInDiscard
	CondTimesPlayed
	CondDamageDealtThisEncounter
	CondDamageDealtLastTurn
	CondHealingDealtThisEncounter
	CondHealingDealtLastTurn
	CondPerfectionStreak
	CondComboCount
	CondZeroCostThisTurn
	CondZeroCostThisEncounter
	CondInStance
	CondLastCardType
)

func (k ConditionKind) String() string {
	switch k {
	case CondSourceHealthBelow:
		return "source-health-below"
	case CondSourceHealthAbove:
		return "source-health-above"
	case CondTargetHealthBelow:
		return "target-health-below"
	case CondTargetHealthAbove:
		return "target-health-above"
	case CondCardsInHand:
		return "cards-in-hand"
	case CondCardsInDeck:
		return "cards-in-deck"
	case CondCardsInDiscard:
		return "cards-in-discard"
	case CondTimesPlayed:
		return "times-played"
	case CondDamageDealtThisEncounter:
		return "damage-dealt-this-encounter"
	case CondDamageDealtLastTurn:
		return "damage-dealt-last-turn"
	case CondHealingDealtThisEncounter:
		return "healing-dealt-this-encounter"
	case CondHealingDealtLastTurn:
		return "healing-dealt-last-turn"
	case CondPerfectionStreak:
		return "perfection-streak"
	case CondComboCount:
		return "combo-count"
	case CondZeroCostThisTurn:
		return "zero-cost-this-turn"
	case CondZeroCostThisEncounter:
		return "zero-cost-this-encounter"
	case CondInStance:
		return "in-stance"
	case CondLastCardType:
		return "last-card-type"
	default:
		return "none"
	}
}

// AlternativeLogic controls how an alternative effect combines with the
// main effect when its condition is met.
type AlternativeLogic int

const (
	LogicReplace AlternativeLogic = iota
	LogicAdditional
)

func (l AlternativeLogic) String() string {
	if l == LogicAdditional {
		return "additional"
	}
	return "replace"
}

// ScalingRule grows an effect's magnitude from a tracked counter.
// The cap only applies when it exceeds the base amount; a cap at or below
// the base is ignored and the scaled amount is returned uncapped.
type ScalingRule struct {
	Source     tracking.CounterKind
	Multiplier float64
	Cap        int
}

// Condition is a predicate over source/target state gating an alternative.
type Condition struct {
	Kind      ConditionKind
	Threshold int
}

// Alternative is the substitute or bonus effect fired when a condition holds.
type Alternative struct {
	Kind     EffectKind
	Amount   int
	Duration int
	Logic    AlternativeLogic
}

// EffectDescriptor describes one effect on a card. Immutable after load.
type EffectDescriptor struct {
	Kind     EffectKind
	Amount   int
	Duration int
	Target   TargetKind

	Scaling     *ScalingRule
	Condition   *Condition
	Alternative *Alternative
}

// UpgradeRule describes when a card definition is swapped for its
// enhanced variant.
type UpgradeRule struct {
	Condition        tracking.CounterKind
	RequiredValue    int
	Comparator       Comparator
	ReplaceAllCopies bool
	UpgradedID       int
}

// Definition is the immutable description of a card, owned by the catalog.
type Definition struct {
	ID         int
	Name       string
	EnergyCost int
	CardType   Type
	Effects    []EffectDescriptor

	BuildsCombo   bool
	RequiresCombo bool
	RequiredCombo int
	ChangesStance bool
	NewStance     Stance
	CanUpgrade    bool
	Upgrade       *UpgradeRule
}

func (d *Definition) String() string {
	return d.Name
}
