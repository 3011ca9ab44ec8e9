package battlelog

// EventType enumerates all observable combat events.
type EventType int

const (
	EventEncounterStart EventType = iota
	EventTurnStart
	EventTurnEnd
	EventCardPlayed
	EventPlayRejected
	EventPlayDropped
	EventEffectVisual
	EventDamage
	EventHeal
	EventStatusApplied
	EventStatusExpired
	EventStanceChange
	EventDraw
	EventEnergyRestore
	EventEnergySpent
	EventCardUpgraded
	EventEncounterEnd
)

func (e EventType) String() string {
	switch e {
	case EventEncounterStart:
		return "EncounterStart"
	case EventTurnStart:
		return "TurnStart"
	case EventTurnEnd:
		return "TurnEnd"
	case EventCardPlayed:
		return "CardPlayed"
	case EventPlayRejected:
		return "PlayRejected"
	case EventPlayDropped:
		return "PlayDropped"
	case EventEffectVisual:
		return "EffectVisual"
	case EventDamage:
		return "Damage"
	case EventHeal:
		return "Heal"
	case EventStatusApplied:
		return "StatusApplied"
	case EventStatusExpired:
		return "StatusExpired"
	case EventStanceChange:
		return "StanceChange"
	case EventDraw:
		return "Draw"
	case EventEnergyRestore:
		return "EnergyRestore"
	case EventEnergySpent:
		return "EnergySpent"
	case EventCardUpgraded:
		return "CardUpgraded"
	case EventEncounterEnd:
		return "EncounterEnd"
	default:
		return "Unknown"
	}
}

// CombatEvent represents a single observable event in an encounter.
type CombatEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Actor   string    // acting combatant name
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
