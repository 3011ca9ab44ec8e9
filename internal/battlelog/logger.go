// Package battlelog records the observable combat events of an encounter.
// The visual layer consumes these events; the rules core only produces
// them and never waits on a consumer.
package battlelog

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for recording combat events.
type EventLogger interface {
	Log(event CombatEvent)
	Events() []CombatEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []CombatEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event CombatEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []CombatEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []CombatEvent {
	var result []CombatEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() CombatEvent {
	if len(l.events) == 0 {
		return CombatEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event CombatEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e CombatEvent) string {
	actor := e.Actor
	for len(actor) < 12 {
		actor += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, actor, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []CombatEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewEncounterStartEvent(a, b string) CombatEvent {
	return CombatEvent{
		Type:    EventEncounterStart,
		Details: fmt.Sprintf("=== Encounter: %s vs %s ===", a, b),
	}
}

func NewTurnStartEvent(turn int, actor string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventTurnStart,
		Details: fmt.Sprintf("--- Turn %d (%s) ---", turn, actor),
	}
}

func NewTurnEndEvent(turn int, actor string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventTurnEnd,
		Details: fmt.Sprintf("%s ends turn %d", actor, turn),
	}
}

func NewCardPlayedEvent(turn int, actor, cardName string, cost int) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventCardPlayed,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s (cost %d)", actor, cardName, cost),
	}
}

func NewPlayRejectedEvent(turn int, actor, cardName, reason string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventPlayRejected,
		Card:    cardName,
		Details: fmt.Sprintf("%s cannot play %s (%s)", actor, cardName, reason),
	}
}

func NewPlayDroppedEvent(turn int, actor, cardName string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventPlayDropped,
		Card:    cardName,
		Details: fmt.Sprintf("duplicate play of %s dropped", cardName),
	}
}

func NewEffectVisualEvent(turn int, source, target, cardName string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   source,
		Type:    EventEffectVisual,
		Card:    cardName,
		Details: fmt.Sprintf("%s: effect of %s on %s", source, cardName, target),
	}
}

func NewDamageEvent(turn int, source, target string, amount, remaining int) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   source,
		Type:    EventDamage,
		Details: fmt.Sprintf("%s deals %d damage to %s (%d HP left)", source, amount, target, remaining),
	}
}

func NewHealEvent(turn int, source, target string, amount, health int) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   source,
		Type:    EventHeal,
		Details: fmt.Sprintf("%s heals %s for %d (%d HP)", source, target, amount, health),
	}
}

func NewStatusAppliedEvent(turn int, source, target, status string, potency, duration int) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   source,
		Type:    EventStatusApplied,
		Details: fmt.Sprintf("%s applies %s (%d) to %s for %d turns", source, status, potency, target, duration),
	}
}

func NewStatusExpiredEvent(turn int, actor, status string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventStatusExpired,
		Details: fmt.Sprintf("%s on %s expires", status, actor),
	}
}

func NewStanceChangeEvent(turn int, actor, stance string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventStanceChange,
		Details: fmt.Sprintf("%s enters %s stance", actor, stance),
	}
}

func NewDrawEvent(turn int, actor string, count int) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventDraw,
		Details: fmt.Sprintf("%s draws %d card(s)", actor, count),
	}
}

func NewEnergyRestoreEvent(turn int, actor string, amount, energy int) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventEnergyRestore,
		Details: fmt.Sprintf("%s restores %d energy (%d total)", actor, amount, energy),
	}
}

func NewEnergySpentEvent(turn int, actor string, cost, energy int) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventEnergySpent,
		Details: fmt.Sprintf("%s spends %d energy (%d left)", actor, cost, energy),
	}
}

func NewCardUpgradedEvent(turn int, actor, base, upgraded string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   actor,
		Type:    EventCardUpgraded,
		Card:    base,
		Details: fmt.Sprintf("%s's %s upgrades into %s", actor, base, upgraded),
	}
}

func NewEncounterEndEvent(turn int, winner string) CombatEvent {
	return CombatEvent{
		Turn:    turn,
		Actor:   winner,
		Type:    EventEncounterEnd,
		Details: fmt.Sprintf("=== Encounter over: %s wins ===", winner),
	}
}
