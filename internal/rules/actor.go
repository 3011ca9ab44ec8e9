// Package rules is the rule-resolution core: given a played card definition
// and the combatants involved, it computes every resulting state mutation
// and evaluates the upgrade conditions that swap card definitions.
package rules

import (
	"github.com/google/uuid"

	"cardcore/internal/card"
)

// Status is one named status held by a combatant, registered for display
// and duration tracking.
type Status struct {
	Kind     card.EffectKind
	Potency  int
	Duration int // turns remaining; 0 or less means permanent
	Source   uuid.UUID
}

// Combatant is one actor's combat state. All mutation happens through the
// pipeline on the authority goroutine.
type Combatant struct {
	ID        uuid.UUID
	Name      string
	Health    int
	MaxHealth int
	Energy    int
	MaxEnergy int
	Stance    card.Stance
	Stunned   bool
	Strength  int
	Statuses  []Status

	ally     *Combatant
	opponent *Combatant
}

// NewCombatant creates a combatant at full health and energy.
func NewCombatant(name string, health, energy int) *Combatant {
	return &Combatant{
		ID:        uuid.New(),
		Name:      name,
		Health:    health,
		MaxHealth: health,
		Energy:    energy,
		MaxEnergy: energy,
	}
}

func (c *Combatant) String() string {
	if c == nil {
		return "(nobody)"
	}
	return c.Name
}

// SetAlly wires the ally topology link.
func (c *Combatant) SetAlly(ally *Combatant) {
	c.ally = ally
}

// SetOpponent wires the opponent topology link.
func (c *Combatant) SetOpponent(opp *Combatant) {
	c.opponent = opp
}

// Ally returns the combatant's ally. A combatant with no ally mapping is
// its own ally: ally resolution never fails.
func (c *Combatant) Ally() *Combatant {
	if c.ally == nil {
		return c
	}
	return c.ally
}

// Opponent returns the combatant's opponent, or nil if no mapping exists.
func (c *Combatant) Opponent() *Combatant {
	return c.opponent
}

// ApplyStatus registers a named status on the combatant. Stun and strength
// additionally flip their dedicated fields in the same step so the two
// representations cannot diverge.
func (c *Combatant) ApplyStatus(kind card.EffectKind, potency, duration int, source uuid.UUID) {
	c.Statuses = append(c.Statuses, Status{
		Kind:     kind,
		Potency:  potency,
		Duration: duration,
		Source:   source,
	})
	switch kind {
	case card.EffectStun:
		c.Stunned = true
	case card.EffectStrength:
		c.Strength += potency
	}
}

// HasStatus reports whether any status of the given kind is active.
func (c *Combatant) HasStatus(kind card.EffectKind) bool {
	for _, s := range c.Statuses {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// StatusPotency returns the summed potency of all statuses of the given kind.
func (c *Combatant) StatusPotency(kind card.EffectKind) int {
	total := 0
	for _, s := range c.Statuses {
		if s.Kind == kind {
			total += s.Potency
		}
	}
	return total
}

// reduceStatus subtracts potency from statuses of the given kind in apply
// order, carrying any remainder into the next entry and removing drained
// ones. Used by shield absorption.
func (c *Combatant) reduceStatus(kind card.EffectKind, amount int) {
	kept := c.Statuses[:0]
	for _, s := range c.Statuses {
		if amount > 0 && s.Kind == kind {
			drain := amount
			if drain > s.Potency {
				drain = s.Potency
			}
			s.Potency -= drain
			amount -= drain
			if s.Potency <= 0 {
				continue
			}
		}
		kept = append(kept, s)
	}
	c.Statuses = kept
}

// TickStatuses decrements durations at end of turn and returns the expired
// statuses. Permanent statuses (duration <= 0 at apply time) never expire.
// Expiring strength statuses unwind the strength total; the stun flag
// tracks whether any stun entry remains.
func (c *Combatant) TickStatuses() []Status {
	var expired []Status
	kept := c.Statuses[:0]
	for _, s := range c.Statuses {
		if s.Duration <= 0 {
			kept = append(kept, s)
			continue
		}
		s.Duration--
		if s.Duration == 0 {
			expired = append(expired, s)
			if s.Kind == card.EffectStrength {
				c.Strength -= s.Potency
			}
			continue
		}
		kept = append(kept, s)
	}
	c.Statuses = kept
	// A longer-running stun entry keeps the flag up.
	c.Stunned = c.HasStatus(card.EffectStun)
	return expired
}
