package net

import (
	"cardcore/internal/battlelog"
	"cardcore/internal/rules"
	"cardcore/internal/tracking"
)

// Message types for the JSON protocol over WebSocket.

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "play"
	CardID int `json:"card_id,omitempty"`

	// For "event_log": replay events after this sequence number
	AfterSeq int `json:"after_seq,omitempty"`
}

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "seat" (sent once on connect)
	Seat string `json:"seat,omitempty"`

	// For "play_result"
	Played bool   `json:"played,omitempty"`
	Reject string `json:"reject,omitempty"`

	// For "state" and "play_result"
	State *StateView `json:"state,omitempty"`

	// For "event_log"
	Events []EventView `json:"events,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a combat event flattened for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Actor   string `json:"actor,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// StateView is the encounter state from one combatant's perspective.
type StateView struct {
	Turn     int           `json:"turn"`
	Over     bool          `json:"over"`
	You      CombatantView `json:"you"`
	Opponent CombatantView `json:"opponent"`
}

// CombatantView shows one combatant's combat state.
type CombatantView struct {
	Name      string       `json:"name"`
	Health    int          `json:"health"`
	MaxHealth int          `json:"max_health"`
	Energy    int          `json:"energy"`
	MaxEnergy int          `json:"max_energy"`
	Stance    string       `json:"stance"`
	Stunned   bool         `json:"stunned,omitempty"`
	Strength  int          `json:"strength,omitempty"`
	Combo     int          `json:"combo,omitempty"`
	Statuses  []StatusView `json:"statuses,omitempty"`
	Deck      []int        `json:"deck,omitempty"` // definition ids (only for "you")
}

// StatusView describes one active named status.
type StatusView struct {
	Kind     string `json:"kind"`
	Potency  int    `json:"potency"`
	Duration int    `json:"duration"` // 0 means permanent
}

func BuildEventView(e battlelog.CombatEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Actor:   e.Actor,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

func buildCombatantView(enc *rules.Encounter, c *rules.Combatant, withDeck bool) CombatantView {
	v := CombatantView{
		Name:      c.Name,
		Health:    c.Health,
		MaxHealth: c.MaxHealth,
		Energy:    c.Energy,
		MaxEnergy: c.MaxEnergy,
		Stance:    c.Stance.String(),
		Stunned:   c.Stunned,
		Strength:  c.Strength,
		Combo:     enc.Tracker.Get(tracking.ActorKey(c.ID), tracking.CounterComboCount),
	}
	for _, s := range c.Statuses {
		v.Statuses = append(v.Statuses, StatusView{
			Kind:     s.Kind.String(),
			Potency:  s.Potency,
			Duration: s.Duration,
		})
	}
	if withDeck {
		v.Deck = enc.Decks.DefinitionIDs(c.ID)
	}
	return v
}

func BuildStateView(enc *rules.Encounter, you *rules.Combatant) *StateView {
	view := &StateView{
		Turn: enc.Pipeline.Turn,
		Over: enc.Over(),
		You:  buildCombatantView(enc, you, true),
	}
	if opp := you.Opponent(); opp != nil {
		view.Opponent = buildCombatantView(enc, opp, false)
	}
	return view
}
