// Package mcp exposes the rule-resolution core as MCP tools over stdio,
// so an AI agent can drive one seat of an encounter.
package mcp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	cardnet "cardcore/internal/net"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/rules"
)

// EncounterSession holds the state of a single MCP encounter session.
// Tool handlers all funnel through mu, so the encounter still sees a
// single caller at a time.
type EncounterSession struct {
	mu       sync.Mutex
	enc      *rules.Encounter
	agent    *rules.Combatant
	opponent *rules.Combatant
	events   *battlelog.MemoryLogger
	lastSeq  int
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events []cardnet.EventView `json:"events"`
	State  *cardnet.StateView  `json:"state,omitempty"`
	Over   bool                `json:"over,omitempty"`
	Winner string              `json:"winner,omitempty"`
}

// SessionConfig configures a new encounter session.
type SessionConfig struct {
	Catalog      *card.Catalog
	Logger       *zap.Logger
	AgentName    string
	OpponentName string
	Health       int
	Energy       int
	AgentDeck    []int
	OpponentDeck []int
	Seed         int64
}

// NewEncounterSession wires a two-combatant encounter where the agent
// controls the first seat.
func NewEncounterSession(cfg SessionConfig) (*EncounterSession, error) {
	if cfg.Health <= 0 {
		cfg.Health = 100
	}
	if cfg.Energy <= 0 {
		cfg.Energy = 3
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	agent := rules.NewCombatant(cfg.AgentName, cfg.Health, cfg.Energy)
	opponent := rules.NewCombatant(cfg.OpponentName, cfg.Health, cfg.Energy)
	agent.SetOpponent(opponent)
	opponent.SetOpponent(agent)

	events := battlelog.NewMemoryLogger()
	enc, err := rules.NewEncounter(rules.EncounterConfig{
		Catalog:    cfg.Catalog,
		Events:     events,
		Logger:     cfg.Logger,
		Combatants: []*rules.Combatant{agent, opponent},
		Seed:       cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("wire encounter: %w", err)
	}

	enc.Decks.Assign(agent.ID, cfg.AgentDeck...)
	enc.Decks.Assign(opponent.ID, cfg.OpponentDeck...)

	return &EncounterSession{
		enc:      enc,
		agent:    agent,
		opponent: opponent,
		events:   events,
	}, nil
}

// seatByName resolves "agent" or "opponent" to a combatant.
func (s *EncounterSession) seatByName(name string) (*rules.Combatant, error) {
	switch name {
	case "agent", "":
		return s.agent, nil
	case "opponent":
		return s.opponent, nil
	default:
		return nil, fmt.Errorf("unknown seat %q (want agent or opponent)", name)
	}
}

// drainEvents returns the event views logged since the last drain.
func (s *EncounterSession) drainEvents() []cardnet.EventView {
	views := []cardnet.EventView{}
	for _, e := range s.events.Events() {
		if e.Seq > s.lastSeq {
			views = append(views, cardnet.BuildEventView(e))
			s.lastSeq = e.Seq
		}
	}
	return views
}

// respond builds the standard envelope from the agent's perspective.
func (s *EncounterSession) respond() *ToolResponse {
	return &ToolResponse{
		Events: s.drainEvents(),
		State:  cardnet.BuildStateView(s.enc, s.agent),
		Over:   s.enc.Over(),
	}
}

// parseDeck turns a space-separated id list into definition ids.
func parseDeck(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Fields(s) {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid card id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
