package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"cardcore/internal/card"
)

// activeSession is the singleton encounter session (one per stdio process).
var activeSession *EncounterSession

// catalog is the loaded card catalog, set by main before serving.
var catalog *card.Catalog

// logger is the operational logger, set by main before serving.
var logger = zap.NewNop()

// SetCatalog sets the card catalog used by start_encounter.
func SetCatalog(c *card.Catalog) {
	catalog = c
}

// SetLogger sets the operational logger for new sessions.
func SetLogger(l *zap.Logger) {
	logger = l
}

// RegisterTools adds all encounter tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startEncounterTool(), handleStartEncounter)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(endTurnTool(), handleEndTurn)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(finishEncounterTool(), handleFinishEncounter)
}

// --- Tool definitions ---

func startEncounterTool() mcp.Tool {
	return mcp.NewTool("start_encounter",
		mcp.WithDescription("Start a new card-battle encounter between the agent and an opponent. "+
			"Decks are space-separated card definition ids from the loaded catalog. "+
			"Returns the initial state from the agent's perspective."),
		mcp.WithString("agent_name", mcp.Description("Display name for the agent's combatant (default 'Agent')")),
		mcp.WithString("opponent_name", mcp.Description("Display name for the opponent (default 'Opponent')")),
		mcp.WithNumber("health", mcp.Description("Starting and maximum health for both sides (default 100)")),
		mcp.WithNumber("energy", mcp.Description("Per-turn energy for both sides (default 3)")),
		mcp.WithString("agent_deck", mcp.Required(), mcp.Description("Space-separated card ids for the agent's deck (e.g. '1 1 2 3')")),
		mcp.WithString("opponent_deck", mcp.Description("Space-separated card ids for the opponent's deck")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play one card by definition id. The play runs the full resolution pipeline: "+
			"validation, combo gating, targeting, scaling, conditional effects, tracking and upgrades. "+
			"A rejected play reports its reason and changes nothing."),
		mcp.WithNumber("card_id", mcp.Required(), mcp.Description("Card definition id to play")),
		mcp.WithString("seat", mcp.Description("'agent' (default) or 'opponent' to act for the scripted foe")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End the current turn for one seat: statuses tick and expire, per-turn counters "+
			"roll into their last-turn snapshots, and the turn counter advances."),
		mcp.WithString("seat", mcp.Description("'agent' (default) or 'opponent'")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current encounter state and any combat events since the last call. Read-only."),
	)
}

func finishEncounterTool() mcp.Tool {
	return mcp.NewTool("finish_encounter",
		mcp.WithDescription("End the encounter and record lifetime win/loss counters. "+
			"After this the session is closed; start_encounter begins a new one."),
		mcp.WithString("winner", mcp.Description("'agent', 'opponent', or empty for a draw")),
	)
}

// --- Tool handlers ---

func handleStartEncounter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("An encounter is already running. Use finish_encounter first."), nil
	}
	if catalog == nil {
		return mcp.NewToolResultError("No card catalog loaded."), nil
	}

	agentDeck, err := parseDeck(request.GetString("agent_deck", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("agent_deck: %v", err), nil
	}
	if len(agentDeck) == 0 {
		return mcp.NewToolResultError("agent_deck must list at least one card id"), nil
	}
	opponentDeck, err := parseDeck(request.GetString("opponent_deck", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("opponent_deck: %v", err), nil
	}
	for _, id := range append(append([]int{}, agentDeck...), opponentDeck...) {
		if !catalog.Has(id) {
			return mcp.NewToolResultErrorf("card id %d is not in the catalog", id), nil
		}
	}

	sess, err := NewEncounterSession(SessionConfig{
		Catalog:      catalog,
		Logger:       logger,
		AgentName:    request.GetString("agent_name", "Agent"),
		OpponentName: request.GetString("opponent_name", "Opponent"),
		Health:       request.GetInt("health", 0),
		Energy:       request.GetInt("energy", 0),
		AgentDeck:    agentDeck,
		OpponentDeck: opponentDeck,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start encounter: %v", err), nil
	}

	activeSession = sess
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No encounter is running. Use start_encounter first."), nil
	}
	sess := activeSession
	sess.mu.Lock()
	defer sess.mu.Unlock()

	seat, err := sess.seatByName(request.GetString("seat", "agent"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cardID := request.GetInt("card_id", 0)
	res, err := sess.enc.Play(seat, cardID)
	if err != nil {
		return mcp.NewToolResultErrorf("play failed: %v", err), nil
	}

	resp := sess.respond()
	if !res.Played {
		return mcp.NewToolResultText(respondJSON(resp) + "\nPlay rejected: " + res.Reason.String()), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No encounter is running. Use start_encounter first."), nil
	}
	sess := activeSession
	sess.mu.Lock()
	defer sess.mu.Unlock()

	seat, err := sess.seatByName(request.GetString("seat", "agent"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess.enc.EndTurn(seat)
	sess.enc.NextTurn(seat)
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No encounter is running. Use start_encounter first."), nil
	}
	sess := activeSession
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return mcp.NewToolResultText(respondJSON(sess.respond())), nil
}

func handleFinishEncounter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No encounter is running."), nil
	}
	sess := activeSession
	sess.mu.Lock()
	defer sess.mu.Unlock()

	var winner string
	switch request.GetString("winner", "") {
	case "agent":
		winner = sess.agent.Name
		if err := sess.enc.Finish(sess.agent); err != nil {
			return mcp.NewToolResultErrorf("finish: %v", err), nil
		}
	case "opponent":
		winner = sess.opponent.Name
		if err := sess.enc.Finish(sess.opponent); err != nil {
			return mcp.NewToolResultErrorf("finish: %v", err), nil
		}
	default:
		winner = "(draw)"
		if err := sess.enc.Finish(nil); err != nil {
			return mcp.NewToolResultErrorf("finish: %v", err), nil
		}
	}

	resp := sess.respond()
	resp.Over = true
	resp.Winner = winner
	activeSession = nil
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
