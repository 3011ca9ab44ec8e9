package rules

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

// EncounterConfig wires an encounter's collaborators and participants.
type EncounterConfig struct {
	Catalog    *card.Catalog
	Tracker    *tracking.Store
	Decks      *DeckSet
	Events     battlelog.EventLogger
	Logger     *zap.Logger
	Combatants []*Combatant
	Seed       int64 // 0 for unseeded random-target selection
}

// Encounter owns the lifecycle around the pipeline: turn rollover, status
// ticking, perfect-turn tracking and encounter-end bookkeeping. It is the
// single authority; everything it touches is serialized by construction.
type Encounter struct {
	Pipeline   *Pipeline
	Upgrades   *UpgradeEngine
	Tracker    *tracking.Store
	Decks      *DeckSet
	Events     battlelog.EventLogger
	Combatants []*Combatant

	catalog  *card.Catalog
	logger   *zap.Logger
	over     bool
	survived map[uuid.UUID]map[card.EffectKind]bool
}

// NewEncounter wires the full resolution core for one encounter. All
// components receive their collaborators here; nothing is looked up lazily.
func NewEncounter(cfg EncounterConfig) (*Encounter, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if len(cfg.Combatants) == 0 {
		return nil, fmt.Errorf("at least one combatant is required")
	}
	if cfg.Tracker == nil {
		cfg.Tracker = tracking.NewStore()
	}
	if cfg.Decks == nil {
		cfg.Decks = NewDeckSet()
	}
	if cfg.Events == nil {
		cfg.Events = battlelog.NewMemoryLogger()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	sink := &EventSink{Events: cfg.Events}
	upgrades := NewUpgradeEngine(cfg.Catalog, cfg.Tracker, cfg.Decks, cfg.Logger)
	upgrades.SetSink(sink)

	pipeline := NewPipeline(PipelineConfig{
		Targets:  NewTargetResolver(rng, cfg.Logger),
		Scaling:  NewScalingEvaluator(cfg.Tracker),
		Conds:    NewConditionEvaluator(cfg.Tracker, cfg.Logger),
		Executor: NewEffectExecutor(cfg.Tracker, cfg.Events, cfg.Logger),
		Tracker:  cfg.Tracker,
		Upgrades: upgrades,
		Sink:     sink,
		Events:   cfg.Events,
		Logger:   cfg.Logger,
	})

	e := &Encounter{
		Pipeline:   pipeline,
		Upgrades:   upgrades,
		Tracker:    cfg.Tracker,
		Decks:      cfg.Decks,
		Events:     cfg.Events,
		Combatants: cfg.Combatants,
		catalog:    cfg.Catalog,
		logger:     cfg.Logger,
		survived:   make(map[uuid.UUID]map[card.EffectKind]bool),
	}

	if len(cfg.Combatants) >= 2 {
		e.Events.Log(battlelog.NewEncounterStartEvent(cfg.Combatants[0].Name, cfg.Combatants[1].Name))
	}
	return e, nil
}

// Over reports whether the encounter has finished.
func (e *Encounter) Over() bool {
	return e.over
}

// Play resolves one card play for the given source. An id the catalog
// never produced is a catalog desync and a hard error.
func (e *Encounter) Play(source *Combatant, defID int) (Result, error) {
	def, err := e.catalog.Get(defID)
	if err != nil {
		e.logger.Error("play request with unknown card id", zap.Error(err))
		return Result{}, err
	}
	return e.Pipeline.Resolve(NewPlay(source, def)), nil
}

// Resolve runs an already-constructed play instance. Exposed so a boundary
// holding a play handle can re-trigger it and get the duplicate guard.
func (e *Encounter) Resolve(play *Play) Result {
	return e.Pipeline.Resolve(play)
}

// EndTurn closes the actor's turn: perfect-turn tracking, status duration
// ticking and turn counter rollover.
func (e *Encounter) EndTurn(actor *Combatant) {
	turn := e.Pipeline.Turn
	key := tracking.ActorKey(actor.ID)

	if e.Tracker.Get(key, tracking.CounterDamageTakenThisTurn) == 0 {
		e.Tracker.Increment(key, tracking.CounterPerfectionStreak, 1)
		e.Tracker.Increment(key, tracking.CounterLifetimePerfectTurns, 1)
	} else {
		e.Tracker.Set(key, tracking.CounterPerfectionStreak, 0)
	}

	for _, s := range actor.TickStatuses() {
		e.Events.Log(battlelog.NewStatusExpiredEvent(turn, actor.Name, s.Kind.String()))
		if actor.Health > 0 {
			e.recordSurvived(actor.ID, s.Kind)
		}
	}

	e.Tracker.RollTurn(actor.ID)
	e.Events.Log(battlelog.NewTurnEndEvent(turn, actor.Name))
}

// recordSurvived notes a status kind the actor outlived. Distinct kinds are
// counted once per encounter, at encounter end.
func (e *Encounter) recordSurvived(actor uuid.UUID, kind card.EffectKind) {
	if e.survived[actor] == nil {
		e.survived[actor] = make(map[card.EffectKind]bool)
	}
	e.survived[actor][kind] = true
}

// NextTurn advances the shared turn counter and logs the turn start.
func (e *Encounter) NextTurn(actor *Combatant) {
	e.Pipeline.Turn++
	e.Events.Log(battlelog.NewTurnStartEvent(e.Pipeline.Turn, actor.Name))
}

// Finish ends the encounter: win/loss lifetime counters, held-at-end and
// survived-status-kind bookkeeping, encounter-scoped resets and a lifetime
// flush. winner may be nil for a draw.
func (e *Encounter) Finish(winner *Combatant) error {
	if e.over {
		return nil
	}
	e.over = true

	name := "(draw)"
	if winner != nil {
		name = winner.Name
	}
	e.Events.Log(battlelog.NewEncounterEndEvent(e.Pipeline.Turn, name))

	for _, c := range e.Combatants {
		key := tracking.ActorKey(c.ID)
		if winner != nil {
			if c == winner {
				e.Tracker.Increment(key, tracking.CounterLifetimeWins, 1)
			} else {
				e.Tracker.Increment(key, tracking.CounterLifetimeLosses, 1)
			}
		}
		held := e.Tracker.Get(key, tracking.CounterCardsInHand)
		if held > 0 {
			e.Tracker.Increment(key, tracking.CounterLifetimeHeldAtEnd, held)
		}
		if kinds := len(e.survived[c.ID]); kinds > 0 {
			e.Tracker.Increment(key, tracking.CounterLifetimeSurvivedStatuses, kinds)
		}
	}

	e.Upgrades.ResetEncounter()
	for _, c := range e.Combatants {
		if err := e.Tracker.FlushLifetime(c.ID); err != nil {
			return fmt.Errorf("flush lifetime counters for %s: %w", c.Name, err)
		}
		e.Tracker.ResetEncounter(c.ID)
	}
	return nil
}
