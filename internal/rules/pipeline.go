package rules

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

// PlayState is the pipeline's position for one play.
type PlayState int

const (
	StateIdle PlayState = iota
	StateValidating
	StateGated
	StateResolving
	StateRecording
)

func (s PlayState) String() string {
	switch s {
	case StateValidating:
		return "Validating"
	case StateGated:
		return "Gated"
	case StateResolving:
		return "Resolving"
	case StateRecording:
		return "Recording"
	default:
		return "Idle"
	}
}

// RejectReason says why a play did not resolve.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectNoEffects
	RejectNoSource
	RejectNoTargets
	RejectInsufficientEnergy
	RejectComboGate
	RejectDuplicate
)

func (r RejectReason) String() string {
	switch r {
	case RejectNoEffects:
		return "card has no effects"
	case RejectNoSource:
		return "source missing"
	case RejectNoTargets:
		return "no resolvable targets"
	case RejectInsufficientEnergy:
		return "insufficient energy"
	case RejectComboGate:
		return "combo requirement not met"
	case RejectDuplicate:
		return "duplicate play dropped"
	default:
		return ""
	}
}

// Play is one in-flight play instance. The resolving flag is the only
// synchronization primitive the core needs: a duplicate trigger for the
// same instance is dropped, not queued.
type Play struct {
	ID     uuid.UUID
	Source *Combatant
	Def    *card.Definition

	state     PlayState
	resolving bool
	deducted  bool
}

// NewPlay creates a play instance for one card play request.
func NewPlay(source *Combatant, def *card.Definition) *Play {
	return &Play{ID: uuid.New(), Source: source, Def: def}
}

// State returns the play's current pipeline state.
func (p *Play) State() PlayState {
	return p.state
}

// Result is the outcome of one pipeline run.
type Result struct {
	Played         bool
	Reason         RejectReason
	EffectsApplied int
}

// Pipeline orchestrates a single card play: gating, ordering, effect
// iteration, tracking updates and the post-play upgrade check. Every
// collaborator is injected at construction.
type Pipeline struct {
	targets  *TargetResolver
	scaling  *ScalingEvaluator
	conds    *ConditionEvaluator
	executor *EffectExecutor
	tracker  *tracking.Store
	upgrades *UpgradeEngine
	sink     NotificationSink
	events   battlelog.EventLogger
	logger   *zap.Logger

	// Turn is the current turn number, maintained by the encounter.
	Turn int
}

// PipelineConfig wires a pipeline's collaborators.
type PipelineConfig struct {
	Targets  *TargetResolver
	Scaling  *ScalingEvaluator
	Conds    *ConditionEvaluator
	Executor *EffectExecutor
	Tracker  *tracking.Store
	Upgrades *UpgradeEngine
	Sink     NotificationSink
	Events   battlelog.EventLogger
	Logger   *zap.Logger
}

// NewPipeline creates a pipeline from its collaborators.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		targets:  cfg.Targets,
		scaling:  cfg.Scaling,
		conds:    cfg.Conds,
		executor: cfg.Executor,
		tracker:  cfg.Tracker,
		upgrades: cfg.Upgrades,
		sink:     cfg.Sink,
		events:   cfg.Events,
		logger:   cfg.Logger,
		Turn:     1,
	}
}

// Resolve runs one play through the state machine:
// Idle → Validating → Gated(reject) | Resolving → Recording → Idle.
// It is called only from the single authority goroutine; the per-play
// resolving flag guards against a duplicate trigger for the same instance.
func (p *Pipeline) Resolve(play *Play) Result {
	if play.resolving {
		p.logger.Debug("duplicate play trigger dropped", zap.String("play", play.ID.String()))
		name := ""
		if play.Def != nil {
			name = play.Def.Name
		}
		actor := ""
		if play.Source != nil {
			actor = play.Source.Name
		}
		p.events.Log(battlelog.NewPlayDroppedEvent(p.Turn, actor, name))
		return Result{Reason: RejectDuplicate}
	}
	play.resolving = true

	// Validating
	play.state = StateValidating
	if reason := p.validate(play); reason != RejectNone {
		play.state = StateGated
		p.reject(play, reason)
		play.state = StateIdle
		return Result{Reason: reason}
	}

	// Gated: combo requirement
	src := play.Source
	def := play.Def
	if def.RequiresCombo {
		combo := p.tracker.Get(tracking.ActorKey(src.ID), tracking.CounterComboCount)
		if combo < def.RequiredCombo {
			play.state = StateGated
			p.reject(play, RejectComboGate)
			play.state = StateIdle
			return Result{Reason: RejectComboGate}
		}
	}

	// Resolving
	play.state = StateResolving
	p.events.Log(battlelog.NewCardPlayedEvent(p.Turn, src.Name, def.Name, def.EnergyCost))

	if def.ChangesStance {
		src.Stance = def.NewStance
		p.events.Log(battlelog.NewStanceChangeEvent(p.Turn, src.Name, def.NewStance.String()))
	}

	applied := 0
	for _, eff := range def.Effects {
		if eff.Condition == nil {
			applied += p.resolveEffect(play, eff)
		}
	}
	for _, eff := range def.Effects {
		if eff.Condition != nil {
			applied += p.resolveEffect(play, eff)
		}
	}

	// Recording
	play.state = StateRecording
	p.record(play)
	play.state = StateIdle

	return Result{Played: true, EffectsApplied: applied}
}

// validate rejects terminally, with no mutation.
func (p *Pipeline) validate(play *Play) RejectReason {
	if play.Source == nil {
		return RejectNoSource
	}
	if play.Def == nil || len(play.Def.Effects) == 0 {
		return RejectNoEffects
	}
	if play.Def.EnergyCost > play.Source.Energy {
		return RejectInsufficientEnergy
	}
	for _, eff := range play.Def.Effects {
		if len(p.targets.Resolve(play.Source, eff.Target)) > 0 {
			return RejectNone
		}
	}
	return RejectNoTargets
}

func (p *Pipeline) reject(play *Play, reason RejectReason) {
	actor := ""
	if play.Source != nil {
		actor = play.Source.Name
	}
	name := ""
	if play.Def != nil {
		name = play.Def.Name
	}
	p.logger.Info("play rejected",
		zap.String("card", name),
		zap.String("actor", actor),
		zap.String("reason", reason.String()))
	p.events.Log(battlelog.NewPlayRejectedEvent(p.Turn, actor, name, reason.String()))
}

// resolveEffect applies one descriptor against its own resolved target set
// (not the play's nominal target) and returns how many applications ran.
func (p *Pipeline) resolveEffect(play *Play, eff card.EffectDescriptor) int {
	src := play.Source
	def := play.Def

	targets := p.targets.Resolve(src, eff.Target)
	if len(targets) == 0 {
		p.logger.Warn("effect has no resolvable targets, skipping",
			zap.String("card", def.Name),
			zap.String("kind", eff.Kind.String()))
		return 0
	}

	srcKey := tracking.ActorKey(src.ID)
	main := ResolvedEffect{
		Kind:     eff.Kind,
		Amount:   p.scaling.ScaledAmount(eff.Amount, eff.Scaling, srcKey),
		Duration: eff.Duration,
	}

	// The condition gates only the alternative branch. On the not-met path
	// the main effect runs exactly as if no condition existed.
	conditionMet := false
	if eff.Condition != nil {
		conditionMet = p.conds.Met(eff.Condition, src, targets[0], def)
	}

	applied := 0
	for _, tgt := range targets {
		if conditionMet && eff.Alternative != nil {
			alt := ResolvedEffect{
				Kind:     eff.Alternative.Kind,
				Amount:   eff.Alternative.Amount,
				Duration: eff.Alternative.Duration,
			}
			switch eff.Alternative.Logic {
			case card.LogicReplace:
				p.executor.Apply(p.Turn, src, tgt, alt)
			case card.LogicAdditional:
				p.executor.Apply(p.Turn, src, tgt, main)
				p.executor.Apply(p.Turn, src, tgt, alt)
			}
		} else {
			p.executor.Apply(p.Turn, src, tgt, main)
		}
		p.sink.NotifyEffectVisual(p.Turn, src, tgt, def)
		applied++
	}
	return applied
}

// record runs the Recording state: one energy deduction, counter updates,
// then the upgrade check for the source.
func (p *Pipeline) record(play *Play) {
	src := play.Source
	def := play.Def

	if !play.deducted {
		play.deducted = true
		src.Energy -= def.EnergyCost
		p.events.Log(battlelog.NewEnergySpentEvent(p.Turn, src.Name, def.EnergyCost, src.Energy))
	}

	actorKey := tracking.ActorKey(src.ID)
	cardKey := tracking.CardKey(src.ID, def.ID)

	p.tracker.Increment(cardKey, tracking.CounterTimesPlayed, 1)
	p.tracker.Increment(cardKey, tracking.CounterLifetimeTimesPlayed, 1)
	p.tracker.Increment(actorKey, tracking.CounterCardsPlayedThisTurn, 1)
	p.tracker.Increment(actorKey, tracking.CounterCardsPlayedThisEncounter, 1)
	p.tracker.Set(actorKey, tracking.CounterLastCardType, int(def.CardType))

	if def.EnergyCost == 0 {
		p.tracker.Increment(actorKey, tracking.CounterZeroCostThisTurn, 1)
		p.tracker.Increment(actorKey, tracking.CounterZeroCostThisEncounter, 1)
		p.tracker.Increment(actorKey, tracking.CounterLifetimeZeroCostPlays, 1)
	}
	if def.BuildsCombo {
		p.tracker.Increment(actorKey, tracking.CounterComboCount, 1)
	}

	p.upgrades.CheckAfterPlay(p.Turn, src)
}
