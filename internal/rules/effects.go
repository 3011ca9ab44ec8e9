package rules

import (
	"go.uber.org/zap"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

// NotificationSink receives fire-and-forget notifications for the visual
// layer. Implementations must never block; resolution does not wait on them.
type NotificationSink interface {
	NotifyEffectVisual(turn int, source, target *Combatant, def *card.Definition)
	NotifyUpgrade(turn int, base, upgraded *card.Definition, actor *Combatant)
}

// EventSink is the default sink: notifications become battlelog events.
type EventSink struct {
	Events battlelog.EventLogger
}

func (s *EventSink) NotifyEffectVisual(turn int, source, target *Combatant, def *card.Definition) {
	s.Events.Log(battlelog.NewEffectVisualEvent(turn, source.Name, target.Name, def.Name))
}

func (s *EventSink) NotifyUpgrade(turn int, base, upgraded *card.Definition, actor *Combatant) {
	s.Events.Log(battlelog.NewCardUpgradedEvent(turn, actor.Name, base.Name, upgraded.Name))
}

// ResolvedEffect is one effect after target resolution and scaling: the
// amount is final and ready to apply.
type ResolvedEffect struct {
	Kind     card.EffectKind
	Amount   int
	Duration int
}

// EffectExecutor applies one resolved effect to one combatant, mutating
// health, energy, statuses and stance, and updating the source's counters.
type EffectExecutor struct {
	tracker  *tracking.Store
	events   battlelog.EventLogger
	logger   *zap.Logger
	handlers map[card.EffectKind]func(turn int, source, target *Combatant, eff ResolvedEffect)
}

// NewEffectExecutor creates an executor over the given tracking store.
func NewEffectExecutor(tracker *tracking.Store, events battlelog.EventLogger, logger *zap.Logger) *EffectExecutor {
	e := &EffectExecutor{
		tracker: tracker,
		events:  events,
		logger:  logger,
	}
	e.handlers = map[card.EffectKind]func(int, *Combatant, *Combatant, ResolvedEffect){
		card.EffectDamage:        e.applyDamage,
		card.EffectHeal:          e.applyHeal,
		card.EffectDraw:          e.applyDraw,
		card.EffectRestoreEnergy: e.applyRestoreEnergy,
		card.EffectStanceEnter:   e.applyStanceEnter,
		card.EffectStanceExit:    e.applyStanceExit,
	}
	return e
}

// Apply dispatches one resolved effect against one target. Status kinds all
// route through the shared named-status path. Unhandled kinds are logged
// and skipped, never fatal: card content is data and may reference kinds
// that are not implemented yet.
func (e *EffectExecutor) Apply(turn int, source, target *Combatant, eff ResolvedEffect) {
	if target == nil {
		e.logger.Error("effect target missing, skipping effect",
			zap.String("kind", eff.Kind.String()),
			zap.String("source", source.Name))
		return
	}
	if eff.Kind.IsStatus() {
		e.applyNamedStatus(turn, source, target, eff)
		return
	}
	handler, ok := e.handlers[eff.Kind]
	if !ok {
		e.logger.Warn("unhandled effect kind, skipping",
			zap.String("kind", eff.Kind.String()),
			zap.String("source", source.Name))
		return
	}
	handler(turn, source, target, eff)
}

func (e *EffectExecutor) applyDamage(turn int, source, target *Combatant, eff ResolvedEffect) {
	amount := eff.Amount + source.Strength
	if amount < 0 {
		amount = 0
	}

	// Shield absorbs before health.
	if shield := target.StatusPotency(card.EffectShield); shield > 0 {
		absorbed := amount
		if absorbed > shield {
			absorbed = shield
		}
		target.reduceStatus(card.EffectShield, absorbed)
		amount -= absorbed
	}

	target.Health -= amount
	if target.Health < 0 {
		target.Health = 0
	}

	srcKey := tracking.ActorKey(source.ID)
	tgtKey := tracking.ActorKey(target.ID)
	e.tracker.Increment(srcKey, tracking.CounterDamageDealtThisTurn, amount)
	e.tracker.Increment(srcKey, tracking.CounterDamageDealtThisEncounter, amount)
	e.tracker.Increment(srcKey, tracking.CounterLifetimeDamageDealt, amount)
	e.tracker.Increment(tgtKey, tracking.CounterDamageTakenThisTurn, amount)
	e.tracker.Increment(tgtKey, tracking.CounterDamageTakenThisEncounter, amount)
	e.tracker.Increment(tgtKey, tracking.CounterLifetimeDamageTaken, amount)

	e.events.Log(battlelog.NewDamageEvent(turn, source.Name, target.Name, amount, target.Health))
}

func (e *EffectExecutor) applyHeal(turn int, source, target *Combatant, eff ResolvedEffect) {
	amount := eff.Amount
	if target.Health+amount > target.MaxHealth {
		amount = target.MaxHealth - target.Health
	}
	if amount < 0 {
		amount = 0
	}
	target.Health += amount

	srcKey := tracking.ActorKey(source.ID)
	tgtKey := tracking.ActorKey(target.ID)
	e.tracker.Increment(srcKey, tracking.CounterHealingDealtThisTurn, amount)
	e.tracker.Increment(srcKey, tracking.CounterHealingDealtThisEncounter, amount)
	e.tracker.Increment(srcKey, tracking.CounterLifetimeHealingDealt, amount)
	e.tracker.Increment(tgtKey, tracking.CounterHealingTakenThisTurn, amount)
	e.tracker.Increment(tgtKey, tracking.CounterHealingTakenThisEncounter, amount)
	e.tracker.Increment(tgtKey, tracking.CounterLifetimeHealingTaken, amount)

	e.events.Log(battlelog.NewHealEvent(turn, source.Name, target.Name, amount, target.Health))
}

// applyDraw records the draw; the hand list itself is bookkeeping owned by
// the deck layer, which consumes the draw event.
func (e *EffectExecutor) applyDraw(turn int, source, target *Combatant, eff ResolvedEffect) {
	tgtKey := tracking.ActorKey(target.ID)
	e.tracker.Increment(tgtKey, tracking.CounterCardsDrawn, eff.Amount)
	e.tracker.Increment(tgtKey, tracking.CounterLifetimeCardsDrawn, eff.Amount)
	e.events.Log(battlelog.NewDrawEvent(turn, target.Name, eff.Amount))
}

func (e *EffectExecutor) applyRestoreEnergy(turn int, source, target *Combatant, eff ResolvedEffect) {
	target.Energy += eff.Amount
	if target.Energy > target.MaxEnergy {
		target.Energy = target.MaxEnergy
	}
	e.events.Log(battlelog.NewEnergyRestoreEvent(turn, target.Name, eff.Amount, target.Energy))
}

// applyNamedStatus is the single "apply named status" contract. The status
// registration and any dedicated field (stun flag, strength counter) change
// in the same logical step inside ApplyStatus.
func (e *EffectExecutor) applyNamedStatus(turn int, source, target *Combatant, eff ResolvedEffect) {
	target.ApplyStatus(eff.Kind, eff.Amount, eff.Duration, source.ID)
	e.events.Log(battlelog.NewStatusAppliedEvent(
		turn, source.Name, target.Name, eff.Kind.String(), eff.Amount, eff.Duration))
}

// applyStanceEnter sets the target's stance; the effect amount carries the
// stance ordinal.
func (e *EffectExecutor) applyStanceEnter(turn int, source, target *Combatant, eff ResolvedEffect) {
	target.Stance = card.Stance(eff.Amount)
	e.events.Log(battlelog.NewStanceChangeEvent(turn, target.Name, target.Stance.String()))
}

func (e *EffectExecutor) applyStanceExit(turn int, source, target *Combatant, eff ResolvedEffect) {
	target.Stance = card.StanceNone
	e.events.Log(battlelog.NewStanceChangeEvent(turn, target.Name, card.StanceNone.String()))
}
