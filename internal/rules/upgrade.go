package rules

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

// upgradePair marks an (actor, base card) combination as upgraded for the
// current encounter.
type upgradePair struct {
	actor  uuid.UUID
	cardID int
}

// UpgradeEngine watches counters after every play and swaps card
// definitions in an actor's deck once their upgrade rule is satisfied.
// Each (actor, card) pair upgrades at most once per encounter.
type UpgradeEngine struct {
	catalog  *card.Catalog
	tracker  *tracking.Store
	decks    DeckMutator
	sink     NotificationSink
	logger   *zap.Logger
	upgraded map[upgradePair]bool
}

// NewUpgradeEngine creates an engine from its collaborators. The sink may
// be set later via SetSink when construction order requires it.
func NewUpgradeEngine(catalog *card.Catalog, tracker *tracking.Store, decks DeckMutator, logger *zap.Logger) *UpgradeEngine {
	return &UpgradeEngine{
		catalog:  catalog,
		tracker:  tracker,
		decks:    decks,
		logger:   logger,
		upgraded: make(map[upgradePair]bool),
	}
}

// SetSink wires the notification sink.
func (u *UpgradeEngine) SetSink(sink NotificationSink) {
	u.sink = sink
}

// CheckAfterPlay evaluates every upgrade-eligible definition in the actor's
// deck. Satisfied rules queue an upgrade, and queued upgrades execute
// immediately; there are no delayed upgrades.
func (u *UpgradeEngine) CheckAfterPlay(turn int, actor *Combatant) {
	seen := make(map[int]bool)
	for _, defID := range u.decks.DefinitionIDs(actor.ID) {
		if seen[defID] {
			continue
		}
		seen[defID] = true

		def, err := u.catalog.Get(defID)
		if err != nil {
			u.logger.Error("deck references unknown card", zap.Error(err))
			continue
		}
		if !def.CanUpgrade || def.Upgrade == nil {
			continue
		}
		pair := upgradePair{actor: actor.ID, cardID: def.ID}
		if u.upgraded[pair] {
			continue
		}

		rule := def.Upgrade
		value := u.counterValue(rule.Condition, actor, def)
		if !rule.Comparator.Compare(value, rule.RequiredValue) {
			continue
		}

		upgradedDef, err := u.catalog.Get(rule.UpgradedID)
		if err != nil {
			// Base card is upgradeable but the upgraded definition is
			// missing: skip queuing, never crash the play.
			u.logger.Error("upgrade target missing from catalog",
				zap.String("base", def.Name),
				zap.Int("upgraded_id", rule.UpgradedID))
			continue
		}

		u.execute(turn, actor, def, upgradedDef, rule)
	}
}

// execute marks the pair upgraded, swaps deck slots and notifies.
func (u *UpgradeEngine) execute(turn int, actor *Combatant, base, upgraded *card.Definition, rule *card.UpgradeRule) {
	u.upgraded[upgradePair{actor: actor.ID, cardID: base.ID}] = true

	if rule.ReplaceAllCopies {
		n := u.decks.ReplaceAll(actor.ID, base.ID, upgraded.ID)
		u.logger.Info("card upgraded",
			zap.String("actor", actor.Name),
			zap.String("base", base.Name),
			zap.String("upgraded", upgraded.Name),
			zap.Int("copies", n))
	} else {
		if !u.decks.ReplaceOne(actor.ID, base.ID, upgraded.ID) {
			u.logger.Warn("no deck slot found for upgrade",
				zap.String("actor", actor.Name),
				zap.String("base", base.Name))
			return
		}
		u.logger.Info("card upgraded",
			zap.String("actor", actor.Name),
			zap.String("base", base.Name),
			zap.String("upgraded", upgraded.Name))
	}

	if u.sink != nil {
		u.sink.NotifyUpgrade(turn, base, upgraded, actor)
	}
}

// counterValue reads the rule's counter for the actor, using the per-card
// key for card-scoped kinds.
func (u *UpgradeEngine) counterValue(kind tracking.CounterKind, actor *Combatant, def *card.Definition) int {
	switch kind {
	case tracking.CounterTimesPlayed, tracking.CounterLifetimeTimesPlayed:
		return u.tracker.Get(tracking.CardKey(actor.ID, def.ID), kind)
	default:
		return u.tracker.Get(tracking.ActorKey(actor.ID), kind)
	}
}

// ResetEncounter clears the once-per-encounter upgrade marks.
func (u *UpgradeEngine) ResetEncounter() {
	u.upgraded = make(map[upgradePair]bool)
}
