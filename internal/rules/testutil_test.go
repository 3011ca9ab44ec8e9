package rules

import (
	"testing"

	"go.uber.org/zap"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

// testFixture bundles a wired encounter with direct handles on everything
// tests want to poke at.
type testFixture struct {
	enc     *Encounter
	tracker *tracking.Store
	decks   *DeckSet
	events  *battlelog.MemoryLogger
	hero    *Combatant
	foe     *Combatant
}

// newFixture wires an encounter between two opposed combatants (100 HP,
// 3 energy) over a catalog built from the given definitions.
func newFixture(t *testing.T, defs ...card.Definition) *testFixture {
	t.Helper()

	catalog, err := card.NewCatalog(defs)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	hero := NewCombatant("Hero", 100, 3)
	foe := NewCombatant("Foe", 100, 3)
	hero.SetOpponent(foe)
	foe.SetOpponent(hero)

	tracker := tracking.NewStore()
	decks := NewDeckSet()
	events := battlelog.NewMemoryLogger()

	enc, err := NewEncounter(EncounterConfig{
		Catalog:    catalog,
		Tracker:    tracker,
		Decks:      decks,
		Events:     events,
		Logger:     zap.NewNop(),
		Combatants: []*Combatant{hero, foe},
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("new encounter: %v", err)
	}

	return &testFixture{
		enc:     enc,
		tracker: tracker,
		decks:   decks,
		events:  events,
		hero:    hero,
		foe:     foe,
	}
}

// play resolves defID for the hero and fails the test on catalog errors.
func (f *testFixture) play(t *testing.T, source *Combatant, defID int) Result {
	t.Helper()
	res, err := f.enc.Play(source, defID)
	if err != nil {
		t.Fatalf("play card %d: %v", defID, err)
	}
	return res
}

// --- Definition helpers ---

func attackCard(id int, name string, cost, amount int) card.Definition {
	return card.NewDefinitionBuilder(id, name).
		EnergyCost(cost).
		CardType(card.TypeAttack).
		Effect(card.EffectDescriptor{
			Kind:   card.EffectDamage,
			Amount: amount,
			Target: card.TargetOpponent,
		}).
		Build()
}

func healCard(id int, name string, cost, amount int) card.Definition {
	return card.NewDefinitionBuilder(id, name).
		EnergyCost(cost).
		CardType(card.TypeSkill).
		Effect(card.EffectDescriptor{
			Kind:   card.EffectHeal,
			Amount: amount,
			Target: card.TargetSelf,
		}).
		Build()
}

func statusCard(id int, name string, kind card.EffectKind, potency, duration int) card.Definition {
	return card.NewDefinitionBuilder(id, name).
		EnergyCost(1).
		CardType(card.TypeSkill).
		Effect(card.EffectDescriptor{
			Kind:     kind,
			Amount:   potency,
			Duration: duration,
			Target:   card.TargetOpponent,
		}).
		Build()
}
