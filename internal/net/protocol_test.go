package net

import (
	"testing"

	"go.uber.org/zap"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/rules"
	"cardcore/internal/tracking"
)

func newViewFixture(t *testing.T) (*rules.Encounter, *rules.Combatant, *rules.Combatant) {
	t.Helper()
	catalog, err := card.NewCatalog([]card.Definition{{
		ID:   1,
		Name: "Strike",
		Effects: []card.EffectDescriptor{
			{Kind: card.EffectDamage, Amount: 6, Target: card.TargetOpponent},
		},
	}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	hero := rules.NewCombatant("Hero", 100, 3)
	foe := rules.NewCombatant("Foe", 80, 3)
	hero.SetOpponent(foe)
	foe.SetOpponent(hero)

	enc, err := rules.NewEncounter(rules.EncounterConfig{
		Catalog:    catalog,
		Logger:     zap.NewNop(),
		Combatants: []*rules.Combatant{hero, foe},
	})
	if err != nil {
		t.Fatalf("encounter: %v", err)
	}
	return enc, hero, foe
}

func TestBuildStateView(t *testing.T) {
	enc, hero, foe := newViewFixture(t)
	enc.Decks.Assign(hero.ID, 1, 1)
	enc.Tracker.Increment(tracking.ActorKey(hero.ID), tracking.CounterComboCount, 2)
	foe.ApplyStatus(card.EffectBurn, 3, 2, hero.ID)

	view := BuildStateView(enc, hero)
	if view.Turn != 1 || view.Over {
		t.Errorf("turn/over = %d/%v", view.Turn, view.Over)
	}
	if view.You.Name != "Hero" || view.You.Combo != 2 {
		t.Errorf("you = %+v", view.You)
	}
	if len(view.You.Deck) != 2 {
		t.Errorf("own deck not exposed: %v", view.You.Deck)
	}
	if view.Opponent.Name != "Foe" || view.Opponent.MaxHealth != 80 {
		t.Errorf("opponent = %+v", view.Opponent)
	}
	if len(view.Opponent.Deck) != 0 {
		t.Error("opponent deck must stay hidden")
	}
	if len(view.Opponent.Statuses) != 1 || view.Opponent.Statuses[0].Kind != "burn" {
		t.Errorf("opponent statuses = %+v", view.Opponent.Statuses)
	}
}

func TestBuildEventView(t *testing.T) {
	e := battlelog.NewDamageEvent(3, "Hero", "Foe", 6, 94)
	e.Seq = 7

	v := BuildEventView(e)
	if v.Seq != 7 || v.Turn != 3 || v.Actor != "Hero" || v.Type != "Damage" {
		t.Errorf("event view = %+v", v)
	}
	if v.Details == "" {
		t.Error("details missing")
	}
}
