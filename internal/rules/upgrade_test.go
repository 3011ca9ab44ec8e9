package rules

import (
	"testing"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

func upgradeableStrike(baseID, upgradedID, required int, replaceAll bool) card.Definition {
	return card.NewDefinitionBuilder(baseID, "Strike").
		EnergyCost(0).
		CardType(card.TypeAttack).
		Effect(card.EffectDescriptor{Kind: card.EffectDamage, Amount: 6, Target: card.TargetOpponent}).
		Upgrade(card.UpgradeRule{
			Condition:        tracking.CounterTimesPlayed,
			RequiredValue:    required,
			Comparator:       card.CmpGTE,
			ReplaceAllCopies: replaceAll,
			UpgradedID:       upgradedID,
		}).
		Build()
}

func TestUpgradeTriggersAfterPlay(t *testing.T) {
	f := newFixture(t,
		upgradeableStrike(1, 2, 3, false),
		attackCard(2, "Strike+", 0, 9),
	)
	f.decks.Assign(f.hero.ID, 1, 1)

	f.play(t, f.hero, 1)
	f.play(t, f.hero, 1)
	if f.decks.Count(f.hero.ID, 2) != 0 {
		t.Fatal("upgrade fired before the threshold")
	}

	f.play(t, f.hero, 1)
	if got := f.decks.Count(f.hero.ID, 2); got != 1 {
		t.Errorf("upgraded slots = %d, want 1", got)
	}
	if got := f.decks.Count(f.hero.ID, 1); got != 1 {
		t.Errorf("base slots = %d, want 1 (replace one copy)", got)
	}
	if got := len(f.events.EventsOfType(battlelog.EventCardUpgraded)); got != 1 {
		t.Errorf("CardUpgraded events = %d, want 1", got)
	}
}

func TestUpgradeReplaceAllCopies(t *testing.T) {
	f := newFixture(t,
		upgradeableStrike(1, 2, 1, true),
		attackCard(2, "Strike+", 0, 9),
	)
	f.decks.Assign(f.hero.ID, 1, 1, 1, 5, 1)

	f.play(t, f.hero, 1)
	if got := f.decks.Count(f.hero.ID, 2); got != 4 {
		t.Errorf("upgraded slots = %d, want 4", got)
	}
	if got := f.decks.Count(f.hero.ID, 1); got != 0 {
		t.Errorf("base slots = %d, want 0", got)
	}
	// Unrelated slots untouched.
	if got := f.decks.Count(f.hero.ID, 5); got != 1 {
		t.Errorf("unrelated slots = %d, want 1", got)
	}
}

func TestUpgradeOncePerEncounter(t *testing.T) {
	f := newFixture(t,
		upgradeableStrike(1, 2, 1, false),
		attackCard(2, "Strike+", 0, 9),
	)
	f.decks.Assign(f.hero.ID, 1, 1, 1)

	f.play(t, f.hero, 1)
	f.play(t, f.hero, 1)
	f.play(t, f.hero, 1)

	// The (hero, Strike) pair is marked after the first upgrade; later plays
	// must not convert the remaining copies.
	if got := f.decks.Count(f.hero.ID, 2); got != 1 {
		t.Errorf("upgraded slots = %d, want 1", got)
	}
	if got := len(f.events.EventsOfType(battlelog.EventCardUpgraded)); got != 1 {
		t.Errorf("CardUpgraded events = %d, want 1", got)
	}
}

func TestUpgradeMarkClearsOnEncounterReset(t *testing.T) {
	f := newFixture(t,
		upgradeableStrike(1, 2, 1, false),
		attackCard(2, "Strike+", 0, 9),
	)
	f.decks.Assign(f.hero.ID, 1, 1)

	f.play(t, f.hero, 1)
	if got := f.decks.Count(f.hero.ID, 2); got != 1 {
		t.Fatalf("upgraded slots = %d, want 1", got)
	}

	f.enc.Upgrades.ResetEncounter()
	f.play(t, f.hero, 1)
	if got := f.decks.Count(f.hero.ID, 2); got != 2 {
		t.Errorf("upgraded slots after reset = %d, want 2", got)
	}
}

func TestUpgradeMissingTargetSkipsWithoutMarking(t *testing.T) {
	f := newFixture(t, upgradeableStrike(1, 999, 1, false))
	f.decks.Assign(f.hero.ID, 1)

	f.play(t, f.hero, 1)
	if got := f.decks.Count(f.hero.ID, 1); got != 1 {
		t.Errorf("base slots = %d, want 1 (nothing to swap to)", got)
	}
	if got := len(f.events.EventsOfType(battlelog.EventCardUpgraded)); got != 0 {
		t.Errorf("CardUpgraded events = %d, want 0", got)
	}
	// The pair was never marked, so adding the target later lets the
	// upgrade go through on the next play.
}

func TestUpgradeComparators(t *testing.T) {
	tests := []struct {
		name string
		cmp  card.Comparator
		have int
		need int
		want bool
	}{
		{"gte met", card.CmpGTE, 3, 3, true},
		{"gte unmet", card.CmpGTE, 2, 3, false},
		{"eq met", card.CmpEQ, 3, 3, true},
		{"eq overshoot", card.CmpEQ, 4, 3, false},
		{"lte met", card.CmpLTE, 2, 3, true},
		{"gt met", card.CmpGT, 4, 3, true},
		{"lt unmet", card.CmpLT, 3, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmp.Compare(tt.have, tt.need); got != tt.want {
				t.Errorf("Compare(%d, %d) = %v, want %v", tt.have, tt.need, got, tt.want)
			}
		})
	}
}

func TestUpgradeOnActorScopedCounter(t *testing.T) {
	def := card.NewDefinitionBuilder(1, "Rampart").
		EnergyCost(0).
		CardType(card.TypeSkill).
		Effect(card.EffectDescriptor{Kind: card.EffectHeal, Amount: 1, Target: card.TargetSelf}).
		Upgrade(card.UpgradeRule{
			Condition:     tracking.CounterDamageDealtThisEncounter,
			RequiredValue: 10,
			Comparator:    card.CmpGTE,
			UpgradedID:    2,
		}).
		Build()
	f := newFixture(t, def, healCard(2, "Rampart+", 0, 5))
	f.decks.Assign(f.hero.ID, 1)
	f.tracker.Increment(tracking.ActorKey(f.hero.ID), tracking.CounterDamageDealtThisEncounter, 12)

	f.play(t, f.hero, 1)
	if got := f.decks.Count(f.hero.ID, 2); got != 1 {
		t.Errorf("upgraded slots = %d, want 1", got)
	}
}
