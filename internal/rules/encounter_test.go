package rules

import (
	"testing"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/tracking"
)

func TestPerfectTurnStreak(t *testing.T) {
	f := newFixture(t, attackCard(1, "Strike", 1, 6))
	key := tracking.ActorKey(f.hero.ID)

	f.enc.EndTurn(f.hero)
	f.enc.EndTurn(f.hero)
	if got := f.tracker.Get(key, tracking.CounterPerfectionStreak); got != 2 {
		t.Errorf("streak after two clean turns = %d, want 2", got)
	}
	if got := f.tracker.Get(key, tracking.CounterLifetimePerfectTurns); got != 2 {
		t.Errorf("lifetime perfect turns = %d, want 2", got)
	}

	f.tracker.Increment(key, tracking.CounterDamageTakenThisTurn, 3)
	f.enc.EndTurn(f.hero)
	if got := f.tracker.Get(key, tracking.CounterPerfectionStreak); got != 0 {
		t.Errorf("streak after a damaged turn = %d, want 0", got)
	}
	if got := f.tracker.Get(key, tracking.CounterLifetimePerfectTurns); got != 2 {
		t.Errorf("lifetime perfect turns = %d, want 2 (streak reset does not touch lifetime)", got)
	}
}

func TestRollTurnFeedsLastTurnPredicates(t *testing.T) {
	f := newFixture(t, attackCard(1, "Strike", 0, 6))
	key := tracking.ActorKey(f.hero.ID)

	f.play(t, f.hero, 1)
	if got := f.tracker.Get(key, tracking.CounterDamageDealtLastTurn); got != 0 {
		t.Fatalf("last-turn damage before rollover = %d, want 0", got)
	}

	f.enc.EndTurn(f.hero)
	if got := f.tracker.Get(key, tracking.CounterDamageDealtLastTurn); got != 6 {
		t.Errorf("last-turn damage after rollover = %d, want 6", got)
	}
	if got := f.tracker.Get(key, tracking.CounterDamageDealtThisTurn); got != 0 {
		t.Errorf("this-turn damage after rollover = %d, want 0", got)
	}

	// A second clean rollover replaces the snapshot rather than accumulating.
	f.enc.EndTurn(f.hero)
	if got := f.tracker.Get(key, tracking.CounterDamageDealtLastTurn); got != 0 {
		t.Errorf("last-turn damage after empty turn = %d, want 0", got)
	}
}

func TestEndTurnExpiresStatuses(t *testing.T) {
	f := newFixture(t, statusCard(1, "Hex", card.EffectWeak, 2, 1))

	f.play(t, f.hero, 1)
	if !f.foe.HasStatus(card.EffectWeak) {
		t.Fatal("weak status not applied")
	}

	f.enc.EndTurn(f.foe)
	if f.foe.HasStatus(card.EffectWeak) {
		t.Error("weak status should expire after one turn")
	}
	if got := len(f.events.EventsOfType(battlelog.EventStatusExpired)); got != 1 {
		t.Errorf("StatusExpired events = %d, want 1", got)
	}
	// Survived kinds are tallied at encounter end, not per expiry.
	if got := f.tracker.Get(tracking.ActorKey(f.foe.ID), tracking.CounterLifetimeSurvivedStatuses); got != 0 {
		t.Errorf("survived statuses before encounter end = %d, want 0", got)
	}
}

func TestFinishCountsDistinctSurvivedKinds(t *testing.T) {
	f := newFixture(t, statusCard(1, "Hex", card.EffectWeak, 2, 1))

	f.foe.ApplyStatus(card.EffectWeak, 2, 1, f.hero.ID)
	f.enc.EndTurn(f.foe)
	f.foe.ApplyStatus(card.EffectWeak, 2, 1, f.hero.ID)
	f.foe.ApplyStatus(card.EffectBurn, 3, 1, f.hero.ID)
	f.enc.EndTurn(f.foe)

	if err := f.enc.Finish(f.hero); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if got := f.tracker.Get(tracking.ActorKey(f.foe.ID), tracking.CounterLifetimeSurvivedStatuses); got != 2 {
		t.Errorf("survived status kinds = %d, want 2 (weak counted once, burn once)", got)
	}
}

func TestNextTurnAdvancesSharedCounter(t *testing.T) {
	f := newFixture(t, attackCard(1, "Strike", 1, 6))

	if f.enc.Pipeline.Turn != 1 {
		t.Fatalf("initial turn = %d, want 1", f.enc.Pipeline.Turn)
	}
	f.enc.NextTurn(f.foe)
	if f.enc.Pipeline.Turn != 2 {
		t.Errorf("turn after advance = %d, want 2", f.enc.Pipeline.Turn)
	}
	if got := len(f.events.EventsOfType(battlelog.EventTurnStart)); got != 1 {
		t.Errorf("TurnStart events = %d, want 1", got)
	}
}

func TestFinishRecordsWinAndLoss(t *testing.T) {
	f := newFixture(t, attackCard(1, "Strike", 1, 6))

	if err := f.enc.Finish(f.hero); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !f.enc.Over() {
		t.Error("encounter should report over")
	}
	if got := f.tracker.Get(tracking.ActorKey(f.hero.ID), tracking.CounterLifetimeWins); got != 1 {
		t.Errorf("hero wins = %d, want 1", got)
	}
	if got := f.tracker.Get(tracking.ActorKey(f.foe.ID), tracking.CounterLifetimeLosses); got != 1 {
		t.Errorf("foe losses = %d, want 1", got)
	}
	if got := len(f.events.EventsOfType(battlelog.EventEncounterEnd)); got != 1 {
		t.Errorf("EncounterEnd events = %d, want 1", got)
	}
}

func TestFinishDrawRecordsNeither(t *testing.T) {
	f := newFixture(t, attackCard(1, "Strike", 1, 6))

	if err := f.enc.Finish(nil); err != nil {
		t.Fatalf("finish: %v", err)
	}
	for _, c := range []*Combatant{f.hero, f.foe} {
		key := tracking.ActorKey(c.ID)
		if f.tracker.Get(key, tracking.CounterLifetimeWins) != 0 ||
			f.tracker.Get(key, tracking.CounterLifetimeLosses) != 0 {
			t.Errorf("draw recorded a win or loss for %s", c.Name)
		}
	}
}

func TestFinishResetsEncounterScopeKeepsLifetime(t *testing.T) {
	f := newFixture(t, attackCard(1, "Strike", 0, 6))
	key := tracking.ActorKey(f.hero.ID)

	f.play(t, f.hero, 1)
	if err := f.enc.Finish(f.hero); err != nil {
		t.Fatalf("finish: %v", err)
	}

	if got := f.tracker.Get(key, tracking.CounterDamageDealtThisEncounter); got != 0 {
		t.Errorf("encounter damage after finish = %d, want 0", got)
	}
	if got := f.tracker.Get(key, tracking.CounterLifetimeDamageDealt); got != 6 {
		t.Errorf("lifetime damage after finish = %d, want 6", got)
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	f := newFixture(t, attackCard(1, "Strike", 1, 6))

	if err := f.enc.Finish(f.hero); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if err := f.enc.Finish(f.hero); err != nil {
		t.Fatalf("second finish: %v", err)
	}
	if got := f.tracker.Get(tracking.ActorKey(f.hero.ID), tracking.CounterLifetimeWins); got != 1 {
		t.Errorf("hero wins after double finish = %d, want 1", got)
	}
}

func TestFinishHeldAtEndFromHandGauge(t *testing.T) {
	f := newFixture(t, attackCard(1, "Strike", 1, 6))
	key := tracking.ActorKey(f.hero.ID)
	f.tracker.Set(key, tracking.CounterCardsInHand, 4)

	if err := f.enc.Finish(f.hero); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if got := f.tracker.Get(key, tracking.CounterLifetimeHeldAtEnd); got != 4 {
		t.Errorf("held at end = %d, want 4", got)
	}
}
