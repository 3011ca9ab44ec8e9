package rules

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"cardcore/internal/card"
)

func TestResolveSelf(t *testing.T) {
	r := NewTargetResolver(nil, zap.NewNop())
	src := NewCombatant("Solo", 50, 3)

	got := r.Resolve(src, card.TargetSelf)
	if len(got) != 1 || got[0] != src {
		t.Fatalf("self resolution: got %v", got)
	}
}

func TestResolveAllyDefaultsToSelf(t *testing.T) {
	r := NewTargetResolver(nil, zap.NewNop())
	src := NewCombatant("Solo", 50, 3)

	got := r.Resolve(src, card.TargetAlly)
	if len(got) != 1 || got[0] != src {
		t.Fatalf("ally resolution without mapping should fall back to self, got %v", got)
	}

	ally := NewCombatant("Buddy", 50, 3)
	src.SetAlly(ally)
	got = r.Resolve(src, card.TargetAlly)
	if len(got) != 1 || got[0] != ally {
		t.Fatalf("ally resolution with mapping: got %v", got)
	}
}

func TestResolveOpponentMissingIsEmpty(t *testing.T) {
	r := NewTargetResolver(nil, zap.NewNop())
	src := NewCombatant("Solo", 50, 3)

	if got := r.Resolve(src, card.TargetOpponent); len(got) != 0 {
		t.Fatalf("opponent resolution without mapping should be empty, got %v", got)
	}

	opp := NewCombatant("Rival", 50, 3)
	src.SetOpponent(opp)
	got := r.Resolve(src, card.TargetOpponent)
	if len(got) != 1 || got[0] != opp {
		t.Fatalf("opponent resolution with mapping: got %v", got)
	}
}

func TestResolveNoneIsEmpty(t *testing.T) {
	r := NewTargetResolver(nil, zap.NewNop())
	src := NewCombatant("Solo", 50, 3)

	if got := r.Resolve(src, card.TargetNone); len(got) != 0 {
		t.Fatalf("none target kind should resolve to no targets, got %v", got)
	}
}

func TestResolveRandomPicksFromAllPossible(t *testing.T) {
	r := NewTargetResolver(rand.New(rand.NewSource(7)), zap.NewNop())
	src := NewCombatant("Solo", 50, 3)
	ally := NewCombatant("Buddy", 50, 3)
	opp := NewCombatant("Rival", 50, 3)
	src.SetAlly(ally)
	src.SetOpponent(opp)

	pool := map[*Combatant]bool{src: true, ally: true, opp: true}
	seen := map[*Combatant]bool{}
	for i := 0; i < 100; i++ {
		got := r.Resolve(src, card.TargetRandom)
		if len(got) != 1 {
			t.Fatalf("random resolution returned %d targets", len(got))
		}
		if !pool[got[0]] {
			t.Fatalf("random resolution picked outsider %v", got[0])
		}
		seen[got[0]] = true
	}
	if len(seen) != 3 {
		t.Errorf("100 seeded draws only ever hit %d of 3 possible targets", len(seen))
	}
}

func TestResolveRandomSoloAlwaysSelf(t *testing.T) {
	r := NewTargetResolver(rand.New(rand.NewSource(7)), zap.NewNop())
	src := NewCombatant("Solo", 50, 3)

	for i := 0; i < 10; i++ {
		got := r.Resolve(src, card.TargetRandom)
		if len(got) != 1 || got[0] != src {
			t.Fatalf("solo random resolution: got %v", got)
		}
	}
}
