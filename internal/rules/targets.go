package rules

import (
	"math/rand"

	"go.uber.org/zap"

	"cardcore/internal/card"
)

// TargetResolver turns a target kind and the combat topology into a
// concrete, ordered list of distinct combatants.
type TargetResolver struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// NewTargetResolver creates a resolver. rng may be nil for unseeded
// random-target selection.
func NewTargetResolver(rng *rand.Rand, logger *zap.Logger) *TargetResolver {
	return &TargetResolver{rng: rng, logger: logger}
}

// Resolve returns the targets for one effect. Self and ally resolution
// never fail; opponent resolution returns an empty list when the source
// has no opponent mapping, and the caller skips that effect.
func (r *TargetResolver) Resolve(source *Combatant, kind card.TargetKind) []*Combatant {
	switch kind {
	case card.TargetSelf:
		return []*Combatant{source}
	case card.TargetAlly:
		return []*Combatant{source.Ally()}
	case card.TargetOpponent:
		opp := source.Opponent()
		if opp == nil {
			r.logger.Warn("no opponent mapping for source, skipping effect",
				zap.String("source", source.Name))
			return nil
		}
		return []*Combatant{opp}
	case card.TargetRandom:
		pool := r.allPossible(source)
		return []*Combatant{pool[r.intn(len(pool))]}
	default:
		r.logger.Warn("unknown target kind, skipping effect",
			zap.Int("kind", int(kind)))
		return nil
	}
}

// allPossible returns the distinct {self, ally, opponent} set.
func (r *TargetResolver) allPossible(source *Combatant) []*Combatant {
	pool := []*Combatant{source}
	if ally := source.Ally(); ally != source {
		pool = append(pool, ally)
	}
	if opp := source.Opponent(); opp != nil {
		pool = append(pool, opp)
	}
	return pool
}

func (r *TargetResolver) intn(n int) int {
	if n <= 1 {
		return 0
	}
	if r.rng != nil {
		return r.rng.Intn(n)
	}
	return rand.Intn(n)
}
