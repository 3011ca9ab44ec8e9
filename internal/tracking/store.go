// Package tracking maintains the per-actor and per-card counters that
// scaling rules, condition predicates and upgrade conditions read.
// Turn- and encounter-scoped counters live in memory; lifetime counters
// can additionally be persisted through a Persister.
package tracking

import "github.com/google/uuid"

// Persister stores lifetime counters across encounters.
type Persister interface {
	// LoadLifetime returns all persisted lifetime counters for an actor.
	LoadLifetime(actor uuid.UUID) (map[Key]map[CounterKind]int, error)

	// SaveLifetime writes the given lifetime counters for an actor,
	// replacing any previously stored values for the same keys.
	SaveLifetime(actor uuid.UUID, counters map[Key]map[CounterKind]int) error
}

type counterMap map[Key]map[CounterKind]int

func (m counterMap) get(key Key, kind CounterKind) int {
	if kinds, ok := m[key]; ok {
		return kinds[kind]
	}
	return 0
}

func (m counterMap) add(key Key, kind CounterKind, delta int) {
	kinds, ok := m[key]
	if !ok {
		kinds = make(map[CounterKind]int)
		m[key] = kinds
	}
	kinds[kind] += delta
}

func (m counterMap) set(key Key, kind CounterKind, value int) {
	kinds, ok := m[key]
	if !ok {
		kinds = make(map[CounterKind]int)
		m[key] = kinds
	}
	kinds[kind] = value
}

// Store is the tracking snapshot. All mutation happens on the single
// authority goroutine, so the store carries no locking.
type Store struct {
	turn      counterMap
	lastTurn  counterMap
	encounter counterMap
	lifetime  counterMap

	persister Persister
}

// NewStore creates an empty in-memory tracking store.
func NewStore() *Store {
	return &Store{
		turn:      make(counterMap),
		lastTurn:  make(counterMap),
		encounter: make(counterMap),
		lifetime:  make(counterMap),
	}
}

// AttachPersister wires a lifetime persister and loads any previously
// stored lifetime counters for the given actors.
func (s *Store) AttachPersister(p Persister, actors ...uuid.UUID) error {
	s.persister = p
	for _, actor := range actors {
		loaded, err := p.LoadLifetime(actor)
		if err != nil {
			return err
		}
		for key, kinds := range loaded {
			for kind, value := range kinds {
				s.lifetime.set(key, kind, value)
			}
		}
	}
	return nil
}

func (s *Store) scopeMap(scope Scope) counterMap {
	switch scope {
	case ScopeTurn:
		return s.turn
	case ScopeLastTurn:
		return s.lastTurn
	case ScopeLifetime:
		return s.lifetime
	default:
		return s.encounter
	}
}

// Get returns the current value of a counter. The missing-health counter is
// a deliberate stub and always reads 0.
func (s *Store) Get(key Key, kind CounterKind) int {
	if kind == CounterMissingHealth {
		return 0
	}
	return s.scopeMap(kind.Scope()).get(key, kind)
}

// Increment adds delta to a counter, creating it on first reference.
func (s *Store) Increment(key Key, kind CounterKind, delta int) {
	s.scopeMap(kind.Scope()).add(key, kind, delta)
}

// Set overwrites a counter. Used for gauges mirrored from the deck layer
// (cards in hand/deck/discard).
func (s *Store) Set(key Key, kind CounterKind, value int) {
	s.scopeMap(kind.Scope()).set(key, kind, value)
}

// RollTurn snapshots this-turn counters into their last-turn partners and
// clears the turn scope for the given actor's keys.
func (s *Store) RollTurn(actor uuid.UUID) {
	for key := range s.lastTurn {
		if key.Actor == actor {
			delete(s.lastTurn, key)
		}
	}
	for key, kinds := range s.turn {
		if key.Actor != actor {
			continue
		}
		for kind, value := range kinds {
			if partner, ok := lastTurnPartner[kind]; ok {
				s.lastTurn.set(key, partner, value)
			}
		}
		delete(s.turn, key)
	}
}

// ResetEncounter clears all turn-, last-turn- and encounter-scoped counters
// for the given actor's keys. Lifetime counters are untouched.
func (s *Store) ResetEncounter(actor uuid.UUID) {
	for _, m := range []counterMap{s.turn, s.lastTurn, s.encounter} {
		for key := range m {
			if key.Actor == actor {
				delete(m, key)
			}
		}
	}
}

// FlushLifetime writes the actor's lifetime counters through the attached
// persister. A store without a persister flushes to nowhere.
func (s *Store) FlushLifetime(actor uuid.UUID) error {
	if s.persister == nil {
		return nil
	}
	out := make(map[Key]map[CounterKind]int)
	for key, kinds := range s.lifetime {
		if key.Actor != actor {
			continue
		}
		copied := make(map[CounterKind]int, len(kinds))
		for kind, value := range kinds {
			copied[kind] = value
		}
		out[key] = copied
	}
	return s.persister.SaveLifetime(actor, out)
}
