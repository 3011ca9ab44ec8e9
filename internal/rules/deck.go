package rules

import (
	"github.com/google/uuid"
)

// DeckMutator is the deck-bookkeeping contract the upgrade engine needs:
// what definitions an actor's deck references, and the ability to swap them.
type DeckMutator interface {
	// DefinitionIDs returns the definition ids currently referenced by the
	// actor's deck, in slot order, duplicates included.
	DefinitionIDs(actor uuid.UUID) []int

	// ReplaceOne swaps exactly one slot referencing baseID to upgradedID.
	// Reports whether a slot was found.
	ReplaceOne(actor uuid.UUID, baseID, upgradedID int) bool

	// ReplaceAll swaps every slot referencing baseID to upgradedID and
	// returns the number of slots changed.
	ReplaceAll(actor uuid.UUID, baseID, upgradedID int) int
}

// DeckSet is the in-memory deck mutator used by the authority, the CLI and
// tests. Deck slots hold definition ids; upgrades swap which definition a
// slot references, never the definitions themselves.
type DeckSet struct {
	decks map[uuid.UUID][]int
}

// NewDeckSet creates an empty deck set.
func NewDeckSet() *DeckSet {
	return &DeckSet{decks: make(map[uuid.UUID][]int)}
}

// Assign sets an actor's deck slots.
func (d *DeckSet) Assign(actor uuid.UUID, defIDs ...int) {
	d.decks[actor] = append([]int(nil), defIDs...)
}

// DefinitionIDs returns a copy of the actor's deck slots.
func (d *DeckSet) DefinitionIDs(actor uuid.UUID) []int {
	return append([]int(nil), d.decks[actor]...)
}

// Count returns how many slots reference the given definition.
func (d *DeckSet) Count(actor uuid.UUID, defID int) int {
	n := 0
	for _, id := range d.decks[actor] {
		if id == defID {
			n++
		}
	}
	return n
}

// ReplaceOne swaps the first slot referencing baseID to upgradedID.
func (d *DeckSet) ReplaceOne(actor uuid.UUID, baseID, upgradedID int) bool {
	slots := d.decks[actor]
	for i, id := range slots {
		if id == baseID {
			slots[i] = upgradedID
			return true
		}
	}
	return false
}

// ReplaceAll swaps every slot referencing baseID to upgradedID.
func (d *DeckSet) ReplaceAll(actor uuid.UUID, baseID, upgradedID int) int {
	slots := d.decks[actor]
	n := 0
	for i, id := range slots {
		if id == baseID {
			slots[i] = upgradedID
			n++
		}
	}
	return n
}
