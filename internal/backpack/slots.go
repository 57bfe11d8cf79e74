// Package backpack implements the fixed-capacity inventory: the slot
// store, the three item orderings, insertion sorting, sequential and
// binary search, and the controller that keeps the sort state in step
// with the slot contents.
package backpack

import (
	"iter"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

// slot is one storage position. An empty slot carries no item.
type slot struct {
	occupied bool
	item     types.Item
}

// slotStore owns all item data. occupied always equals the number of
// slots with occupied set.
type slotStore struct {
	slots    [types.Capacity]slot
	occupied int
}

// findFree returns the lowest-index empty slot, or ErrFull.
func (s *slotStore) findFree() (int, error) {
	if s.occupied >= types.Capacity {
		return -1, types.ErrFull
	}
	for i := range s.slots {
		if !s.slots[i].occupied {
			return i, nil
		}
	}
	return -1, types.ErrFull
}

// place stores item at index i. The slot must be empty.
func (s *slotStore) place(i int, item types.Item) {
	s.slots[i] = slot{occupied: true, item: item}
	s.occupied++
}

// vacate empties slot i and returns the item it held. Remaining items
// are not moved.
func (s *slotStore) vacate(i int) types.Item {
	item := s.slots[i].item
	s.slots[i] = slot{}
	s.occupied--
	return item
}

// at returns the item in slot i and whether the slot is occupied.
func (s *slotStore) at(i int) (types.Item, bool) {
	if i < 0 || i >= len(s.slots) {
		return types.Item{}, false
	}
	return s.slots[i].item, s.slots[i].occupied
}

// all yields occupied slots in ascending index order. Each call starts a
// fresh pass.
func (s *slotStore) all() iter.Seq2[int, types.Item] {
	return func(yield func(int, types.Item) bool) {
		for i := range s.slots {
			if !s.slots[i].occupied {
				continue
			}
			if !yield(i, s.slots[i].item) {
				return
			}
		}
	}
}

// snapshot copies the occupied items out in slot order.
func (s *slotStore) snapshot() []types.Item {
	items := make([]types.Item, 0, s.occupied)
	for _, item := range s.all() {
		items = append(items, item)
	}
	return items
}

// install replaces the store contents with items packed into slots
// 0..len(items)-1; every other slot is left empty.
func (s *slotStore) install(items []types.Item) {
	s.slots = [types.Capacity]slot{}
	for i, item := range items {
		s.slots[i] = slot{occupied: true, item: item}
	}
	s.occupied = len(items)
}
