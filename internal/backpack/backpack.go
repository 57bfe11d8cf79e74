package backpack

import (
	"iter"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

// Backpack is the inventory controller. It owns the slot store and the
// sort state, and updates both together in every mutating operation.
// A Backpack is not safe for concurrent use.
type Backpack struct {
	store slotStore
	state types.SortState
}

var _ types.Inventory = (*Backpack)(nil)

// New returns an empty, unsorted backpack.
func New() *Backpack {
	return &Backpack{}
}

// Add validates the item, stores it in the lowest-index empty slot and
// marks the backpack unsorted.
func (b *Backpack) Add(name, itemType string, quantity, priority int) (types.Added, error) {
	idx, err := b.store.findFree()
	if err != nil {
		return types.Added{}, err
	}
	item, err := types.NewItem(name, itemType, quantity, priority)
	if err != nil {
		return types.Added{}, err
	}
	b.store.place(idx, item)
	b.state = types.Unsorted
	return types.Added{Item: item, Slot: idx}, nil
}

// Remove deletes the first item whose name matches and marks the backpack
// unsorted. The gap stays until the next sort.
func (b *Backpack) Remove(name string) (types.Removed, error) {
	if b.store.occupied == 0 {
		return types.Removed{}, types.ErrEmpty
	}
	idx, ok := sequentialSearch(&b.store, name)
	if !ok {
		return types.Removed{}, types.ErrNotFound
	}
	item := b.store.vacate(idx)
	b.state = types.Unsorted
	return types.Removed{Name: item.Name, Slot: idx}, nil
}

// List returns the occupied items in slot order.
func (b *Backpack) List() types.Listing {
	return types.Listing{
		State:    b.state,
		Count:    b.store.occupied,
		Capacity: types.Capacity,
		Items:    b.store.snapshot(),
	}
}

// All yields occupied slot indexes and items in ascending slot order.
func (b *Backpack) All() iter.Seq2[int, types.Item] {
	return b.store.all()
}

// Sort reorders the occupied items by criterion, packs them into the
// lowest slots and records the new sort state. With fewer than two items
// nothing is compared, but a lone item is still moved to slot 0 so the
// compact-prefix guarantee holds.
func (b *Backpack) Sort(criterion types.Criterion) (types.Sorted, error) {
	compare, ok := comparatorFor(criterion)
	if !ok {
		return types.Sorted{}, types.ErrNotSortable
	}

	items := b.store.snapshot()
	result := types.Sorted{Criterion: criterion, Trivial: len(items) <= 1}
	if !result.Trivial {
		result.Comparisons = insertionSort(items, compare)
	}
	b.store.install(items)
	b.state = criterion.State()
	return result, nil
}

// SearchSequential finds name by scanning every slot.
func (b *Backpack) SearchSequential(name string) (types.Found, error) {
	idx, ok := sequentialSearch(&b.store, name)
	if !ok {
		return types.Found{}, types.ErrNotFound
	}
	item, _ := b.store.at(idx)
	return types.Found{Item: item, Slot: idx}, nil
}

// SearchBinary finds name by bisection. The backpack must be sorted by
// name; no sequential fallback is attempted.
func (b *Backpack) SearchBinary(name string) (types.Found, error) {
	if b.state != types.SortedByName {
		return types.Found{}, types.ErrPreconditionViolated
	}
	idx, ok := binarySearch(&b.store, name)
	if !ok {
		return types.Found{}, types.ErrNotFound
	}
	item, _ := b.store.at(idx)
	return types.Found{Item: item, Slot: idx}, nil
}

// State returns the current sort state.
func (b *Backpack) State() types.SortState {
	return b.state
}

// Len returns the number of occupied slots.
func (b *Backpack) Len() int {
	return b.store.occupied
}
