package types

import "errors"

// Capacity is the fixed number of slots in a backpack.
const Capacity = 10

// Inventory defines the operations the terminal interface drives.
// Implementations are single-owner and not safe for concurrent use.
type Inventory interface {
	// Add stores a new item in the lowest-index empty slot and resets the
	// sort state to Unsorted. Returns ErrFull, ErrInvalidQuantity or
	// ErrInvalidPriority without mutating anything on failure.
	Add(name, itemType string, quantity, priority int) (Added, error)

	// Remove deletes the item whose normalized name equals the normalized
	// argument. Returns ErrEmpty when nothing is stored and ErrNotFound on
	// a miss. The vacated slot is not compacted.
	Remove(name string) (Removed, error)

	// List returns occupied items in slot order with the current state.
	List() Listing

	// Sort reorders the occupied items by criterion into a compact prefix
	// and sets the matching sort state. Returns ErrNotSortable for an
	// undefined criterion.
	Sort(criterion Criterion) (Sorted, error)

	// SearchSequential scans every slot for name. Valid in any state.
	SearchSequential(name string) (Found, error)

	// SearchBinary looks name up by bisection. Returns
	// ErrPreconditionViolated unless the state is SortedByName.
	SearchBinary(name string) (Found, error)

	// State returns the current sort state.
	State() SortState

	// Len returns the number of occupied slots.
	Len() int
}

// Added reports a successful Add.
type Added struct {
	Item Item `json:"item" yaml:"item"`
	Slot int  `json:"slot" yaml:"slot"`
}

// Removed reports a successful Remove.
type Removed struct {
	Name string `json:"name" yaml:"name"`
	Slot int    `json:"slot" yaml:"slot"`
}

// Listing is the result of List. Items are in slot order.
type Listing struct {
	State    SortState `json:"state" yaml:"state"`
	Count    int       `json:"count" yaml:"count"`
	Capacity int       `json:"capacity" yaml:"capacity"`
	Items    []Item    `json:"items" yaml:"items"`
}

// Sorted reports a successful Sort. Comparisons counts every probe the
// insertion sort made; Trivial is set when 0 or 1 items were present.
type Sorted struct {
	Criterion   Criterion `json:"criterion" yaml:"criterion"`
	Comparisons int       `json:"comparisons" yaml:"comparisons"`
	Trivial     bool      `json:"trivial" yaml:"trivial"`
}

// Found reports a search hit.
type Found struct {
	Item Item `json:"item" yaml:"item"`
	Slot int  `json:"slot" yaml:"slot"`
}

// Inventory operation errors.
var (
	ErrFull                 = errors.New("backpack is full")
	ErrEmpty                = errors.New("backpack is empty")
	ErrNotFound             = errors.New("item not found")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrInvalidPriority      = errors.New("priority must be an integer from 1 to 5")
	ErrPreconditionViolated = errors.New("binary search requires the backpack sorted by name")
	ErrNotSortable          = errors.New("backpack cannot be sorted by that criterion")
	ErrUnknownCriterion     = errors.New("unknown sort criterion")
)
