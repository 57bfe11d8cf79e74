package types

import (
	"fmt"
	"strings"
)

// SortState records which criterion, if any, currently orders the
// occupied slots. Any state other than Unsorted also guarantees the
// occupied slots form a compact prefix starting at index 0.
type SortState int

// Sort states. Unsorted is the zero value and the initial state.
const (
	Unsorted SortState = iota
	SortedByName
	SortedByType
	SortedByPriority
)

// String returns the listing label for the state.
func (s SortState) String() string {
	switch s {
	case SortedByName:
		return "sorted (name)"
	case SortedByType:
		return "sorted (type)"
	case SortedByPriority:
		return "sorted (priority)"
	default:
		return "unsorted"
	}
}

// MarshalText lets the state appear as its label in JSON and YAML output.
func (s SortState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Criterion selects one of the three orderings a backpack can be sorted by.
type Criterion int

// Sort criteria. Values start at 1 to match the menu numbering.
const (
	ByName Criterion = iota + 1
	ByType
	ByPriority
)

// String returns the lowercase criterion name.
func (c Criterion) String() string {
	switch c {
	case ByName:
		return "name"
	case ByType:
		return "type"
	case ByPriority:
		return "priority"
	default:
		return fmt.Sprintf("criterion(%d)", int(c))
	}
}

// MarshalText encodes the criterion by name.
func (c Criterion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Valid reports whether c is one of the defined criteria.
func (c Criterion) Valid() bool {
	return c >= ByName && c <= ByPriority
}

// State returns the SortState a successful sort by c leaves behind.
// Invalid criteria map to Unsorted.
func (c Criterion) State() SortState {
	switch c {
	case ByName:
		return SortedByName
	case ByType:
		return SortedByType
	case ByPriority:
		return SortedByPriority
	default:
		return Unsorted
	}
}

// ParseCriterion accepts a criterion name or its menu number, case-insensitive.
// Returns ErrUnknownCriterion for anything else.
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "1":
		return ByName, nil
	case "type", "2":
		return ByType, nil
	case "priority", "3":
		return ByPriority, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCriterion, s)
	}
}
