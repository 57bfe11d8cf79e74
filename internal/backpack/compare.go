package backpack

import (
	"cmp"
	"strings"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

// compareFunc returns a negative number when a orders before b, zero when
// they are equal under the ordering, and a positive number otherwise.
type compareFunc func(a, b types.Item) int

// Strings compare byte-wise on their normalized form.

func compareByName(a, b types.Item) int {
	return strings.Compare(a.Name, b.Name)
}

func compareByType(a, b types.Item) int {
	if c := strings.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	return compareByName(a, b)
}

// compareByPriority puts higher priorities first.
func compareByPriority(a, b types.Item) int {
	if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
		return c
	}
	return compareByName(a, b)
}

// comparatorFor returns the ordering for c, or false for an undefined criterion.
func comparatorFor(c types.Criterion) (compareFunc, bool) {
	switch c {
	case types.ByName:
		return compareByName, true
	case types.ByType:
		return compareByType, true
	case types.ByPriority:
		return compareByPriority, true
	default:
		return nil, false
	}
}
