package backpack

import (
	"strings"

	"github.com/mesh-intelligence/backpack/pkg/types"
)

// sequentialSearch scans every slot, empty ones included, and returns the
// first occupied index whose name equals the normalized query.
func sequentialSearch(s *slotStore, name string) (int, bool) {
	query := types.NormalizeName(name)
	for i := range s.slots {
		if s.slots[i].occupied && s.slots[i].item.Name == query {
			return i, true
		}
	}
	return -1, false
}

// binarySearch bisects the compact prefix 0..occupied-1. The caller must
// ensure the prefix is sorted by name.
func binarySearch(s *slotStore, name string) (int, bool) {
	query := types.NormalizeName(name)
	lo, hi := 0, s.occupied-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch c := strings.Compare(s.slots[mid].item.Name, query); {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1, false
}
