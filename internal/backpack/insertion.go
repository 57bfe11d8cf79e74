package backpack

import "github.com/mesh-intelligence/backpack/pkg/types"

// insertionSort orders items in place by compare and returns how many
// comparisons it made. A predecessor is shifted right only when it
// compares strictly greater than the key, so equal items keep their
// relative order.
func insertionSort(items []types.Item, compare compareFunc) int {
	comparisons := 0
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 {
			comparisons++
			if compare(items[j], key) <= 0 {
				break
			}
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
	return comparisons
}
