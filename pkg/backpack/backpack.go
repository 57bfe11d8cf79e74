// Package backpack provides the public API for creating inventories.
// This package exposes the factory function while keeping the slot store,
// orderings and search internals unexported.
package backpack

import (
	"github.com/mesh-intelligence/backpack/internal/backpack"
	"github.com/mesh-intelligence/backpack/pkg/types"
)

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// New creates an empty, unsorted inventory with types.Capacity slots.
//
// Example:
//
//	inv := backpack.New()
//	if _, err := inv.Add("Medkit", "Heal", 3, 3); err != nil {
//	    return err
//	}
//	sorted, _ := inv.Sort(types.ByName)
//	found, err := inv.SearchBinary("medkit")
func New() types.Inventory {
	return backpack.New()
}
