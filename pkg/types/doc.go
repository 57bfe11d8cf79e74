// Package types defines the Inventory interface, the Item entity, sort
// criteria and states, and the standard error values for the backpack.
package types
