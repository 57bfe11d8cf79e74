package types

import (
	"strings"
	"unicode/utf8"
)

// Field limits. Longer values are truncated after normalization.
const (
	MaxNameLen = 49
	MaxTypeLen = 29
)

// Priority bounds. 5 is the most urgent.
const (
	MinPriority = 1
	MaxPriority = 5
)

// Item is one entry held in a backpack slot. Name and Type are stored in
// normalized form; the original casing is not retained.
type Item struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Priority int    `json:"priority" yaml:"priority"`
}

// NewItem validates quantity and priority and returns an Item with
// normalized name and type. Returns ErrInvalidQuantity when quantity is
// not positive and ErrInvalidPriority when priority is outside [1,5].
func NewItem(name, itemType string, quantity, priority int) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	if priority < MinPriority || priority > MaxPriority {
		return Item{}, ErrInvalidPriority
	}
	return Item{
		Name:     NormalizeName(name),
		Type:     truncate(Normalize(itemType), MaxTypeLen),
		Quantity: quantity,
		Priority: priority,
	}, nil
}

// Normalize cuts s at the first newline and lowercases the rest. Queries
// go through the same function so lookups are case-insensitive.
func Normalize(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

// NormalizeName normalizes s and applies the name length limit. Search
// queries use it so they compare against stored names on equal terms.
func NormalizeName(s string) string {
	return truncate(Normalize(s), MaxNameLen)
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
