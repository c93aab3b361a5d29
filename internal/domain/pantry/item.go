// Package pantry contains the core domain logic for the inventory
// ledger: matching recipe ingredients against a user's pantry, scoring
// recipe feasibility and planning reversible quantity deductions.
package pantry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is one pantry inventory record. Each item is owned by exactly
// one user; the core only reads and conditionally decrements it.
type Item struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Quantity  float64
	Unit      string
	Type      string
	UpdatedAt time.Time
}

// NameMatches reports whether the item's name and the given ingredient
// name overlap: equal, containing or contained, case-insensitively.
func (i Item) NameMatches(name string) bool {
	a := strings.ToLower(strings.TrimSpace(i.Name))
	b := strings.ToLower(strings.TrimSpace(name))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// findByName returns the first item whose name overlaps the ingredient
// name. Slice order decides ties; the slice is never reordered.
func findByName(items []Item, name string) *Item {
	for idx := range items {
		if items[idx].NameMatches(name) {
			return &items[idx]
		}
	}
	return nil
}
