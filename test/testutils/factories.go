// Package testutils provides test data factories for the pantry tests.
package testutils

import (
	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// ItemFactory builds pantry items with deterministic randomness.
type ItemFactory struct {
	faker *gofakeit.Faker
}

// NewItemFactory creates a factory seeded for reproducible runs.
func NewItemFactory(seed int64) *ItemFactory {
	return &ItemFactory{faker: gofakeit.New(seed)}
}

// Item builds one pantry item for the owner, applying any overrides.
func (f *ItemFactory) Item(ownerID uuid.UUID, overrides ...func(*pantry.Item)) pantry.Item {
	item := pantry.Item{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Name:     f.faker.Vegetable(),
		Quantity: float64(f.faker.Number(1, 20)),
		Unit:     f.faker.RandomString([]string{"g", "kg", "ml", "cup", "piece"}),
		Type:     f.faker.RandomString([]string{"produce", "dairy", "spice", "staple"}),
	}
	for _, override := range overrides {
		override(&item)
	}
	return item
}

// Items builds n pantry items for the owner.
func (f *ItemFactory) Items(ownerID uuid.UUID, n int) []pantry.Item {
	items := make([]pantry.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, f.Item(ownerID))
	}
	return items
}

// WithName overrides the item name.
func WithName(name string) func(*pantry.Item) {
	return func(i *pantry.Item) { i.Name = name }
}

// WithQuantity overrides the item quantity and unit.
func WithQuantity(qty float64, unit string) func(*pantry.Item) {
	return func(i *pantry.Item) {
		i.Quantity = qty
		i.Unit = unit
	}
}
