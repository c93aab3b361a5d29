// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/alchemorsel/pantry/internal/domain/ingredient"
	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/google/uuid"
)

// InventoryRepository defines the persistence contract for pantry items.
// Write operations are all-or-nothing: a failed batch leaves every
// quantity unchanged.
type InventoryRepository interface {
	// ListByOwner returns the owner's items in stable insertion order.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]pantry.Item, error)

	// ApplyDeductions sets each record's NewQuantity in one atomic
	// batch, scoped to the owner. Any missing or foreign item aborts
	// the whole batch.
	ApplyDeductions(ctx context.Context, ownerID uuid.UUID, records []pantry.DeductionRecord) error

	// RestoreQuantities re-applies each record's PreviousQuantity in
	// one atomic batch, scoped to the owner.
	RestoreQuantities(ctx context.Context, ownerID uuid.UUID, records []pantry.DeductionRecord) error

	// ConfirmTx runs fn inside a serializable read-then-write
	// transaction. Returning an error from fn aborts every write.
	ConfirmTx(ctx context.Context, fn func(tx InventoryTx) error) error
}

// InventoryTx is the view of the inventory inside a serializable
// transaction.
type InventoryTx interface {
	ItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]pantry.Item, error)
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity float64) error
}

// RecipeRecord is the slice of a stored recipe the pantry core needs:
// identity, ownership and the ingredient list.
type RecipeRecord struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Ingredients []ingredient.Line
}

// RecipeRepository supplies recipes to the deduction paths.
type RecipeRepository interface {
	// FindByID returns pantry.ErrRecipeNotFound when no recipe exists.
	FindByID(ctx context.Context, id uuid.UUID) (*RecipeRecord, error)
}

// MatchCache caches recipe match results per owner. A nil result with a
// nil error is a cache miss.
type MatchCache interface {
	Get(ctx context.Context, ownerID uuid.UUID, fingerprint string) (*pantry.RecipeMatch, error)
	Set(ctx context.Context, ownerID uuid.UUID, fingerprint string, result pantry.RecipeMatch, ttl time.Duration) error

	// InvalidateOwner drops every cached result for the owner; called
	// after any inventory mutation.
	InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error
}
