// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the application exposes to its callers
package inbound

import (
	"context"

	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/google/uuid"
)

// CookResult reports the outcome of an interactive cook action. The
// deduction records double as the caller-held undo journal.
type CookResult struct {
	Deductions    []pantry.DeductionRecord
	DeductedCount int
}

// PantryService exposes the pantry ledger use cases.
//
// Two deduction paths exist on purpose and must not be conflated:
// Cook is the interactive path with lenient containment matching, unit
// conversion with raw fallback, and a caller-held undo journal; it
// tolerates racing cooks (last writer wins at batch commit).
// ConfirmUse is the strict path for permanently confirming a recipe:
// exact-name matching, face-value quantities, serializable isolation
// and the ownership gate, with no undo.
type PantryService interface {
	// MatchIngredient classifies pantry coverage for one ingredient line.
	MatchIngredient(ctx context.Context, ownerID uuid.UUID, line string) (pantry.Match, error)

	// ScoreRecipe computes the weighted feasibility score for a recipe.
	ScoreRecipe(ctx context.Context, ownerID uuid.UUID, lines []string) (pantry.RecipeMatch, error)

	// Cook applies the recipe's deductions in one atomic batch and
	// returns the undo journal records. pantry.ErrNothingToDeduct is
	// returned instead of committing an empty batch.
	Cook(ctx context.Context, ownerID uuid.UUID, lines []string) (CookResult, error)

	// Undo restores the journaled quantities in one atomic batch and
	// consumes the journal. An empty journal yields
	// pantry.ErrNothingToUndo.
	Undo(ctx context.Context, ownerID uuid.UUID, journal *pantry.Journal) error

	// ConfirmUse permanently deducts a recipe's ingredients inside a
	// serializable transaction, enforcing ownership and sufficiency.
	ConfirmUse(ctx context.Context, recipeID, callerID uuid.UUID) error
}
