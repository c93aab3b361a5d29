package pantry

import "errors"

// Domain errors for pantry operations

var (
	// Deduction and undo outcomes
	ErrNothingToDeduct = errors.New("no inventory quantities would change")
	ErrNothingToUndo   = errors.New("nothing to undo")

	// Confirm-use gate violations
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrNotOwner          = errors.New("only the recipe owner can confirm use")
	ErrItemMissing       = errors.New("required ingredient is not in the pantry")
	ErrInsufficientStock = errors.New("insufficient stock for required ingredient")
)
