package memory

import (
	"context"
	"sync"

	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/alchemorsel/pantry/internal/ports/outbound"
	"github.com/google/uuid"
)

// RecipeRepository is a mutex-guarded in-memory recipe store.
type RecipeRepository struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]outbound.RecipeRecord
}

// NewRecipeRepository creates an empty in-memory recipe store.
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{recipes: make(map[uuid.UUID]outbound.RecipeRecord)}
}

// Seed inserts recipes, assigning IDs where missing.
func (r *RecipeRepository) Seed(records ...outbound.RecipeRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range records {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		r.recipes[record.ID] = record
	}
}

// FindByID returns the recipe or pantry.ErrRecipeNotFound.
func (r *RecipeRepository) FindByID(_ context.Context, id uuid.UUID) (*outbound.RecipeRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.recipes[id]
	if !ok {
		return nil, pantry.ErrRecipeNotFound
	}
	return &record, nil
}
