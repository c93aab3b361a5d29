package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/alchemorsel/pantry/internal/domain/ingredient"
	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/alchemorsel/pantry/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecipeRepository reads the recipe header and ingredient list the
// deduction paths need.
type RecipeRepository struct {
	pool *pgxpool.Pool
}

// NewRecipeRepository creates a PostgreSQL recipe repository.
func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

// FindByID loads a recipe and its ingredients. Ingredient rows carry
// either a free-text line or structured name/quantity/unit columns.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*outbound.RecipeRecord, error) {
	record := &outbound.RecipeRecord{ID: id}
	err := r.pool.QueryRow(ctx,
		`SELECT owner_id, title FROM recipes WHERE id = $1`, id,
	).Scan(&record.OwnerID, &record.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pantry.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query recipe: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT line, name, quantity, unit
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line, name, unit string
			quantity         *float64
		)
		if err := rows.Scan(&line, &name, &quantity, &unit); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		if line != "" {
			record.Ingredients = append(record.Ingredients, ingredient.PlainText(line))
			continue
		}
		structured := ingredient.Structured{Name: name, Unit: unit}
		if quantity != nil {
			structured.Quantity = *quantity
		}
		record.Ingredients = append(record.Ingredients, structured)
	}
	return record, rows.Err()
}
