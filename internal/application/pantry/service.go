// Package pantry provides the application layer for the inventory
// ledger use cases defined in the inbound ports.
package pantry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/alchemorsel/pantry/internal/domain/ingredient"
	"github.com/alchemorsel/pantry/internal/domain/measurement"
	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/alchemorsel/pantry/internal/ports/inbound"
	"github.com/alchemorsel/pantry/internal/ports/outbound"
	"github.com/alchemorsel/pantry/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeNoop    = "noop"
	outcomeDenied  = "denied"
)

// Service implements the pantry ledger use cases.
type Service struct {
	inventory outbound.InventoryRepository
	recipes   outbound.RecipeRepository
	cache     outbound.MatchCache
	matcher   *pantry.Matcher
	table     measurement.ConversionTable
	metrics   *Metrics
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewService creates a new pantry service. cache and metrics may be nil
// in reduced deployments.
func NewService(
	inventory outbound.InventoryRepository,
	recipes outbound.RecipeRepository,
	cache outbound.MatchCache,
	table measurement.ConversionTable,
	policy pantry.MatchPolicy,
	metrics *Metrics,
	cacheTTL time.Duration,
	logger *zap.Logger,
) inbound.PantryService {
	return &Service{
		inventory: inventory,
		recipes:   recipes,
		cache:     cache,
		matcher:   pantry.NewMatcher(table, policy),
		table:     table,
		metrics:   metrics,
		cacheTTL:  cacheTTL,
		logger:    logger.Named("pantry-service"),
	}
}

// MatchIngredient classifies pantry coverage for one ingredient line.
func (s *Service) MatchIngredient(ctx context.Context, ownerID uuid.UUID, line string) (pantry.Match, error) {
	items, err := s.inventory.ListByOwner(ctx, ownerID)
	if err != nil {
		return pantry.Match{}, errors.NewDatabaseError("list pantry items", err)
	}
	return s.matcher.Match(line, items), nil
}

// ScoreRecipe computes the weighted feasibility score for a recipe,
// consulting the per-owner match cache first.
func (s *Service) ScoreRecipe(ctx context.Context, ownerID uuid.UUID, lines []string) (pantry.RecipeMatch, error) {
	fp := fingerprint(lines)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, ownerID, fp); err != nil {
			s.logger.Debug("match cache read failed", zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	items, err := s.inventory.ListByOwner(ctx, ownerID)
	if err != nil {
		return pantry.RecipeMatch{}, errors.NewDatabaseError("list pantry items", err)
	}
	result := s.matcher.ScoreRecipe(lines, items)

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, fp, result, s.cacheTTL); err != nil {
			s.logger.Debug("match cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

// Cook plans the recipe's deductions against a fresh inventory snapshot
// and applies them in one atomic batch. The returned records are the
// caller's undo journal. A failed batch leaves the inventory and any
// existing journal untouched.
func (s *Service) Cook(ctx context.Context, ownerID uuid.UUID, lines []string) (inbound.CookResult, error) {
	items, err := s.inventory.ListByOwner(ctx, ownerID)
	if err != nil {
		s.metrics.recordCook(outcomeFailure)
		return inbound.CookResult{}, errors.NewDatabaseError("list pantry items", err)
	}

	records := pantry.PlanDeductions(lines, items, s.table)
	if len(records) == 0 {
		s.metrics.recordCook(outcomeNoop)
		return inbound.CookResult{}, errors.FromDomain(pantry.ErrNothingToDeduct)
	}

	start := time.Now()
	if err := s.inventory.ApplyDeductions(ctx, ownerID, records); err != nil {
		s.metrics.recordCook(outcomeFailure)
		return inbound.CookResult{}, errors.NewDatabaseError("apply deduction batch", err)
	}
	s.metrics.observeBatch(time.Since(start).Seconds())
	s.metrics.recordCook(outcomeSuccess)
	s.invalidateCache(ctx, ownerID)

	s.logger.Info("cooked recipe",
		zap.String("owner_id", ownerID.String()),
		zap.Int("ingredients", len(lines)),
		zap.Int("deducted", len(records)),
	)
	return inbound.CookResult{Deductions: records, DeductedCount: len(records)}, nil
}

// Undo restores the journaled quantities in one atomic batch and
// consumes the journal. When the restore fails the journal is put back
// so the caller can retry.
func (s *Service) Undo(ctx context.Context, ownerID uuid.UUID, journal *pantry.Journal) error {
	if journal == nil || journal.Empty() {
		s.metrics.recordUndo(outcomeNoop)
		return errors.FromDomain(pantry.ErrNothingToUndo)
	}

	records := journal.Take()
	if err := s.inventory.RestoreQuantities(ctx, ownerID, records); err != nil {
		journal.Replace(records)
		s.metrics.recordUndo(outcomeFailure)
		return errors.NewDatabaseError("restore quantity batch", err)
	}
	s.metrics.recordUndo(outcomeSuccess)
	s.invalidateCache(ctx, ownerID)

	s.logger.Info("undid last cook",
		zap.String("owner_id", ownerID.String()),
		zap.Int("restored", len(records)),
	)
	return nil
}

// ConfirmUse permanently deducts a recipe's ingredients inside one
// serializable transaction. Matching is by exact case-insensitive name
// and quantities compare at face value; the unit table is deliberately
// not consulted on this path. Any gate violation aborts with zero
// writes applied.
func (s *Service) ConfirmUse(ctx context.Context, recipeID, callerID uuid.UUID) error {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		s.metrics.recordConfirm(outcomeFailure)
		return errors.FromDomain(err)
	}
	if recipe.OwnerID != callerID {
		s.metrics.recordConfirm(outcomeDenied)
		return errors.NewNotOwnerError(recipeID.String()).WithCause(pantry.ErrNotOwner)
	}

	err = s.inventory.ConfirmTx(ctx, func(tx outbound.InventoryTx) error {
		items, err := tx.ItemsByOwner(ctx, callerID)
		if err != nil {
			return err
		}

		current := make(map[uuid.UUID]float64, len(items))
		for _, item := range items {
			current[item.ID] = item.Quantity
		}

		for _, ing := range recipe.Ingredients {
			name, required := requiredIngredient(ing)
			item := findExact(items, name)
			if item == nil {
				return fmt.Errorf("%w: %s", pantry.ErrItemMissing, name)
			}
			have := current[item.ID]
			if have < required {
				return fmt.Errorf("%w: %s", pantry.ErrInsufficientStock, name)
			}
			next := have - required
			if next < 0 {
				next = 0
			}
			current[item.ID] = next
			if err := tx.UpdateQuantity(ctx, item.ID, next); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.recordConfirm(outcomeFailure)
		return errors.FromDomain(err)
	}
	s.metrics.recordConfirm(outcomeSuccess)
	s.invalidateCache(ctx, callerID)

	s.logger.Info("confirmed recipe use",
		zap.String("recipe_id", recipeID.String()),
		zap.String("owner_id", callerID.String()),
	)
	return nil
}

// requiredIngredient resolves the exact-match name and face-value
// quantity for one recipe ingredient. Quantity defaults to one for
// entries without an explicit quantity.
func requiredIngredient(line ingredient.Line) (string, float64) {
	if s, ok := line.(ingredient.Structured); ok {
		qty := s.Quantity
		if qty <= 0 {
			qty = 1
		}
		return strings.TrimSpace(s.Name), qty
	}
	parsed := ingredient.Parse(line.Line())
	return parsed.Name, parsed.Quantity
}

// findExact returns the first item whose name equals the ingredient
// name case-insensitively.
func findExact(items []pantry.Item, name string) *pantry.Item {
	for i := range items {
		if strings.EqualFold(strings.TrimSpace(items[i].Name), name) {
			return &items[i]
		}
	}
	return nil
}

func (s *Service) invalidateCache(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOwner(ctx, ownerID); err != nil {
		s.logger.Warn("match cache invalidation failed",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
	}
}

// fingerprint derives the cache key for a recipe's ingredient lines.
func fingerprint(lines []string) string {
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}
