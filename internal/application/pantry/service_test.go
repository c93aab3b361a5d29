package pantry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alchemorsel/pantry/internal/domain/ingredient"
	"github.com/alchemorsel/pantry/internal/domain/measurement"
	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/alchemorsel/pantry/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/pantry/internal/ports/inbound"
	"github.com/alchemorsel/pantry/internal/ports/outbound"
	apperrors "github.com/alchemorsel/pantry/pkg/errors"
	"github.com/alchemorsel/pantry/test/testutils"
)

type fixture struct {
	service   inbound.PantryService
	inventory *memory.InventoryRepository
	recipes   *memory.RecipeRepository
	cache     *fakeCache
	factory   *testutils.ItemFactory
	owner     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	inventory := memory.NewInventoryRepository()
	recipes := memory.NewRecipeRepository()
	cache := newFakeCache()
	service := NewService(
		inventory,
		recipes,
		cache,
		measurement.DefaultTable(),
		pantry.DefaultMatchPolicy(),
		nil,
		time.Minute,
		zap.NewNop(),
	)
	return &fixture{
		service:   service,
		inventory: inventory,
		recipes:   recipes,
		cache:     cache,
		factory:   testutils.NewItemFactory(42),
		owner:     uuid.New(),
	}
}

// fakeCache is an in-process MatchCache with hit counting.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]pantry.RecipeMatch
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]pantry.RecipeMatch)}
}

func (c *fakeCache) key(ownerID uuid.UUID, fp string) string {
	return ownerID.String() + ":" + fp
}

func (c *fakeCache) Get(_ context.Context, ownerID uuid.UUID, fp string) (*pantry.RecipeMatch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if result, ok := c.entries[c.key(ownerID, fp)]; ok {
		c.hits++
		return &result, nil
	}
	return nil, nil
}

func (c *fakeCache) Set(_ context.Context, ownerID uuid.UUID, fp string, result pantry.RecipeMatch, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(ownerID, fp)] = result
	return nil
}

func (c *fakeCache) InvalidateOwner(_ context.Context, ownerID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := ownerID.String() + ":"
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
	return nil
}

// failingInventory wraps the in-memory repository and fails batch writes.
type failingInventory struct {
	*memory.InventoryRepository
	batchErr error
}

func (f *failingInventory) ApplyDeductions(context.Context, uuid.UUID, []pantry.DeductionRecord) error {
	return f.batchErr
}

func (f *failingInventory) RestoreQuantities(context.Context, uuid.UUID, []pantry.DeductionRecord) error {
	return f.batchErr
}

func TestMatchIngredient(t *testing.T) {
	f := newFixture(t)
	f.inventory.Seed(f.factory.Item(f.owner, testutils.WithName("flour"), testutils.WithQuantity(500, "g")))

	match, err := f.service.MatchIngredient(context.Background(), f.owner, "200 g flour")
	require.NoError(t, err)
	assert.Equal(t, pantry.MatchStatusFull, match.Status)
	assert.True(t, match.HasEnough)
}

func TestScoreRecipeUsesCache(t *testing.T) {
	f := newFixture(t)
	f.inventory.Seed(f.factory.Item(f.owner, testutils.WithName("flour"), testutils.WithQuantity(500, "g")))
	lines := []string{"200 g flour"}

	first, err := f.service.ScoreRecipe(context.Background(), f.owner, lines)
	require.NoError(t, err)
	assert.Equal(t, 100, first.Score)
	assert.Equal(t, 0, f.cache.hits)

	second, err := f.service.ScoreRecipe(context.Background(), f.owner, lines)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.cache.hits)
}

func TestCookDeductsAndReturnsJournal(t *testing.T) {
	f := newFixture(t)
	milk := f.factory.Item(f.owner, testutils.WithName("milk"), testutils.WithQuantity(1000, "ml"))
	f.inventory.Seed(milk)

	result, err := f.service.Cook(context.Background(), f.owner, []string{"2 cups milk"})
	require.NoError(t, err)
	require.Equal(t, 1, result.DeductedCount)
	assert.Equal(t, milk.ID, result.Deductions[0].ItemID)
	assert.InDelta(t, 520, result.Deductions[0].NewQuantity, 1e-9)

	got, _ := f.inventory.Get(milk.ID)
	assert.InDelta(t, 520, got.Quantity, 1e-9)
}

func TestCookInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	f.inventory.Seed(f.factory.Item(f.owner, testutils.WithName("milk"), testutils.WithQuantity(500, "ml")))
	lines := []string{"2 cups milk"}

	_, err := f.service.ScoreRecipe(context.Background(), f.owner, lines)
	require.NoError(t, err)

	_, err = f.service.Cook(context.Background(), f.owner, lines)
	require.NoError(t, err)

	// The cached score is gone, so the fresh inventory is consulted.
	rescored, err := f.service.ScoreRecipe(context.Background(), f.owner, lines)
	require.NoError(t, err)
	assert.Equal(t, 0, f.cache.hits)
	assert.Less(t, rescored.Score, 100)
}

func TestCookNothingToDeduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Cook(context.Background(), f.owner, []string{"2 cups milk"})
	assert.ErrorIs(t, err, pantry.ErrNothingToDeduct)
}

func TestCookBatchFailureLeavesInventoryUntouched(t *testing.T) {
	f := newFixture(t)
	milk := f.factory.Item(f.owner, testutils.WithName("milk"), testutils.WithQuantity(1000, "ml"))
	f.inventory.Seed(milk)

	broken := &failingInventory{InventoryRepository: f.inventory, batchErr: errors.New("connection reset")}
	service := NewService(broken, f.recipes, nil, measurement.DefaultTable(), pantry.DefaultMatchPolicy(), nil, time.Minute, zap.NewNop())

	_, err := service.Cook(context.Background(), f.owner, []string{"2 cups milk"})
	require.Error(t, err)

	got, _ := f.inventory.Get(milk.ID)
	assert.Equal(t, 1000.0, got.Quantity)
}

func TestCookThenUndoRestoresQuantities(t *testing.T) {
	f := newFixture(t)
	milk := f.factory.Item(f.owner, testutils.WithName("milk"), testutils.WithQuantity(1000, "ml"))
	flour := f.factory.Item(f.owner, testutils.WithName("flour"), testutils.WithQuantity(500, "g"))
	f.inventory.Seed(milk, flour)

	result, err := f.service.Cook(context.Background(), f.owner, []string{"2 cups milk", "200 g flour"})
	require.NoError(t, err)

	journal := pantry.NewJournal(result.Deductions)
	require.NoError(t, f.service.Undo(context.Background(), f.owner, &journal))
	assert.True(t, journal.Empty())

	gotMilk, _ := f.inventory.Get(milk.ID)
	gotFlour, _ := f.inventory.Get(flour.ID)
	assert.Equal(t, 1000.0, gotMilk.Quantity)
	assert.Equal(t, 500.0, gotFlour.Quantity)
}

func TestUndoEmptyJournal(t *testing.T) {
	f := newFixture(t)

	var journal pantry.Journal
	assert.ErrorIs(t, f.service.Undo(context.Background(), f.owner, &journal), pantry.ErrNothingToUndo)
	assert.ErrorIs(t, f.service.Undo(context.Background(), f.owner, nil), pantry.ErrNothingToUndo)
}

func TestUndoFailureKeepsJournalForRetry(t *testing.T) {
	f := newFixture(t)
	broken := &failingInventory{InventoryRepository: f.inventory, batchErr: errors.New("connection reset")}
	service := NewService(broken, f.recipes, nil, measurement.DefaultTable(), pantry.DefaultMatchPolicy(), nil, time.Minute, zap.NewNop())

	journal := pantry.NewJournal([]pantry.DeductionRecord{
		{ItemID: uuid.New(), PreviousQuantity: 5, NewQuantity: 3},
	})
	require.Error(t, service.Undo(context.Background(), f.owner, &journal))
	assert.Equal(t, 1, journal.Len(), "records return to the journal on failure")
}

func seedRecipe(f *fixture, owner uuid.UUID, ingredients ...ingredient.Line) uuid.UUID {
	id := uuid.New()
	f.recipes.Seed(outbound.RecipeRecord{ID: id, OwnerID: owner, Title: "Test Recipe", Ingredients: ingredients})
	return id
}

func TestConfirmUseDeductsAtFaceValue(t *testing.T) {
	f := newFixture(t)
	flour := f.factory.Item(f.owner, testutils.WithName("Flour"), testutils.WithQuantity(5, "cup"))
	eggs := f.factory.Item(f.owner, testutils.WithName("eggs"), testutils.WithQuantity(6, "piece"))
	f.inventory.Seed(flour, eggs)

	recipeID := seedRecipe(f, f.owner,
		ingredient.Structured{Name: "flour", Quantity: 2, Unit: "cup"},
		ingredient.Structured{Name: "eggs", Quantity: 3},
	)
	require.NoError(t, f.service.ConfirmUse(context.Background(), recipeID, f.owner))

	gotFlour, _ := f.inventory.Get(flour.ID)
	gotEggs, _ := f.inventory.Get(eggs.ID)
	assert.Equal(t, 3.0, gotFlour.Quantity)
	assert.Equal(t, 3.0, gotEggs.Quantity)
}

func TestConfirmUseDefaultsQuantityToOne(t *testing.T) {
	f := newFixture(t)
	lemon := f.factory.Item(f.owner, testutils.WithName("lemon"), testutils.WithQuantity(2, "piece"))
	f.inventory.Seed(lemon)

	recipeID := seedRecipe(f, f.owner, ingredient.Structured{Name: "lemon"})
	require.NoError(t, f.service.ConfirmUse(context.Background(), recipeID, f.owner))

	got, _ := f.inventory.Get(lemon.ID)
	assert.Equal(t, 1.0, got.Quantity)
}

func TestConfirmUseRequiresExactName(t *testing.T) {
	f := newFixture(t)
	f.inventory.Seed(f.factory.Item(f.owner, testutils.WithName("cherry tomatoes"), testutils.WithQuantity(6, "piece")))

	// Containment is not enough on the strict path.
	recipeID := seedRecipe(f, f.owner, ingredient.Structured{Name: "tomatoes", Quantity: 2})
	err := f.service.ConfirmUse(context.Background(), recipeID, f.owner)
	assert.ErrorIs(t, err, pantry.ErrItemMissing)
}

func TestConfirmUseOwnershipGate(t *testing.T) {
	f := newFixture(t)
	stranger := uuid.New()
	flour := f.factory.Item(f.owner, testutils.WithName("flour"), testutils.WithQuantity(5, "cup"))
	f.inventory.Seed(flour)

	recipeID := seedRecipe(f, f.owner, ingredient.Structured{Name: "flour", Quantity: 2})
	err := f.service.ConfirmUse(context.Background(), recipeID, stranger)
	require.ErrorIs(t, err, pantry.ErrNotOwner)

	got, _ := f.inventory.Get(flour.ID)
	assert.Equal(t, 5.0, got.Quantity, "denied confirm must not touch the inventory")
}

func TestConfirmUseInsufficientStockAbortsAll(t *testing.T) {
	f := newFixture(t)
	flour := f.factory.Item(f.owner, testutils.WithName("flour"), testutils.WithQuantity(5, "cup"))
	eggs := f.factory.Item(f.owner, testutils.WithName("eggs"), testutils.WithQuantity(1, "piece"))
	f.inventory.Seed(flour, eggs)

	recipeID := seedRecipe(f, f.owner,
		ingredient.Structured{Name: "flour", Quantity: 2},
		ingredient.Structured{Name: "eggs", Quantity: 3},
	)
	err := f.service.ConfirmUse(context.Background(), recipeID, f.owner)
	require.ErrorIs(t, err, pantry.ErrInsufficientStock)

	gotFlour, _ := f.inventory.Get(flour.ID)
	assert.Equal(t, 5.0, gotFlour.Quantity, "earlier deductions roll back with the transaction")
}

func TestConfirmUseRecipeNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.service.ConfirmUse(context.Background(), uuid.New(), f.owner)
	require.ErrorIs(t, err, pantry.ErrRecipeNotFound)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode())
}

func TestConfirmUseRepeatedIngredientChains(t *testing.T) {
	f := newFixture(t)
	butter := f.factory.Item(f.owner, testutils.WithName("butter"), testutils.WithQuantity(3, "stick"))
	f.inventory.Seed(butter)

	recipeID := seedRecipe(f, f.owner,
		ingredient.Structured{Name: "butter", Quantity: 2},
		ingredient.Structured{Name: "butter", Quantity: 1},
	)
	require.NoError(t, f.service.ConfirmUse(context.Background(), recipeID, f.owner))

	got, _ := f.inventory.Get(butter.ID)
	assert.Equal(t, 0.0, got.Quantity)
}
