package postgres

import (
	"context"
	"fmt"

	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/alchemorsel/pantry/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// InventoryRepository is the PostgreSQL implementation of the inventory
// port. Batch writes run inside a transaction so a failed statement
// rolls back every quantity change.
type InventoryRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewInventoryRepository creates a PostgreSQL inventory repository.
func NewInventoryRepository(pool *pgxpool.Pool, logger *zap.Logger) *InventoryRepository {
	return &InventoryRepository{pool: pool, logger: logger.Named("inventory-repo")}
}

// ListByOwner returns the owner's items in insertion order.
func (r *InventoryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]pantry.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, name, quantity, unit, item_type, updated_at
		FROM pantry_items
		WHERE owner_id = $1
		ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query pantry items: %w", err)
	}
	defer rows.Close()

	var items []pantry.Item
	for rows.Next() {
		var item pantry.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Quantity, &item.Unit, &item.Type, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ApplyDeductions sets each record's NewQuantity in one transaction.
func (r *InventoryRepository) ApplyDeductions(ctx context.Context, ownerID uuid.UUID, records []pantry.DeductionRecord) error {
	return r.applyBatch(ctx, ownerID, records, func(rec pantry.DeductionRecord) float64 {
		return rec.NewQuantity
	})
}

// RestoreQuantities re-applies each record's PreviousQuantity in one
// transaction.
func (r *InventoryRepository) RestoreQuantities(ctx context.Context, ownerID uuid.UUID, records []pantry.DeductionRecord) error {
	return r.applyBatch(ctx, ownerID, records, func(rec pantry.DeductionRecord) float64 {
		return rec.PreviousQuantity
	})
}

// applyBatch updates every record's quantity inside a single
// transaction via a pgx batch. A missing or foreign row aborts the
// whole batch.
func (r *InventoryRepository) applyBatch(ctx context.Context, ownerID uuid.UUID, records []pantry.DeductionRecord, quantity func(pantry.DeductionRecord) float64) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin deduction batch: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(`
			UPDATE pantry_items
			SET quantity = $1, updated_at = now()
			WHERE id = $2 AND owner_id = $3`,
			quantity(rec), rec.ItemID, ownerID)
	}

	results := tx.SendBatch(ctx, batch)
	for _, rec := range records {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return fmt.Errorf("update item %s: %w", rec.ItemID, err)
		}
		if tag.RowsAffected() != 1 {
			results.Close()
			return fmt.Errorf("update item %s: item not found for owner", rec.ItemID)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close deduction batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit deduction batch: %w", err)
	}
	r.logger.Debug("applied quantity batch",
		zap.String("owner_id", ownerID.String()),
		zap.Int("items", len(records)),
	)
	return nil
}

// ConfirmTx runs fn inside a serializable transaction. Any error from
// fn rolls back every write.
func (r *InventoryRepository) ConfirmTx(ctx context.Context, fn func(tx outbound.InventoryTx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin serializable transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&inventoryTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit serializable transaction: %w", err)
	}
	return nil
}

// inventoryTx adapts a pgx transaction to the InventoryTx port.
type inventoryTx struct {
	tx pgx.Tx
}

func (t *inventoryTx) ItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]pantry.Item, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT id, owner_id, name, quantity, unit, item_type, updated_at
		FROM pantry_items
		WHERE owner_id = $1
		ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query pantry items: %w", err)
	}
	defer rows.Close()

	var items []pantry.Item
	for rows.Next() {
		var item pantry.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Quantity, &item.Unit, &item.Type, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (t *inventoryTx) UpdateQuantity(ctx context.Context, itemID uuid.UUID, qty float64) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE pantry_items
		SET quantity = $1, updated_at = now()
		WHERE id = $2`, qty, itemID)
	if err != nil {
		return fmt.Errorf("update item %s: %w", itemID, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("update item %s: item not found", itemID)
	}
	return nil
}
