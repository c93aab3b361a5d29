// Package memory provides in-memory repository implementations used by
// tests and the database-less development mode. Writes follow the same
// all-or-nothing contract as the PostgreSQL adapters: batches validate
// every record before mutating anything.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/alchemorsel/pantry/internal/ports/outbound"
	"github.com/google/uuid"
)

// InventoryRepository is a mutex-guarded in-memory inventory store.
// Holding the lock for the whole of ConfirmTx gives the serializable
// semantics the port requires.
type InventoryRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*pantry.Item
	order []uuid.UUID
}

// NewInventoryRepository creates an empty in-memory inventory.
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{items: make(map[uuid.UUID]*pantry.Item)}
}

// Seed inserts items, assigning IDs where missing. Insertion order is
// the stable listing order.
func (r *InventoryRepository) Seed(items ...pantry.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		copied := item
		r.items[item.ID] = &copied
		r.order = append(r.order, item.ID)
	}
}

// Get returns a copy of one item.
func (r *InventoryRepository) Get(id uuid.UUID) (pantry.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return pantry.Item{}, false
	}
	return *item, true
}

// ListByOwner returns copies of the owner's items in insertion order.
func (r *InventoryRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]pantry.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(ownerID), nil
}

func (r *InventoryRepository) listLocked(ownerID uuid.UUID) []pantry.Item {
	var items []pantry.Item
	for _, id := range r.order {
		if item, ok := r.items[id]; ok && item.OwnerID == ownerID {
			items = append(items, *item)
		}
	}
	return items
}

// ApplyDeductions sets each record's NewQuantity, validating the whole
// batch before any quantity changes.
func (r *InventoryRepository) ApplyDeductions(_ context.Context, ownerID uuid.UUID, records []pantry.DeductionRecord) error {
	return r.applyBatch(ownerID, records, func(rec pantry.DeductionRecord) float64 {
		return rec.NewQuantity
	})
}

// RestoreQuantities re-applies each record's PreviousQuantity with the
// same batch validation.
func (r *InventoryRepository) RestoreQuantities(_ context.Context, ownerID uuid.UUID, records []pantry.DeductionRecord) error {
	return r.applyBatch(ownerID, records, func(rec pantry.DeductionRecord) float64 {
		return rec.PreviousQuantity
	})
}

func (r *InventoryRepository) applyBatch(ownerID uuid.UUID, records []pantry.DeductionRecord, quantity func(pantry.DeductionRecord) float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		item, ok := r.items[rec.ItemID]
		if !ok || item.OwnerID != ownerID {
			return fmt.Errorf("update item %s: item not found for owner", rec.ItemID)
		}
	}
	now := time.Now()
	for _, rec := range records {
		item := r.items[rec.ItemID]
		item.Quantity = quantity(rec)
		item.UpdatedAt = now
	}
	return nil
}

// ConfirmTx runs fn while holding the repository lock, then applies the
// staged updates only when fn succeeds.
func (r *InventoryRepository) ConfirmTx(_ context.Context, fn func(tx outbound.InventoryTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &inventoryTx{repo: r}
	if err := fn(tx); err != nil {
		return err
	}
	now := time.Now()
	for id, qty := range tx.staged {
		item := r.items[id]
		item.Quantity = qty
		item.UpdatedAt = now
	}
	return nil
}

// inventoryTx stages quantity updates so an aborted transaction leaves
// the store untouched.
type inventoryTx struct {
	repo   *InventoryRepository
	staged map[uuid.UUID]float64
}

func (t *inventoryTx) ItemsByOwner(_ context.Context, ownerID uuid.UUID) ([]pantry.Item, error) {
	return t.repo.listLocked(ownerID), nil
}

func (t *inventoryTx) UpdateQuantity(_ context.Context, itemID uuid.UUID, qty float64) error {
	if _, ok := t.repo.items[itemID]; !ok {
		return fmt.Errorf("update item %s: item not found", itemID)
	}
	if t.staged == nil {
		t.staged = make(map[uuid.UUID]float64)
	}
	t.staged[itemID] = qty
	return nil
}
