package storage

import (
	"strings"

	"github.com/masonpham16/TalkDoc/internal/errors"
	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/validate"
)

// InventoryRepo provides operations on the single inventory document:
// a mapping of all 8 slots to item-or-empty.
type InventoryRepo struct {
	db *DB
}

// NewInventoryRepo creates a new inventory repository.
func NewInventoryRepo(db *DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// Load returns the whole inventory. A missing or malformed document
// yields all 8 slots empty.
func (r *InventoryRepo) Load() model.Inventory {
	inv := LoadDocument(r.db, model.KeyInventory, model.EmptyInventory())
	return inv.Normalize()
}

// Get returns the item in a slot, or nil when the slot is empty.
func (r *InventoryRepo) Get(slot model.Slot) (*model.InventoryItem, error) {
	if !slot.IsValid() {
		return nil, errors.ErrInvalidSlot
	}
	return r.Load()[slot], nil
}

// Set replaces a slot's contents. The item name must be non-empty
// after trimming and the quantity non-negative; on validation failure
// the stored document is left unchanged.
func (r *InventoryRepo) Set(slot model.Slot, item model.InventoryItem) error {
	if !slot.IsValid() {
		return errors.ErrInvalidSlot
	}
	if err := validate.ItemName(item.Name); err != nil {
		return err
	}
	if err := validate.Quantity(item.Quantity); err != nil {
		return err
	}

	item.Name = strings.TrimSpace(item.Name)

	inv := r.Load()
	inv[slot] = &item
	return SaveDocument(r.db, model.KeyInventory, inv)
}

// Clear empties a slot.
func (r *InventoryRepo) Clear(slot model.Slot) error {
	if !slot.IsValid() {
		return errors.ErrInvalidSlot
	}
	inv := r.Load()
	inv[slot] = nil
	return SaveDocument(r.db, model.KeyInventory, inv)
}
