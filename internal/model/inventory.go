package model

// InventoryItem is the contents of a dispenser slot: a medication name
// and how many doses remain.
type InventoryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Inventory maps every slot to its item, or nil when the slot is empty.
// It is persisted as a single document under KeyInventory, mirroring
// the one-document-per-concern layout of the web UI it replaces.
type Inventory map[Slot]*InventoryItem

// EmptyInventory returns an inventory with all 8 slots empty.
func EmptyInventory() Inventory {
	inv := make(Inventory, 8)
	for _, s := range Slots() {
		inv[s] = nil
	}
	return inv
}

// Normalize ensures every fixed slot is present and drops unknown keys,
// so a partially corrupted document still yields all 8 slots.
func (inv Inventory) Normalize() Inventory {
	out := EmptyInventory()
	for _, s := range Slots() {
		if item, ok := inv[s]; ok {
			out[s] = item
		}
	}
	return out
}

// FilledSlots returns the slots that currently hold an item, in
// display order.
func (inv Inventory) FilledSlots() []Slot {
	var filled []Slot
	for _, s := range Slots() {
		if inv[s] != nil {
			filled = append(filled, s)
		}
	}
	return filled
}
