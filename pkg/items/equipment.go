package items

import (
	"github.com/pkg/errors"

	"vcombat/pkg/shared/components"
)

// Equip places an item in the slot its definition names.
// Returns the ID of the item it replaced, if any.
func Equip(eq *components.EquipmentComponent, itemID string) (string, error) {
	def, ok := Registry[itemID]
	if !ok {
		return "", errors.Errorf("item not defined: %s", itemID)
	}
	if def.EquipmentSlot < 0 || def.EquipmentSlot >= len(eq.Slots) {
		return "", errors.Errorf("item %s is not equippable", itemID)
	}

	slot := &eq.Slots[def.EquipmentSlot]
	previous := slot.ItemID
	slot.ItemID = itemID
	return previous, nil
}

// Unequip empties a slot and returns what was in it.
func Unequip(eq *components.EquipmentComponent, slotIndex int) (string, error) {
	if slotIndex < 0 || slotIndex >= len(eq.Slots) {
		return "", errors.New("invalid slot index")
	}
	previous := eq.Slots[slotIndex].ItemID
	eq.Slots[slotIndex].ItemID = ""
	return previous, nil
}

// Held returns the definition in a slot, false when it is empty or unknown.
func Held(eq *components.EquipmentComponent, slotIndex int) (ItemDefinition, bool) {
	if eq == nil || slotIndex < 0 || slotIndex >= len(eq.Slots) {
		return ItemDefinition{}, false
	}
	return Get(eq.Slots[slotIndex].ItemID)
}
