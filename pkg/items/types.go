package items

import (
	"sort"

	"vcombat/pkg/tools"
)

type ItemType int

const (
	ItemTypeWeapon ItemType = iota
	ItemTypeShield
)

// ItemDefinition represents the static data for a held item.
type ItemDefinition struct {
	ID          string // Unique string ID e.g. "knife"
	Name        string
	Type        ItemType
	Description string

	// Weapon data
	Bulk      float64 // Length-ish measure that extends melee reach
	OneHanded bool
	Tools     []*tools.Tool

	// Shield data
	BlockChance float64 // Chance to block a parried attack outright

	// Equipment Data
	EquipmentSlot int // -1 if not equippable
}

var Registry = make(map[string]ItemDefinition)

// Register adds an item and binds its tools to it.
func Register(item ItemDefinition) {
	if _, exists := Registry[item.ID]; exists {
		panic("Duplicate item ID: " + item.ID)
	}
	BindTools(item)
	Registry[item.ID] = item
}

// BindTools points every tool of the item at one weapon owner record.
func BindTools(item ItemDefinition) {
	owner := &tools.Owner{DefName: item.ID, Bulk: item.Bulk, OneHanded: item.OneHanded}
	for _, t := range item.Tools {
		t.Bind(owner)
	}
}

func Get(id string) (ItemDefinition, bool) {
	item, ok := Registry[id]
	return item, ok
}

// All returns the registered items ordered by ID.
func All() []ItemDefinition {
	out := make([]ItemDefinition, 0, len(Registry))
	for _, it := range Registry {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
