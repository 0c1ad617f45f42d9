package items

import (
	"vcombat/pkg/shared/components"
	"vcombat/pkg/tools"
)

func init() {
	// One-handed
	Register(ItemDefinition{
		ID:          "knife",
		Name:        "Knife",
		Type:        ItemTypeWeapon,
		Description: "A short blade for close work.",
		Bulk:        1,
		OneHanded:   true,
		Tools: []*tools.Tool{
			{ID: "point", Label: "point", Capacities: []string{"Stab"}, Power: 9, Cooldown: 1.26, ArmorPenetrationSharp: 0.35},
			{ID: "edge", Label: "edge", Capacities: []string{"Cut"}, Power: 8, Cooldown: 1.26, ArmorPenetrationSharp: 0.25},
		},
		EquipmentSlot: components.SlotWeapon,
	})

	Register(ItemDefinition{
		ID:          "club",
		Name:        "Club",
		Type:        ItemTypeWeapon,
		Description: "A heavy stick.",
		Bulk:        3,
		OneHanded:   true,
		Tools: []*tools.Tool{
			{ID: "head", Label: "head", Capacities: []string{"Blunt"}, Power: 11, Cooldown: 2, ArmorPenetrationBlunt: 3,
				ExtraDamages: []tools.ExtraDamage{{Def: "Stun", Amount: 4, Chance: 0.2}}},
		},
		EquipmentSlot: components.SlotWeapon,
	})

	// Two-handed
	Register(ItemDefinition{
		ID:          "spear",
		Name:        "Spear",
		Type:        ItemTypeWeapon,
		Description: "Long enough to reach over low cover.",
		Bulk:        8,
		Tools: []*tools.Tool{
			{ID: "point", Label: "point", Capacities: []string{"Stab"}, Power: 20, Cooldown: 2.6, ArmorPenetrationSharp: 0.9},
			{ID: "shaft", Label: "shaft", Capacities: []string{"Blunt"}, Power: 8, Cooldown: 2.4, ArmorPenetrationBlunt: 1.5},
		},
		EquipmentSlot: components.SlotWeapon,
	})

	// Shields
	Register(ItemDefinition{
		ID:            "shield_wood",
		Name:          "Wooden shield",
		Type:          ItemTypeShield,
		Description:   "Blocks most parried blows.",
		BlockChance:   0.75,
		EquipmentSlot: components.SlotShield,
	})
}
