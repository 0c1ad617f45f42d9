package races

import "vcombat/pkg/tools"

func init() {
	// Humans fight with fists and a headbutt
	Register(RaceDefinition{
		ID:          "human",
		Name:        "Human",
		Description: "A baseline human.",
		Body:        HumanoidBody(),
		BodyHeight:  1.0,
		BodySize:    1.0,
		Humanlike:   true,
		Flesh:       true,
		Tools: []*tools.Tool{
			{ID: "left_fist", Label: "left fist", Capacities: []string{"Blunt"}, Power: 2, Cooldown: 2, LinkedGroup: "LeftHand", ArmorPenetrationBlunt: 0.5},
			{ID: "right_fist", Label: "right fist", Capacities: []string{"Blunt"}, Power: 2, Cooldown: 2, LinkedGroup: "RightHand", ArmorPenetrationBlunt: 0.5},
			{ID: "head", Label: "head", Capacities: []string{"Blunt"}, Power: 5, Cooldown: 4.5, LinkedGroup: "HeadAttackTool",
				EnsureAlwaysUsable: true, ChanceFactor: 0.2, ArmorPenetrationBlunt: 1.25},
		},
		MeleeHitChance: 0.75,
		DodgeChance:    0.05,
	})

	// Wolves bite and claw; their bite reaches down at low prey
	Register(RaceDefinition{
		ID:          "wolf",
		Name:        "Timber wolf",
		Description: "A pack predator.",
		Body:        QuadrupedBody(),
		BodyHeight:  0.6,
		BodySize:    0.85,
		Animal:      true,
		Predator:    true,
		Flesh:       true,
		Tools: []*tools.Tool{
			{ID: "left_claw", Label: "left claw", Capacities: []string{"Scratch"}, Power: 7, Cooldown: 1.5, LinkedGroup: "FrontLeftPaw", ArmorPenetrationSharp: 0.1},
			{ID: "right_claw", Label: "right claw", Capacities: []string{"Scratch"}, Power: 7, Cooldown: 1.5, LinkedGroup: "FrontRightPaw", ArmorPenetrationSharp: 0.1},
			{ID: "teeth", Label: "teeth", Capacities: []string{"Bite"}, Power: 12, Cooldown: 2, LinkedGroup: "Teeth", ArmorPenetrationSharp: 0.25,
				ExtraDamages: []tools.ExtraDamage{{Def: "Stun", Amount: 2, Chance: 0.1}}},
			{ID: "head", Label: "head", Capacities: []string{"Blunt"}, Power: 4, Cooldown: 2, LinkedGroup: "HeadAttackTool",
				EnsureAlwaysUsable: true, ChanceFactor: 0.2},
		},
		MeleeHitChance: 0.7,
		DodgeChance:    0.1,
	})

	Register(RaceDefinition{
		ID:          "rabbit",
		Name:        "Snowhare",
		Description: "Small and quick.",
		Body:        QuadrupedBody(),
		BodyHeight:  0.25,
		BodySize:    0.2,
		Animal:      true,
		Flesh:       true,
		Tools: []*tools.Tool{
			{ID: "left_claw", Label: "left claw", Capacities: []string{"Scratch"}, Power: 2, Cooldown: 1.5, LinkedGroup: "FrontLeftPaw"},
			{ID: "teeth", Label: "teeth", Capacities: []string{"Bite"}, Power: 3, Cooldown: 2, LinkedGroup: "Teeth"},
			{ID: "head", Label: "head", Capacities: []string{"Blunt"}, Power: 2, Cooldown: 2, LinkedGroup: "HeadAttackTool",
				EnsureAlwaysUsable: true, ChanceFactor: 0.2},
		},
		DodgeChance: 0.25,
	})
}
