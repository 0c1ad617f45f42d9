package components

import (
	"vcombat/pkg/anatomy"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

// TransformComponent holds the cell an entity stands in
type TransformComponent struct {
	X, Z int
}

func (t TransformComponent) Cell() vertical.Cell {
	return vertical.Cell{X: t.X, Z: t.Z}
}

// CreatureComponent marks a living creature of a registered race
type CreatureComponent struct {
	RaceID string
	Name   string
	Gender tools.Gender
}

// PostureComponent holds how the creature currently stands
type PostureComponent struct {
	Crouching bool
	Downed    bool // Lying on the ground, cannot dodge or parry
}

// StructureComponent is a building: a wall, door or partial cover
type StructureComponent struct {
	Fillage     vertical.Fillage
	FillPercent float64
	Door        bool
	DoorOpen    bool
}

// PlantComponent is vegetation of a given visual height
type PlantComponent struct {
	Height float64
}

// ItemComponent is a loose object lying in a cell
type ItemComponent struct {
	DefID       string
	FillPercent float64
}

// HealthComponent tracks lost parts and damage taken per part.
// Fields are reference types so copies from the ECS share state.
type HealthComponent struct {
	Injuries *anatomy.State
	Damage   map[int]float64 // Part index -> total damage
	Stunned  float64         // Seconds of stun remaining
	Dead     bool
}

func NewHealth() HealthComponent {
	return HealthComponent{Injuries: anatomy.NewState(), Damage: make(map[int]float64)}
}

// Equipment Slots
const (
	SlotWeapon = 0
	SlotShield = 1
)

// EquipmentSlot represents a single held item
type EquipmentSlot struct {
	ItemID string
}

// EquipmentComponent holds held items
type EquipmentComponent struct {
	Slots [2]EquipmentSlot
}
