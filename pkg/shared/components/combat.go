package components

import (
	"vcombat/pkg/shared/ecs"
)

// MeleeComponent holds a creature's current melee engagement
type MeleeComponent struct {
	TargetID       ecs.Entity
	Faction        int // 0: neutral, creatures only fight other factions
	IsAggressive   bool
	Cooldown       float64 // Seconds until the next attack
	LastAttackTime float64 // Simulation seconds
	LastToolID     string
	MoveTimer      float64 // Seconds until the next step
}

// InMeleeRange reports whether two cells touch, diagonals included.
func InMeleeRange(a, b TransformComponent) bool {
	return a.Cell().IsAdjacent(b.Cell())
}
