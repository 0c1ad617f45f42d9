package systems

import (
	"go.uber.org/zap"

	"vcombat/pkg/shared/components"
	"vcombat/pkg/shared/config"
	"vcombat/pkg/shared/ecs"
)

// AISystem picks melee targets: aggressive creatures go for the closest living
// creature of another faction in sight, and drop targets that died or left.
type AISystem struct {
	World *ecs.World
	log   *zap.Logger
}

func NewAISystem(world *ecs.World, logger *zap.Logger) *AISystem {
	return &AISystem{
		World: world,
		log:   logger,
	}
}

func (s *AISystem) Update(dt float64) {
	for _, id := range ecs.Query[components.MeleeComponent](s.World) {
		mc, _ := ecs.GetComponent[components.MeleeComponent](s.World, id)
		if !Alive(s.World, id) {
			continue
		}

		if mc.TargetID != 0 && !Alive(s.World, mc.TargetID) {
			s.log.Debug("target lost", zap.Uint64("entity", uint64(id)), zap.Uint64("target", uint64(mc.TargetID)))
			mc.TargetID = 0
		}
		if mc.TargetID == 0 && mc.IsAggressive {
			if target, ok := s.closestEnemy(id, mc.Faction); ok {
				s.log.Debug("target acquired", zap.Uint64("entity", uint64(id)), zap.Uint64("target", uint64(target)))
				mc.TargetID = target
			}
		}
		s.World.AddComponent(id, *mc)
	}
}

func (s *AISystem) closestEnemy(self ecs.Entity, faction int) (ecs.Entity, bool) {
	tr, ok := ecs.GetComponent[components.TransformComponent](s.World, self)
	if !ok {
		return 0, false
	}

	var best ecs.Entity
	bestDist := config.SightRangeCells + 1
	for _, other := range ecs.Query[components.MeleeComponent](s.World) {
		if other == self || !Alive(s.World, other) {
			continue
		}
		omc, _ := ecs.GetComponent[components.MeleeComponent](s.World, other)
		if omc.Faction == faction {
			continue
		}
		otr, ok := ecs.GetComponent[components.TransformComponent](s.World, other)
		if !ok {
			continue
		}
		if d := CellDistance(*tr, *otr); d < bestDist {
			best, bestDist = other, d
		}
	}
	return best, best != 0
}

// CellDistance is the number of king moves between two cells.
func CellDistance(a, b components.TransformComponent) int {
	return max(abs(a.X-b.X), abs(a.Z-b.Z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Alive reports whether e is a creature that has not died.
func Alive(w *ecs.World, e ecs.Entity) bool {
	if !ecs.Has[components.CreatureComponent](w, e) {
		return false
	}
	h, ok := ecs.GetComponent[components.HealthComponent](w, e)
	return !ok || !h.Dead
}
