package systems

import (
	"vcombat/pkg/shared/components"
	"vcombat/pkg/shared/config"
	"vcombat/pkg/shared/ecs"
	"vcombat/pkg/shared/world"
	"vcombat/pkg/vertical"
)

// MovementSystem walks creatures one cell at a time towards their melee
// target until they stand next to it.
type MovementSystem struct {
	World *ecs.World
	Map   *world.Map
}

func NewMovementSystem(world *ecs.World, m *world.Map) *MovementSystem {
	return &MovementSystem{
		World: world,
		Map:   m,
	}
}

func (s *MovementSystem) Update(dt float64) {
	for _, id := range ecs.Query[components.MeleeComponent](s.World) {
		s.UpdateEntityMovement(id, dt)
	}
}

func (s *MovementSystem) UpdateEntityMovement(id ecs.Entity, dt float64) {
	mc, _ := ecs.GetComponent[components.MeleeComponent](s.World, id)
	transform, _ := ecs.GetComponent[components.TransformComponent](s.World, id)
	if mc == nil || transform == nil || mc.TargetID == 0 || !s.canMove(id) {
		return
	}
	target, ok := ecs.GetComponent[components.TransformComponent](s.World, mc.TargetID)
	if !ok || components.InMeleeRange(*transform, *target) {
		return
	}

	mc.MoveTimer -= dt
	if mc.MoveTimer > 0 {
		s.World.AddComponent(id, *mc)
		return
	}
	mc.MoveTimer = config.CreatureStepSeconds
	s.World.AddComponent(id, *mc)

	path := FindPath(s.Map, transform.Cell(), target.Cell(), s.blocked(id))
	if len(path) == 0 {
		return
	}
	transform.X, transform.Z = path[0].X, path[0].Z
	s.World.AddComponent(id, *transform)
}

func (s *MovementSystem) canMove(id ecs.Entity) bool {
	if !Alive(s.World, id) {
		return false
	}
	if p, ok := ecs.GetComponent[components.PostureComponent](s.World, id); ok && p.Downed {
		return false
	}
	if h, ok := ecs.GetComponent[components.HealthComponent](s.World, id); ok && h.Stunned > 0 {
		return false
	}
	return true
}

// blocked reports cells holding a wall, a closed door or another living
// creature.
func (s *MovementSystem) blocked(self ecs.Entity) func(vertical.Cell) bool {
	occupied := make(map[vertical.Cell]bool)
	for _, e := range ecs.Query[components.StructureComponent](s.World) {
		st, _ := ecs.GetComponent[components.StructureComponent](s.World, e)
		tr, ok := ecs.GetComponent[components.TransformComponent](s.World, e)
		if !ok {
			continue
		}
		if st.Fillage == vertical.FillFull && !(st.Door && st.DoorOpen) {
			occupied[tr.Cell()] = true
		}
	}
	for _, e := range ecs.Query[components.CreatureComponent](s.World) {
		if e == self || !Alive(s.World, e) {
			continue
		}
		if tr, ok := ecs.GetComponent[components.TransformComponent](s.World, e); ok {
			occupied[tr.Cell()] = true
		}
	}
	return func(c vertical.Cell) bool { return occupied[c] }
}
