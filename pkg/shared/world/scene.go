package world

import (
	"vcombat/pkg/races"
	"vcombat/pkg/shared/components"
	"vcombat/pkg/shared/ecs"
	"vcombat/pkg/vertical"
)

// Scene answers vertical.Scene queries from the ECS. It indexes edifices
// (structures) by cell when built, so it must be rebuilt after structures are
// added, removed or change state.
type Scene struct {
	m     *Map
	w     *ecs.World
	cover map[vertical.Cell]ecs.Entity
}

func NewScene(m *Map, w *ecs.World) *Scene {
	s := &Scene{m: m, w: w, cover: make(map[vertical.Cell]ecs.Entity)}
	for _, e := range ecs.Query[components.StructureComponent](w) {
		tr, ok := ecs.GetComponent[components.TransformComponent](w, e)
		if !ok {
			continue
		}
		s.cover[tr.Cell()] = e
	}
	return s
}

func (s *Scene) InBounds(c vertical.Cell) bool {
	return s.m.InBounds(c)
}

func (s *Scene) CoverAt(c vertical.Cell) (vertical.Thing, bool) {
	e, ok := s.cover[c]
	if !ok {
		return vertical.Thing{}, false
	}
	return ThingOf(s.w, e)
}

// EntityAt returns the edifice standing in c.
func (s *Scene) EntityAt(c vertical.Cell) (ecs.Entity, bool) {
	e, ok := s.cover[c]
	return e, ok
}

// ThingOf builds the height view of e from its components. It reports false
// when e has nothing that takes up vertical space.
func ThingOf(w *ecs.World, e ecs.Entity) (vertical.Thing, bool) {
	t := vertical.Thing{ID: uint64(e)}

	if c, ok := ecs.GetComponent[components.CreatureComponent](w, e); ok {
		def, ok := races.Get(c.RaceID)
		if !ok {
			return t, false
		}
		t.Category = vertical.CategoryCreature
		t.BodyHeight = def.BodyHeight
		if p, ok := ecs.GetComponent[components.PostureComponent](w, e); ok {
			t.Crouching = p.Crouching
		}
		return t, true
	}
	if st, ok := ecs.GetComponent[components.StructureComponent](w, e); ok {
		t.Category = vertical.CategoryBuilding
		t.Fillage = st.Fillage
		t.FillPercent = st.FillPercent
		t.Door = st.Door
		t.DoorOpen = st.DoorOpen
		return t, true
	}
	if p, ok := ecs.GetComponent[components.PlantComponent](w, e); ok {
		t.Category = vertical.CategoryPlant
		t.PlantHeight = p.Height
		return t, true
	}
	if it, ok := ecs.GetComponent[components.ItemComponent](w, e); ok {
		t.Category = vertical.CategoryItem
		t.FillPercent = it.FillPercent
		return t, true
	}
	return t, false
}

// Profile computes the vertical profile of e where it stands.
func (s *Scene) Profile(e ecs.Entity) (vertical.Profile, bool) {
	t, ok := ThingOf(s.w, e)
	if !ok {
		return vertical.Profile{}, false
	}
	tr, ok := ecs.GetComponent[components.TransformComponent](s.w, e)
	if !ok {
		// Not spawned
		return vertical.Compute(nil, t, vertical.Cell{}), true
	}
	return vertical.Compute(s, t, tr.Cell()), true
}
