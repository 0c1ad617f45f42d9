package ecs

import (
	"maps"
	"reflect"
	"slices"
)

// Entity identifies a creature, structure, plant or item in a scene. Zero is
// never issued.
type Entity uint64

// System runs once per simulation tick, in the order it was added.
type System interface {
	Update(dt float64)
}

type Component interface{}

// store holds every component of one concrete type, keyed by entity.
type store map[Entity]Component

// World is the scene's entity store. Components are kept by value; it is not
// safe for concurrent use, hosts serialise access (the bridge holds its mutex).
type World struct {
	last    Entity
	stores  map[reflect.Type]store
	systems []System
}

func NewWorld() *World {
	return &World{stores: make(map[reflect.Type]store)}
}

func (w *World) NewEntity() Entity {
	w.last++
	return w.last
}

// RemoveEntity drops every component of e.
func (w *World) RemoveEntity(e Entity) {
	for _, s := range w.stores {
		delete(s, e)
	}
}

// AddComponent sets e's component of c's dynamic type, replacing any previous one.
func (w *World) AddComponent(e Entity, c Component) {
	key := reflect.TypeOf(c)
	s, ok := w.stores[key]
	if !ok {
		s = make(store)
		w.stores[key] = s
	}
	s[e] = c
}

func (w *World) RemoveComponent(e Entity, c Component) {
	delete(w.stores[reflect.TypeOf(c)], e)
}

func storeOf[T Component](w *World) store {
	var zero T
	return w.stores[reflect.TypeOf(zero)]
}

// GetComponent returns a copy of e's T. Mutations must be written back with
// AddComponent.
func GetComponent[T Component](w *World, e Entity) (*T, bool) {
	v, ok := storeOf[T](w)[e]
	if !ok {
		return nil, false
	}
	c := v.(T)
	return &c, true
}

func Has[T Component](w *World, e Entity) bool {
	_, ok := storeOf[T](w)[e]
	return ok
}

func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
}

func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(dt)
	}
}

// Query lists the entities carrying a T in creation order, so a seeded
// simulation visits them the same way every run.
func Query[T Component](w *World) []Entity {
	return slices.Sorted(maps.Keys(storeOf[T](w)))
}
