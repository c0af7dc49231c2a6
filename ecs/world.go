package ecs

import (
	"fmt"

	"github.com/milk9111/trees/ecs/component"
)

// World owns entities, their attributes, the prototype graph, reactive rules
// and the system order. It is not safe for concurrent use.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler Scheduler
	events    EventQueue
	clock     FrameTime

	prototypes map[Entity]struct{}
	templates  map[Entity]Entity
	parents    map[Entity]Entity
	parts      map[Entity][]Entity

	rules   []*rule
	pending map[Entity]struct{}
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:     make(map[component.ComponentID]*SparseSet),
		clock:      FrameTime{TimeScale: 1},
		prototypes: make(map[Entity]struct{}),
		templates:  make(map[Entity]Entity),
		parents:    make(map[Entity]Entity),
		parts:      make(map[Entity][]Entity),
		pending:    make(map[Entity]struct{}),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity, its attributes and its relations. Parts
// of a destroyed composite are detached, not destroyed.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	id := int(e.id())
	for _, set := range w.stores {
		set.Remove(id)
	}
	if parent, ok := w.parents[e]; ok {
		w.detach(parent, e)
	}
	for _, part := range w.parts[e] {
		delete(w.parents, part)
	}
	delete(w.parts, e)
	delete(w.templates, e)
	delete(w.prototypes, e)
	delete(w.pending, e)
	for _, r := range w.rules {
		delete(r.fired, e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// Entities returns all live entities in creation slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs all systems once without advancing the clock.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.scheduler.Update(w)
	w.events.flush()
}

// Progress advances the frame clock by dt real seconds and runs all systems.
func (w *World) Progress(dt float64) {
	if w == nil {
		return
	}
	w.clock.advance(dt)
	w.Update()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID) *SparseSet {
	set, ok := w.stores[id]
	if !ok {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}

func (w *World) checkAlive(e Entity) error {
	if !w.entities.isAlive(e) {
		return fmt.Errorf("entity %s: %w", e, component.ErrEntityNotAlive)
	}
	return nil
}
