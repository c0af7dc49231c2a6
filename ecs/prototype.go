package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrCycle            = errors.New("ecs: relation would create a cycle")
	ErrUnknownPrototype = errors.New("ecs: unknown prototype")
	ErrComponentMissing = errors.New("ecs: component not set or inherited")
)

// CreatePrototype creates a template entity. Prototypes are skipped by
// ForEach, First and reactive rules, and should not be written after scene
// construction.
func CreatePrototype(w *World, setters ...Setter) (Entity, error) {
	e := CreateEntity(w)
	w.prototypes[e] = struct{}{}
	for _, s := range setters {
		if err := s(w, e); err != nil {
			DestroyEntity(w, e)
			return 0, fmt.Errorf("create prototype: %w", err)
		}
	}
	return e, nil
}

// IsPrototype reports whether e was created with CreatePrototype.
func (w *World) IsPrototype(e Entity) bool {
	if w == nil {
		return false
	}
	_, ok := w.prototypes[e]
	return ok
}

// SetTemplate makes e inherit every attribute it does not own from proto.
func (w *World) SetTemplate(e, proto Entity) error {
	if err := w.checkAlive(e); err != nil {
		return fmt.Errorf("set template: %w", err)
	}
	if !w.entities.isAlive(proto) {
		return fmt.Errorf("set template of %s to %s: %w", e, proto, ErrUnknownPrototype)
	}
	if w.IsA(proto, e) {
		return fmt.Errorf("set template of %s to %s: %w", e, proto, ErrCycle)
	}
	w.templates[e] = proto
	return nil
}

// Template returns the entity e inherits from.
func (w *World) Template(e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	proto, ok := w.templates[e]
	return proto, ok
}

// IsA reports whether proto is e or appears on e's template chain.
func (w *World) IsA(e, proto Entity) bool {
	if w == nil || !proto.Valid() {
		return false
	}
	for cur := e; cur.Valid(); cur = w.templates[cur] {
		if cur == proto {
			return true
		}
	}
	return false
}

// Instantiate creates a concrete entity templated on proto, applies setters
// as its own attributes, and instantiates every part of proto as a part of
// the new entity. Reactive rules run for each created entity, root first,
// once the whole composite exists. On any error no created entity survives.
func Instantiate(w *World, proto Entity, setters ...Setter) (Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("instantiate: nil world")
	}
	if !w.entities.isAlive(proto) {
		return 0, fmt.Errorf("instantiate %s: %w", proto, ErrUnknownPrototype)
	}

	var created []Entity
	rollback := func() {
		for i := len(created) - 1; i >= 0; i-- {
			DestroyEntity(w, created[i])
		}
	}

	root, err := w.instantiate(proto, 0, setters, &created)
	for _, e := range created {
		delete(w.pending, e)
	}
	if err != nil {
		rollback()
		return 0, err
	}

	for _, e := range created {
		if err := w.notifyCreated(e); err != nil {
			rollback()
			return 0, fmt.Errorf("instantiate %s: %w", proto, err)
		}
	}
	w.events.Push(Event{Type: EventInstantiated, Data: InstantiatedEvent{
		Root:      root,
		Prototype: proto,
		Parts:     append([]Entity(nil), created[1:]...),
	}})
	return root, nil
}

func (w *World) instantiate(proto, parent Entity, setters []Setter, created *[]Entity) (Entity, error) {
	e := CreateEntity(w)
	w.pending[e] = struct{}{}
	*created = append(*created, e)

	// e is fresh, so neither link can close a cycle.
	w.templates[e] = proto
	if parent.Valid() {
		w.parents[e] = parent
		w.parts[parent] = append(w.parts[parent], e)
	}

	for _, s := range setters {
		if err := s(w, e); err != nil {
			return 0, fmt.Errorf("instantiate %s: %w", proto, err)
		}
	}
	for _, part := range w.parts[proto] {
		if _, err := w.instantiate(part, e, nil, created); err != nil {
			return 0, err
		}
	}
	return e, nil
}
