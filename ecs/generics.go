package ecs

import (
	"fmt"

	"github.com/milk9111/trees/ecs/component"
)

// Add sets e's own value for kind and runs any reactive rule watching it.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if err := set(w, e, kind, value); err != nil {
		return err
	}
	return w.notifySet(e, kind.ID())
}

func set[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil {
		return fmt.Errorf("add %s: nil world", kind.ID())
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("add %s to %s: %w", kind.ID(), e, component.ErrNilComponent)
	}
	if err := w.checkAlive(e); err != nil {
		return fmt.Errorf("add %s: %w", kind.ID(), err)
	}
	w.store(kind.ID()).Set(int(e.id()), value)
	return nil
}

// Remove deletes e's own value for kind and reports whether it had one.
// Values inherited from a template are unaffected.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	set, ok := w.stores[kind.ID()]
	if !ok || !set.Has(int(e.id())) {
		return false
	}
	set.Remove(int(e.id()))
	return true
}

// Has reports whether e owns a value for kind. Inherited values do not count.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

// Get returns e's own value for kind.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	set, ok := w.stores[kind.ID()]
	if !ok {
		return nil, false
	}
	cast, ok := set.Get(int(e.id())).(*T)
	if !ok || cast == nil {
		return nil, false
	}
	return cast, true
}

// Resolve returns e's own value for kind, or the value of the nearest entity
// up its template chain. The returned pointer may belong to a prototype and
// must not be written; use Override for a writable copy.
func Resolve[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	for cur := e; cur.Valid(); cur = w.templates[cur] {
		if v, ok := Get(w, cur, kind); ok {
			return v, true
		}
	}
	return nil, false
}

// Override gives e its own copy of the resolved value for kind and returns
// it. It does not run reactive rules.
func Override[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, error) {
	if own, ok := Get(w, e, kind); ok {
		return own, nil
	}
	shared, ok := Resolve(w, e, kind)
	if !ok {
		return nil, fmt.Errorf("override %s on %s: %w", kind.ID(), e, ErrComponentMissing)
	}
	cp := *shared
	if err := set(w, e, kind, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Setter applies one attribute to a freshly created entity.
type Setter func(w *World, e Entity) error

// With returns a Setter that adds value under kind.
func With[T any](kind component.ComponentKind[T], value T) Setter {
	return func(w *World, e Entity) error {
		v := value
		return Add(w, e, kind, &v)
	}
}

// ForEach visits every non-prototype entity owning kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	set, ok := w.stores[kind.ID()]
	if !ok {
		return
	}
	ids := append([]int(nil), set.Entities()...)
	for _, id := range ids {
		e, ok := w.entities.handle(id)
		if !ok || w.IsPrototype(e) {
			continue
		}
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits every non-prototype entity owning both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, id := range IntersectEntities(w.stores[ka.ID()], w.stores[kb.ID()]) {
		e, ok := w.entities.handle(id)
		if !ok || w.IsPrototype(e) {
			continue
		}
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// First returns the lowest-slot non-prototype entity owning kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	set, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	var best Entity
	for _, id := range set.Entities() {
		e, ok := w.entities.handle(id)
		if !ok || w.IsPrototype(e) {
			continue
		}
		if !best.Valid() || e.id() < best.id() {
			best = e
		}
	}
	return best, best.Valid()
}
