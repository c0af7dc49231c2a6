package ecs

import (
	"fmt"
	"slices"

	"github.com/milk9111/trees/ecs/component"
)

// Filter selects the entities a rule reacts to.
type Filter func(w *World, e Entity) bool

// RuleID identifies a registered rule.
type RuleID int

type rule struct {
	id     RuleID
	name   string
	watch  []component.ComponentID
	filter Filter
	ready  func(w *World, e Entity) bool
	run    func(w *World, e Entity) error
	fired  map[Entity]struct{}
}

// OnSet2 registers a reaction that runs once per entity, synchronously, the
// first time the entity is created or has kind a or b set while both kinds
// resolve and filter matches. fn receives the entity's own copies of both
// attributes; writes through them are visible as soon as fn returns and do
// not retrigger any rule.
func OnSet2[A, B any](w *World, name string, filter Filter, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) RuleID {
	r := &rule{
		id:     RuleID(len(w.rules) + 1),
		name:   name,
		watch:  []component.ComponentID{ka.ID(), kb.ID()},
		filter: filter,
		fired:  make(map[Entity]struct{}),
		ready: func(w *World, e Entity) bool {
			_, okA := Resolve(w, e, ka)
			_, okB := Resolve(w, e, kb)
			return okA && okB
		},
		run: func(w *World, e Entity) error {
			a, err := Override(w, e, ka)
			if err != nil {
				return err
			}
			b, err := Override(w, e, kb)
			if err != nil {
				return err
			}
			fn(e, a, b)
			return nil
		},
	}
	w.rules = append(w.rules, r)
	return r.id
}

// Fired reports whether rule id has run for e.
func (w *World) Fired(id RuleID, e Entity) bool {
	if w == nil || id <= 0 || int(id) > len(w.rules) {
		return false
	}
	_, ok := w.rules[id-1].fired[e]
	return ok
}

func (w *World) notifySet(e Entity, kind component.ComponentID) error {
	if _, ok := w.pending[e]; ok {
		return nil
	}
	for _, r := range w.rules {
		if !slices.Contains(r.watch, kind) {
			continue
		}
		if err := w.evaluate(r, e); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) notifyCreated(e Entity) error {
	for _, r := range w.rules {
		if err := w.evaluate(r, e); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) evaluate(r *rule, e Entity) error {
	if w.IsPrototype(e) {
		return nil
	}
	if _, ok := r.fired[e]; ok {
		return nil
	}
	if !r.ready(w, e) {
		return nil
	}
	if r.filter != nil && !r.filter(w, e) {
		return nil
	}
	r.fired[e] = struct{}{}
	if err := r.run(w, e); err != nil {
		return fmt.Errorf("rule %q on %s: %w", r.name, e, err)
	}
	w.events.Push(Event{Type: EventRuleFired, Data: RuleFiredEvent{Rule: r.name, Entity: e}})
	return nil
}

// HasShared matches entities that own or inherit kind.
func HasShared[T any](kind component.ComponentKind[T]) Filter {
	return func(w *World, e Entity) bool {
		_, ok := Resolve(w, e, kind)
		return ok
	}
}

// ParentIsA matches parts whose composite is, or templates, one of roots.
func ParentIsA(roots ...Entity) Filter {
	return func(w *World, e Entity) bool {
		parent, ok := w.Parent(e)
		if !ok {
			return false
		}
		for _, root := range roots {
			if w.IsA(parent, root) {
				return true
			}
		}
		return false
	}
}

// All matches when every filter matches.
func All(filters ...Filter) Filter {
	return func(w *World, e Entity) bool {
		for _, f := range filters {
			if f != nil && !f(w, e) {
				return false
			}
		}
		return true
	}
}
