package ecs

import "fmt"

// AttachPart makes child a part of parent. A child has at most one parent;
// attaching it again moves it.
func (w *World) AttachPart(parent, child Entity) error {
	if err := w.checkAlive(parent); err != nil {
		return fmt.Errorf("attach part: %w", err)
	}
	if err := w.checkAlive(child); err != nil {
		return fmt.Errorf("attach part: %w", err)
	}
	for cur := parent; cur.Valid(); cur = w.parents[cur] {
		if cur == child {
			return fmt.Errorf("attach %s under %s: %w", child, parent, ErrCycle)
		}
	}
	if old, ok := w.parents[child]; ok {
		if old == parent {
			return nil
		}
		w.detach(old, child)
	}
	w.parents[child] = parent
	w.parts[parent] = append(w.parts[parent], child)
	return nil
}

// Parent returns the composite e is a part of.
func (w *World) Parent(e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.parents[e]
	return p, ok
}

// Parts returns e's direct parts in attach order.
func (w *World) Parts(e Entity) []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.parts[e]...)
}

func (w *World) detach(parent, child Entity) {
	parts := w.parts[parent]
	for i, p := range parts {
		if p == child {
			w.parts[parent] = append(parts[:i:i], parts[i+1:]...)
			break
		}
	}
	if len(w.parts[parent]) == 0 {
		delete(w.parts, parent)
	}
	delete(w.parents, child)
}
