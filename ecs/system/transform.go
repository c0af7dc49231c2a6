package system

import (
	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
)

// WorldPosition sums resolved Positions from e up its composition chain.
// Links without a Position contribute nothing.
func WorldPosition(w *ecs.World, e ecs.Entity) (component.Vec3, bool) {
	own, ok := ecs.Resolve(w, e, component.PositionComponent.Kind())
	if !ok {
		return component.Vec3{}, false
	}
	pos := own.Vec3()
	for p, ok := w.Parent(e); ok; p, ok = w.Parent(p) {
		if pp, ok := ecs.Resolve(w, p, component.PositionComponent.Kind()); ok {
			pos = pos.Add(pp.Vec3())
		}
	}
	return pos, true
}
