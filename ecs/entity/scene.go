package entity

import (
	"fmt"

	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/prefabs"
)

// NewSun creates the directional light.
func NewSun(w *ecs.World, spec prefabs.LightSpec) (ecs.Entity, error) {
	dir := component.Vec3{X: spec.Direction.X, Y: spec.Direction.Y, Z: spec.Direction.Z}
	if dir == (component.Vec3{}) {
		return 0, fmt.Errorf("sun: direction is zero")
	}

	e := ecs.CreateEntity(w)
	err := applySetters(w, e,
		ecs.With(component.NameComponent.Kind(), component.Name{Value: spec.Name}),
		ecs.With(component.DirectionalLightComponent.Kind(), component.DirectionalLight{
			Direction: dir,
			Color:     rgb(spec.Color),
		}),
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("sun: %w", err)
	}
	return e, nil
}

// NewWindow creates the window entity and its canvas, which draws the scene
// through camera lit by light.
func NewWindow(w *ecs.World, window prefabs.WindowSpec, canvas prefabs.CanvasSpec, camera, light ecs.Entity) (ecs.Entity, error) {
	if window.Width <= 0 || window.Height <= 0 {
		return 0, fmt.Errorf("window: invalid size %dx%d", window.Width, window.Height)
	}
	if !w.IsAlive(camera) {
		return 0, fmt.Errorf("window: camera %s: %w", camera, component.ErrEntityNotAlive)
	}
	if !w.IsAlive(light) {
		return 0, fmt.Errorf("window: light %s: %w", light, component.ErrEntityNotAlive)
	}

	e := ecs.CreateEntity(w)
	err := applySetters(w, e,
		ecs.With(component.WindowComponent.Kind(), component.Window{
			Width:  window.Width,
			Height: window.Height,
			Title:  window.Title,
		}),
		ecs.With(component.CanvasComponent.Kind(), component.Canvas{
			Background: rgb(canvas.Background),
			Ambient:    rgb(canvas.Ambient),
			Camera:     uint64(camera),
			Light:      uint64(light),
		}),
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("window: %w", err)
	}
	return e, nil
}

// BuildProps creates the static scenery such as the ground slabs.
func BuildProps(w *ecs.World, props []prefabs.EntityBuildSpec) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(props))
	for _, spec := range props {
		e, err := BuildEntity(w, spec)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}
