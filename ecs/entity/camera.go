package entity

import (
	"fmt"

	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/prefabs"
)

// NewCamera creates the orbit camera. The rig system positions it on the
// first update.
func NewCamera(w *ecs.World, spec prefabs.CameraSpec) (ecs.Entity, error) {
	if spec.Distance <= 0 {
		return 0, fmt.Errorf("camera: distance must be positive, got %v", spec.Distance)
	}
	fov := spec.FOV
	if fov <= 0 || fov >= 180 {
		return 0, fmt.Errorf("camera: fov out of range: %v", fov)
	}

	e := ecs.CreateEntity(w)
	lookAt := component.Vec3{X: spec.LookAt.X, Y: spec.LookAt.Y, Z: spec.LookAt.Z}
	err := applySetters(w, e,
		ecs.With(component.NameComponent.Kind(), component.Name{Value: spec.Name}),
		ecs.With(component.CameraTagComponent.Kind(), component.CameraTag{}),
		ecs.With(component.CameraComponent.Kind(), component.Camera{LookAt: lookAt, FOV: fov}),
		ecs.With(component.CameraRigComponent.Kind(), component.CameraRig{
			R: spec.StartAngle,
			H: spec.Height,
			D: spec.Distance,
		}),
		ecs.With(component.InputComponent.Kind(), component.Input{}),
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: %w", err)
	}
	return e, nil
}

func applySetters(w *ecs.World, e ecs.Entity, setters ...ecs.Setter) error {
	for _, s := range setters {
		if err := s(w, e); err != nil {
			return err
		}
	}
	return nil
}
