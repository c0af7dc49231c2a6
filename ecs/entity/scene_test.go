package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/prefabs"
)

func TestNewCamera(t *testing.T) {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		t.Fatalf("load camera: %v", err)
	}
	w := ecs.NewWorld()
	cam, err := NewCamera(w, spec)
	if err != nil {
		t.Fatalf("new camera: %v", err)
	}

	rig, ok := ecs.Get(w, cam, component.CameraRigComponent.Kind())
	if !ok {
		t.Fatalf("camera has no rig")
	}
	if math.Abs(rig.R+math.Pi/2) > 1e-9 || rig.H != 6 || rig.D != 8 || rig.V != 0 || rig.VH != 0 {
		t.Fatalf("unexpected initial rig %+v", rig)
	}
	for name, has := range map[string]bool{
		"camera": ecs.Has(w, cam, component.CameraComponent.Kind()),
		"tag":    ecs.Has(w, cam, component.CameraTagComponent.Kind()),
		"input":  ecs.Has(w, cam, component.InputComponent.Kind()),
	} {
		if !has {
			t.Fatalf("camera missing %s", name)
		}
	}

	spec.Distance = 0
	if _, err := NewCamera(w, spec); err == nil {
		t.Fatalf("expected error for zero distance")
	}
}

func TestNewWindow(t *testing.T) {
	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	w := ecs.NewWorld()
	sun, err := NewSun(w, scene.Sun)
	if err != nil {
		t.Fatalf("new sun: %v", err)
	}
	cam := ecs.CreateEntity(w)

	win, err := NewWindow(w, scene.Window, scene.Canvas, cam, sun)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	size, _ := ecs.Get(w, win, component.WindowComponent.Kind())
	if size.Width != 1024 || size.Height != 800 {
		t.Fatalf("unexpected window size %+v", size)
	}
	canvas, ok := ecs.Get(w, win, component.CanvasComponent.Kind())
	if !ok || ecs.Entity(canvas.Camera) != cam || ecs.Entity(canvas.Light) != sun {
		t.Fatalf("canvas does not reference camera and sun: %+v", canvas)
	}

	ecs.DestroyEntity(w, cam)
	if _, err := NewWindow(w, scene.Window, scene.Canvas, cam, sun); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for dead camera, got %v", err)
	}
	if _, err := NewSun(w, prefabs.LightSpec{Name: "Dark"}); err == nil {
		t.Fatalf("expected error for zero light direction")
	}
}
