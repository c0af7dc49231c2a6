package system

import (
	"image/color"
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/milk9111/trees/ecs/component"
)

func TestViewProject(t *testing.T) {
	cam := component.Camera{
		Position: component.Vec3{Y: 6, Z: -3},
		LookAt:   component.Vec3{Z: 5},
		FOV:      60,
	}
	view := NewView(cam, 200, 100)

	x, y, depth, ok := view.Project(vec(cam.LookAt))
	if !ok {
		t.Fatalf("look-at point should be visible")
	}
	if math.Abs(float64(x-100)) > 1e-3 || math.Abs(float64(y-50)) > 1e-3 {
		t.Fatalf("look-at should project to the screen center, got (%v, %v)", x, y)
	}
	if want := float32(10); math.Abs(float64(depth-want)) > 1e-3 {
		t.Fatalf("expected depth %v, got %v", want, depth)
	}

	// Points above the look-at land higher on screen.
	_, yAbove, _, ok := view.Project(math32.Vec3(0, 1, 5))
	if !ok || yAbove >= y {
		t.Fatalf("expected point above look-at to project above center, got %v", yAbove)
	}

	if _, _, _, ok := view.Project(math32.Vec3(0, 6, -10)); ok {
		t.Fatalf("point behind the camera should not project")
	}
}

func TestToColor(t *testing.T) {
	cases := []struct {
		in   component.RGB
		want color.NRGBA
	}{
		{component.RGB{}, color.NRGBA{A: 255}},
		{component.RGB{R: 1, G: 0.5, B: 0}, color.NRGBA{R: 255, G: 128, B: 0, A: 255}},
		{component.RGB{R: 1.05, G: -1, B: 2}, color.NRGBA{R: 255, G: 0, B: 255, A: 255}},
	}
	for _, c := range cases {
		if got := toColor(c.in); got != c.want {
			t.Fatalf("toColor(%+v) = %v, want %v", c.in, got, c.want)
		}
	}
}
