package system

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/trees/prefabs"
)

func TestKeyMapFromSpec(t *testing.T) {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		t.Fatalf("load camera: %v", err)
	}
	km, err := KeyMapFromSpec(spec.Keys)
	if err != nil {
		t.Fatalf("key map: %v", err)
	}

	cases := []struct {
		name string
		got  []ebiten.Key
		want []ebiten.Key
	}{
		{"orbit_left", km.OrbitLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
		{"orbit_right", km.OrbitRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
		{"raise", km.Raise, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
		{"lower", km.Lower, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
		{"precision", km.Precision, []ebiten.Key{ebiten.KeyShift}},
		{"shake", km.Shake, []ebiten.Key{ebiten.KeySpace}},
	}
	for _, c := range cases {
		if !slices.Equal(c.got, c.want) {
			t.Fatalf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestKeyMapFromSpecDefaultsAndErrors(t *testing.T) {
	km, err := KeyMapFromSpec(prefabs.KeyMapSpec{Shake: []string{"Enter"}})
	if err != nil {
		t.Fatalf("key map: %v", err)
	}
	if !slices.Equal(km.Shake, []ebiten.Key{ebiten.KeyEnter}) {
		t.Fatalf("shake not rebound: %v", km.Shake)
	}
	if !slices.Equal(km.OrbitLeft, DefaultKeyMap().OrbitLeft) {
		t.Fatalf("unset actions should keep defaults, got %v", km.OrbitLeft)
	}

	if _, err := KeyMapFromSpec(prefabs.KeyMapSpec{Raise: []string{"NotAKey"}}); err == nil {
		t.Fatalf("expected error for unknown key name")
	}
}
