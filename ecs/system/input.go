package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/prefabs"
)

// KeyMap binds each rig action to one or more keys.
type KeyMap struct {
	OrbitLeft  []ebiten.Key
	OrbitRight []ebiten.Key
	Raise      []ebiten.Key
	Lower      []ebiten.Key
	Precision  []ebiten.Key
	SlowTime   []ebiten.Key
	FastTime   []ebiten.Key
	Shake      []ebiten.Key
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		OrbitLeft:  []ebiten.Key{ebiten.KeyA},
		OrbitRight: []ebiten.Key{ebiten.KeyD},
		Raise:      []ebiten.Key{ebiten.KeyW},
		Lower:      []ebiten.Key{ebiten.KeyS},
		Precision:  []ebiten.Key{ebiten.KeyShift},
		SlowTime:   []ebiten.Key{ebiten.KeyMinus},
		FastTime:   []ebiten.Key{ebiten.KeyEqual},
		Shake:      []ebiten.Key{ebiten.KeySpace},
	}
}

// KeyMapFromSpec parses ebiten key names. Actions with no names
// keep their default binding.
func KeyMapFromSpec(spec prefabs.KeyMapSpec) (KeyMap, error) {
	km := DefaultKeyMap()
	bindings := []struct {
		action string
		names  []string
		dst    *[]ebiten.Key
	}{
		{"orbit_left", spec.OrbitLeft, &km.OrbitLeft},
		{"orbit_right", spec.OrbitRight, &km.OrbitRight},
		{"raise", spec.Raise, &km.Raise},
		{"lower", spec.Lower, &km.Lower},
		{"precision", spec.Precision, &km.Precision},
		{"slow_time", spec.SlowTime, &km.SlowTime},
		{"fast_time", spec.FastTime, &km.FastTime},
		{"shake", spec.Shake, &km.Shake},
	}
	for _, b := range bindings {
		if len(b.names) == 0 {
			continue
		}
		keys := make([]ebiten.Key, 0, len(b.names))
		for _, name := range b.names {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				return KeyMap{}, fmt.Errorf("key map: %s: %w", b.action, err)
			}
			keys = append(keys, k)
		}
		*b.dst = keys
	}
	return km, nil
}

// InputSystem samples the keyboard once per frame into every Input
// component.
type InputSystem struct {
	keys KeyMap
}

func NewInputSystem(keys KeyMap) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) SetKeyMap(keys KeyMap) {
	i.keys = keys
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	held := func(keys []ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	pressed := func(keys []ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	snapshot := component.Input{
		OrbitLeft:  held(i.keys.OrbitLeft),
		OrbitRight: held(i.keys.OrbitRight),
		Raise:      held(i.keys.Raise),
		Lower:      held(i.keys.Lower),
		Precision:  held(i.keys.Precision),
		SlowTime:   held(i.keys.SlowTime),
		FastTime:   held(i.keys.FastTime),
		Shake:      pressed(i.keys.Shake),
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = snapshot
	})
}
