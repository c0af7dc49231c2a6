package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/ecs/entity"
	"github.com/milk9111/trees/ecs/system"
	"github.com/milk9111/trees/logger"
	"github.com/milk9111/trees/prefabs"
	"github.com/sirupsen/logrus"
)

type Game struct {
	world  *ecs.World
	debug  bool
	window component.Window
	camera ecs.Entity

	input   *system.InputSystem
	rig     *system.CameraRigSystem
	watcher *prefabs.Watcher
}

func NewGame(seed int64, debug, watch bool) (*Game, error) {
	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, err
	}
	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	protoSet, err := prefabs.LoadPrototypeSetSpec()
	if err != nil {
		return nil, err
	}
	keys, err := system.KeyMapFromSpec(camSpec.Keys)
	if err != nil {
		return nil, fmt.Errorf("camera keys: %w", err)
	}

	g := &Game{
		world: ecs.NewWorld(),
		debug: debug,
		window: component.Window{
			Width:  scene.Window.Width,
			Height: scene.Window.Height,
			Title:  scene.Window.Title,
		},
		input: system.NewInputSystem(keys),
		rig:   system.NewCameraRigSystem(system.RigTuningFromSpec(camSpec)),
	}
	w := g.world
	w.AddSystem(g.input)
	w.AddSystem(g.rig)
	w.AddSystem(system.NewBoxRenderSystem())

	protos, err := entity.BuildPrototypes(w, protoSet)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	sizer := system.NewCanopySizer(rng)
	if scene.Canopy.Script != "" {
		src, err := prefabs.LoadScript(scene.Canopy.Script)
		if err != nil {
			return nil, fmt.Errorf("canopy script: %w", err)
		}
		if err := sizer.UseScript(src); err != nil {
			return nil, err
		}
	}
	roots := make([]ecs.Entity, 0, len(scene.Canopy.Roots))
	for _, name := range scene.Canopy.Roots {
		root, err := protos.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("canopy roots: %w", err)
		}
		roots = append(roots, root)
	}
	system.RegisterCanopySizing(w, sizer, roots...)

	if _, err := entity.BuildProps(w, scene.Props); err != nil {
		return nil, err
	}
	opts, err := entity.ForestOptionsFromSpec(scene.Forest, protos)
	if err != nil {
		return nil, err
	}
	planted, err := entity.Populate(w, rng, opts)
	if err != nil {
		return nil, err
	}

	sun, err := entity.NewSun(w, scene.Sun)
	if err != nil {
		return nil, err
	}
	g.camera, err = entity.NewCamera(w, camSpec)
	if err != nil {
		return nil, err
	}
	if _, err := entity.NewWindow(w, scene.Window, scene.Canvas, g.camera, sun); err != nil {
		return nil, err
	}

	if watch {
		g.watcher, err = prefabs.NewWatcher("prefabs")
		if err != nil {
			logger.Log.WithError(err).Warn("hot reload disabled")
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"seed":     seed,
		"trees":    len(planted),
		"entities": len(ecs.Entities(w)),
	}).Info("scene ready")
	return g, nil
}

// WindowConfig returns the window size and title from the scene.
func (g *Game) WindowConfig() (int, int, string) {
	return g.window.Width, g.window.Height, g.window.Title
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	// Log what happened since the last frame, including scene construction,
	// before Progress clears the queue.
	for _, evt := range g.world.Events().Drain() {
		switch data := evt.Data.(type) {
		case ecs.InstantiatedEvent:
			logger.Log.WithField("prototype", data.Prototype.String()).Debugf("instantiated %s with %d parts", data.Root, len(data.Parts))
		case ecs.RuleFiredEvent:
			logger.Log.WithField("rule", data.Rule).Debugf("fired for %s", data.Entity)
		}
	}

	g.reload()
	g.world.Progress(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Pending() {
		change := classifyPrefabChange(name)
		if change == changeRestart {
			logger.Log.WithField("file", name).Info("prefab changed; takes effect on restart")
		}
		if change != changeCamera {
			continue
		}
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			logger.Log.WithError(err).Warn("camera reload failed")
			continue
		}
		keys, err := system.KeyMapFromSpec(spec.Keys)
		if err != nil {
			logger.Log.WithError(err).Warn("camera keys reload failed")
			continue
		}
		g.rig.SetTuning(system.RigTuningFromSpec(spec))
		g.input.SetKeyMap(keys)
		logger.Log.Info("camera tuning reloaded")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	if !g.debug {
		return
	}

	ebitenutil.DebugPrint(screen, debugText(g.world, g.camera, g.rig.Tuning(), ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func debugText(w *ecs.World, camera ecs.Entity, tuning system.RigTuning, fps, tps float64) string {
	now := w.Time()
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nTime scale: %.3f  Frame: %d\nEntities: %d",
		fps, tps, now.TimeScale, now.Frame, len(ecs.Entities(w)))
	if rig, ok := ecs.Get(w, camera, component.CameraRigComponent.Kind()); ok {
		msg += fmt.Sprintf("\nRig r=%.2f h=%.2f d=%.2f v=%.3f vh=%.3f shake=%.3f",
			rig.R, rig.H, rig.D, rig.V, rig.VH, rig.Shake)
	}
	msg += fmt.Sprintf("\nTuning accel=%.3f decel=%.3f max=%.3f shake=%.2fx%.2f",
		tuning.Acceleration, tuning.Deceleration, tuning.MaxSpeed, tuning.ShakeIntensity, tuning.ShakeDecay)
	return msg
}

type prefabChange int

const (
	changeIgnored prefabChange = iota
	// camera.yaml is re-read in place.
	changeCamera
	// Scene, prototype and script edits only matter when the forest is
	// built, so they need a restart.
	changeRestart
)

func classifyPrefabChange(name string) prefabChange {
	switch {
	case name == "camera.yaml":
		return changeCamera
	case name == "scene.yaml", name == "prototypes.yaml", strings.HasPrefix(name, "scripts/"):
		return changeRestart
	default:
		return changeIgnored
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.window.Width, g.window.Height
}
