package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/prefabs"
)

// buildContext names the prototype or prop a component belongs to.
type buildContext struct {
	Source string
}

func (c *buildContext) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: "+format, append([]any{c.Source}, args...)...)
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"canopy_tag": addCanopyTag,
	"position":   addPosition,
	"extent":     addExtent,
	"appearance": addAppearance,
}

var componentBuildOrder = []string{
	"canopy_tag",
	"position",
	"extent",
	"appearance",
}

// BuildEntity creates a concrete entity from a prop spec.
func BuildEntity(w *ecs.World, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}

	source := spec.Name
	if source == "" {
		source = "unnamed prop"
	}
	e := ecs.CreateEntity(w)
	if err := applyComponents(w, e, spec.Name, source, spec.Components); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %w", err)
	}
	return e, nil
}

// applyComponents adds the named components in build order, then any
// remaining ones alphabetically, and names the entity when name is set.
// Errors are prefixed with source.
func applyComponents(w *ecs.World, e ecs.Entity, name, source string, components map[string]any) error {
	ctx := &buildContext{Source: source}
	if name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
			return ctx.errorf("add name: %w", err)
		}
	}

	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	build := func(key string) error {
		builder, ok := componentRegistry[key]
		if !ok {
			return ctx.errorf("no builder for component %q", key)
		}
		if err := builder(w, e, remaining[key], ctx); err != nil {
			return err
		}
		delete(remaining, key)
		return nil
	}

	for _, key := range componentBuildOrder {
		if _, ok := remaining[key]; !ok {
			continue
		}
		if err := build(key); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(remaining))
	for key := range remaining {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := build(key); err != nil {
			return err
		}
	}
	return nil
}

func addCanopyTag(w *ecs.World, e ecs.Entity, _ any, ctx *buildContext) error {
	if err := ecs.Add(w, e, component.CanopyTagComponent.Kind(), &component.CanopyTag{}); err != nil {
		return ctx.errorf("add canopy tag: %w", err)
	}
	return nil
}

func addPosition(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PositionComponentSpec](raw)
	if err != nil {
		return ctx.errorf("decode position spec: %w", err)
	}
	if err := ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{
		X: spec.X,
		Y: spec.Y,
		Z: spec.Z,
	}); err != nil {
		return ctx.errorf("add position: %w", err)
	}
	return nil
}

func addExtent(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ExtentComponentSpec](raw)
	if err != nil {
		return ctx.errorf("decode extent spec: %w", err)
	}
	if spec.Width < 0 || spec.Height < 0 || spec.Depth < 0 {
		return ctx.errorf("extent must not be negative: %+v", spec)
	}
	if err := ecs.Add(w, e, component.ExtentComponent.Kind(), &component.Extent{
		Width:  spec.Width,
		Height: spec.Height,
		Depth:  spec.Depth,
	}); err != nil {
		return ctx.errorf("add extent: %w", err)
	}
	return nil
}

func addAppearance(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AppearanceComponentSpec](raw)
	if err != nil {
		return ctx.errorf("decode appearance spec: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: rgb(spec.Color),
	}); err != nil {
		return ctx.errorf("add appearance: %w", err)
	}
	return nil
}

func rgb(c prefabs.ColorSpec) component.RGB {
	return component.RGB{R: c.R, G: c.G, B: c.B}
}
