package entity

import (
	"fmt"

	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/prefabs"
)

// Prototypes maps declared prototype names to their entities.
type Prototypes map[string]ecs.Entity

// Lookup returns the prototype registered under name.
func (p Prototypes) Lookup(name string) (ecs.Entity, error) {
	e, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("prototype %q: %w", name, ecs.ErrUnknownPrototype)
	}
	return e, nil
}

// BuildPrototypes creates the prototype graph declared by set. A template
// must be declared before the prototypes that use it.
func BuildPrototypes(w *ecs.World, set prefabs.PrototypeSetSpec) (Prototypes, error) {
	protos := make(Prototypes, len(set.Prototypes))
	for _, spec := range set.Prototypes {
		if spec.Name == "" {
			return nil, fmt.Errorf("build prototypes: prototype without a name")
		}
		if _, dup := protos[spec.Name]; dup {
			return nil, fmt.Errorf("build prototypes: duplicate prototype %q", spec.Name)
		}
		e, err := buildPrototype(w, protos, spec)
		if err != nil {
			return nil, fmt.Errorf("build prototypes: %w", err)
		}
		protos[spec.Name] = e
	}
	return protos, nil
}

func buildPrototype(w *ecs.World, protos Prototypes, spec prefabs.PrototypeSpec) (ecs.Entity, error) {
	e, err := ecs.CreatePrototype(w)
	if err != nil {
		return 0, err
	}
	if err := fillPrototype(w, protos, e, spec); err != nil {
		destroyComposite(w, e)
		return 0, err
	}
	return e, nil
}

func destroyComposite(w *ecs.World, e ecs.Entity) {
	for _, part := range w.Parts(e) {
		destroyComposite(w, part)
	}
	ecs.DestroyEntity(w, e)
}

func fillPrototype(w *ecs.World, protos Prototypes, e ecs.Entity, spec prefabs.PrototypeSpec) error {
	label := spec.Name
	if label == "" {
		label = "part of " + spec.Template
	}

	if spec.Template != "" {
		proto, err := protos.Lookup(spec.Template)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		if err := w.SetTemplate(e, proto); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
	}

	if err := applyComponents(w, e, spec.Name, label, spec.Components); err != nil {
		return err
	}

	for i, partSpec := range spec.Parts {
		part, err := buildPrototype(w, protos, partSpec)
		if err != nil {
			return fmt.Errorf("%s part %d: %w", label, i, err)
		}
		if err := w.AttachPart(e, part); err != nil {
			destroyComposite(w, part)
			return fmt.Errorf("%s part %d: %w", label, i, err)
		}
	}
	return nil
}
