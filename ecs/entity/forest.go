package entity

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/prefabs"
)

type ForestOptions struct {
	GridWidth        int
	GridDepth        int
	DensityThreshold float64
	PineRatio        float64
	OffsetX          float64
	OffsetZ          float64
	Tree             ecs.Entity
	Pine             ecs.Entity
}

// ForestOptionsFromSpec resolves the prototype names in spec.
func ForestOptionsFromSpec(spec prefabs.ForestSpec, protos Prototypes) (ForestOptions, error) {
	tree, err := protos.Lookup(spec.Tree)
	if err != nil {
		return ForestOptions{}, fmt.Errorf("forest tree: %w", err)
	}
	pine, err := protos.Lookup(spec.Pine)
	if err != nil {
		return ForestOptions{}, fmt.Errorf("forest pine: %w", err)
	}
	return ForestOptions{
		GridWidth:        spec.GridWidth,
		GridDepth:        spec.GridDepth,
		DensityThreshold: spec.DensityThreshold,
		PineRatio:        spec.PineRatio,
		OffsetX:          spec.OffsetX,
		OffsetZ:          spec.OffsetZ,
		Tree:             tree,
		Pine:             pine,
	}, nil
}

// Planted records one populated grid cell.
type Planted struct {
	Entity ecs.Entity
	X, Z   int
	Pine   bool
}

// Populate walks the grid column by column and instantiates a tree or pine
// in every cell whose density draw exceeds the threshold. The draw sequence
// depends only on rng, so a seeded rng always yields the same forest.
func Populate(w *ecs.World, rng *rand.Rand, opts ForestOptions) ([]Planted, error) {
	if rng == nil {
		return nil, fmt.Errorf("populate: rng is nil")
	}
	if opts.GridWidth < 0 || opts.GridDepth < 0 {
		return nil, fmt.Errorf("populate: invalid grid %dx%d", opts.GridWidth, opts.GridDepth)
	}

	var planted []Planted
	for x := 0; x < opts.GridWidth; x++ {
		for z := 0; z < opts.GridDepth; z++ {
			if rng.Float64() <= opts.DensityThreshold {
				continue
			}
			pine := rng.Float64() > opts.PineRatio
			proto := opts.Tree
			if pine {
				proto = opts.Pine
			}

			pos := component.Position{
				X: float64(x) - opts.OffsetX,
				Z: float64(z) - opts.OffsetZ,
			}
			e, err := ecs.Instantiate(w, proto, ecs.With(component.PositionComponent.Kind(), pos))
			if err != nil {
				return planted, fmt.Errorf("populate cell (%d, %d): %w", x, z, err)
			}
			planted = append(planted, Planted{Entity: e, X: x, Z: z, Pine: pine})
		}
	}
	return planted, nil
}
