package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/ecs/entity"
	"github.com/milk9111/trees/ecs/system"
	"github.com/milk9111/trees/logger"
	"github.com/milk9111/trees/prefabs"
)

// forestmap prints the forest a seed produces without opening a window:
// T marks a tree, P a pine and . an empty cell. Rows are z, columns x.
func main() {
	seed := flag.Int64("seed", 1, "forest seed")
	canopies := flag.Bool("canopies", false, "list the sized canopy parts")
	flag.Parse()

	logger.Init(false)

	if err := run(os.Stdout, *seed, *canopies); err != nil {
		logger.Log.Fatalf("forestmap: %v", err)
	}
}

func run(out io.Writer, seed int64, listCanopies bool) error {
	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		return err
	}
	set, err := prefabs.LoadPrototypeSetSpec()
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	protos, err := entity.BuildPrototypes(w, set)
	if err != nil {
		return err
	}
	opts, err := entity.ForestOptionsFromSpec(scene.Forest, protos)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	rule := system.RegisterCanopySizing(w, system.NewCanopySizer(rng), opts.Tree, opts.Pine)
	planted, err := entity.Populate(w, rng, opts)
	if err != nil {
		return err
	}

	fmt.Fprint(out, renderGrid(opts.GridWidth, opts.GridDepth, planted))
	fmt.Fprintf(out, "seed %d: %d trees\n", seed, len(planted))

	if !listCanopies {
		return nil
	}
	for _, p := range planted {
		for _, part := range w.Parts(p.Entity) {
			if !w.Fired(rule, part) {
				continue
			}
			ext, _ := ecs.Get(w, part, component.ExtentComponent.Kind())
			pos, ok := system.WorldPosition(w, part)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "(%2d,%2d) canopy h=%.3f at (%.2f, %.3f, %.2f)\n", p.X, p.Z, ext.Height, pos.X, pos.Y, pos.Z)
		}
	}
	return nil
}

func renderGrid(width, depth int, planted []entity.Planted) string {
	cells := make([][]byte, depth)
	for z := range cells {
		cells[z] = []byte(strings.Repeat(".", width))
	}
	for _, p := range planted {
		mark := byte('T')
		if p.Pine {
			mark = 'P'
		}
		cells[p.Z][p.X] = mark
	}

	var b strings.Builder
	for _, row := range cells {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
