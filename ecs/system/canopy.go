package system

import (
	"fmt"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/logger"
)

const (
	canopyBaseHeight = 0.8
	// Trunk top; boxes are drawn centered on their position.
	canopyRestY = 0.5
)

// CanopyShape maps a uniform draw r in [0, 1) to a canopy height and the Y
// that rests the box on the trunk.
func CanopyShape(r float64) (height, y float64) {
	height = r + canopyBaseHeight
	return height, height/2 + canopyRestY
}

// CanopySizer randomizes canopy boxes as they are created.
type CanopySizer struct {
	rng    *rand.Rand
	script *canopyScript
}

func NewCanopySizer(rng *rand.Rand) *CanopySizer {
	return &CanopySizer{rng: rng}
}

// UseScript replaces CanopyShape with a tengo script reading r and setting
// height and y. A nil or empty source restores the native shape.
func (c *CanopySizer) UseScript(src []byte) error {
	if len(src) == 0 {
		c.script = nil
		return nil
	}
	s, err := compileCanopyScript(src)
	if err != nil {
		return err
	}
	c.script = s
	return nil
}

// Size is the reaction body: it draws once from the sizer's rng and writes
// Extent.Height and Position.Y.
func (c *CanopySizer) Size(e ecs.Entity, pos *component.Position, ext *component.Extent) {
	r := c.rng.Float64()
	h, y := CanopyShape(r)
	if c.script != nil {
		sh, sy, err := c.script.shape(r)
		if err != nil {
			logger.Log.WithError(err).WithField("entity", e.String()).Warn("canopy script failed, using native shape")
		} else {
			h, y = sh, sy
		}
	}
	ext.Height = h
	pos.Y = y
}

// RegisterCanopySizing installs the sizing reaction for canopy parts of any
// composite that is one of roots.
func RegisterCanopySizing(w *ecs.World, sizer *CanopySizer, roots ...ecs.Entity) ecs.RuleID {
	filter := ecs.All(
		ecs.HasShared(component.CanopyTagComponent.Kind()),
		ecs.ParentIsA(roots...),
	)
	return ecs.OnSet2(w, "randomize_canopy", filter,
		component.PositionComponent.Kind(), component.ExtentComponent.Kind(), sizer.Size)
}

type canopyScript struct {
	compiled *tengo.Compiled
}

func compileCanopyScript(src []byte) (*canopyScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("r", 0.0)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("canopy script: compile: %w", err)
	}
	return &canopyScript{compiled: compiled}, nil
}

func (s *canopyScript) shape(r float64) (float64, float64, error) {
	if err := s.compiled.Set("r", r); err != nil {
		return 0, 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, 0, fmt.Errorf("canopy script: run: %w", err)
	}
	for _, name := range []string{"height", "y"} {
		if !s.compiled.IsDefined(name) {
			return 0, 0, fmt.Errorf("canopy script: %q not defined", name)
		}
	}
	return s.compiled.Get("height").Float(), s.compiled.Get("y").Float(), nil
}
