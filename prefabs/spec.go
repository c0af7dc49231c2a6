package prefabs

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PrototypeSpec declares one prototype. Parts are unnamed prototypes
// attached to it; instantiating the prototype instantiates every part.
type PrototypeSpec struct {
	Name       string          `yaml:"name"`
	Template   string          `yaml:"template"`
	Components map[string]any  `yaml:"components"`
	Parts      []PrototypeSpec `yaml:"parts"`
}

type PrototypeSetSpec struct {
	Prototypes []PrototypeSpec `yaml:"prototypes"`
}

func LoadPrototypeSetSpec() (PrototypeSetSpec, error) {
	return LoadSpec[PrototypeSetSpec]("prototypes.yaml")
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CanvasSpec struct {
	Background ColorSpec `yaml:"background"`
	Ambient    ColorSpec `yaml:"ambient"`
}

type LightSpec struct {
	Name      string    `yaml:"name"`
	Direction Vec3Spec  `yaml:"direction"`
	Color     ColorSpec `yaml:"color"`
}

type ForestSpec struct {
	GridWidth        int     `yaml:"grid_width"`
	GridDepth        int     `yaml:"grid_depth"`
	DensityThreshold float64 `yaml:"density_threshold"`
	PineRatio        float64 `yaml:"pine_ratio"`
	OffsetX          float64 `yaml:"offset_x"`
	OffsetZ          float64 `yaml:"offset_z"`
	Tree             string  `yaml:"tree"`
	Pine             string  `yaml:"pine"`
}

type CanopySpec struct {
	Roots  []string `yaml:"roots"`
	Script string   `yaml:"script"`
}

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

type SceneSpec struct {
	Window WindowSpec        `yaml:"window"`
	Canvas CanvasSpec        `yaml:"canvas"`
	Sun    LightSpec         `yaml:"sun"`
	Forest ForestSpec        `yaml:"forest"`
	Canopy CanopySpec        `yaml:"canopy"`
	Props  []EntityBuildSpec `yaml:"props"`
}

func LoadSceneSpec() (SceneSpec, error) {
	return LoadSpec[SceneSpec]("scene.yaml")
}

type RigSpec struct {
	Acceleration     float64 `yaml:"acceleration"`
	Deceleration     float64 `yaml:"deceleration"`
	MaxSpeed         float64 `yaml:"max_speed"`
	PrecisionDivisor float64 `yaml:"precision_divisor"`
	ShakeFrequency   float64 `yaml:"shake_frequency"`
	ShakeDecay       float64 `yaml:"shake_decay"`
	ShakeIntensity   float64 `yaml:"shake_intensity"`
	ZOffset          float64 `yaml:"z_offset"`
	TimeScaleStep    float64 `yaml:"time_scale_step"`
}

// KeyMapSpec lists ebiten key names per rig action.
type KeyMapSpec struct {
	OrbitLeft  []string `yaml:"orbit_left"`
	OrbitRight []string `yaml:"orbit_right"`
	Raise      []string `yaml:"raise"`
	Lower      []string `yaml:"lower"`
	Precision  []string `yaml:"precision"`
	SlowTime   []string `yaml:"slow_time"`
	FastTime   []string `yaml:"fast_time"`
	Shake      []string `yaml:"shake"`
}

type CameraSpec struct {
	Name       string     `yaml:"name"`
	FOV        float64    `yaml:"fov"`
	StartAngle float64    `yaml:"start_angle"`
	Distance   float64    `yaml:"distance"`
	Height     float64    `yaml:"height"`
	LookAt     Vec3Spec   `yaml:"look_at"`
	Rig        RigSpec    `yaml:"rig"`
	Keys       KeyMapSpec `yaml:"keys"`
}

func LoadCameraSpec() (CameraSpec, error) {
	return LoadSpec[CameraSpec]("camera.yaml")
}

// Vec3Spec decodes from a three element sequence.
type Vec3Spec struct {
	X, Y, Z float64
}

func (v *Vec3Spec) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return fmt.Errorf("vector must be a list of numbers: %w", err)
	}
	if len(xs) != 3 {
		return fmt.Errorf("vector needs 3 components, got %d", len(xs))
	}
	v.X, v.Y, v.Z = xs[0], xs[1], xs[2]
	return nil
}

// ColorSpec decodes a color from a [r, g, b] list of linear floats, a
// "#rrggbb" hex string, or an SVG color name such as "forestgreen".
type ColorSpec struct {
	R, G, B float64
}

func (c *ColorSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xs []float64
		if err := value.Decode(&xs); err != nil {
			return fmt.Errorf("color list: %w", err)
		}
		if len(xs) != 3 {
			return fmt.Errorf("color list needs 3 channels, got %d", len(xs))
		}
		c.R, c.G, c.B = xs[0], xs[1], xs[2]
		return nil
	case yaml.ScalarNode:
		return c.parseString(value.Value)
	default:
		return fmt.Errorf("invalid color at line %d", value.Line)
	}
}

// MarshalYAML keeps the list form so DecodeComponentSpec can round-trip.
func (c ColorSpec) MarshalYAML() (any, error) {
	return []float64{c.R, c.G, c.B}, nil
}

func (c *ColorSpec) parseString(raw string) error {
	s := strings.TrimSpace(raw)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		c.R = float64(named.R) / 255
		c.G = float64(named.G) / 255
		c.B = float64(named.B) / 255
		return nil
	}

	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fmt.Errorf("invalid color format: %s", raw)
	}
	parse := func(start int) (float64, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return float64(v) / 255, err
	}

	var err error
	if c.R, err = parse(0); err != nil {
		return err
	}
	if c.G, err = parse(2); err != nil {
		return err
	}
	c.B, err = parse(4)
	return err
}
