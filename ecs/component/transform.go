package component

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Position is relative to the composition parent when the entity is a part.
type Position struct {
	X float64
	Y float64
	Z float64
}

func (p Position) Vec3() Vec3 {
	return Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

var PositionComponent = NewNamedComponent[Position]("position")

// Extent is the size of an axis-aligned box drawn centered on Position.
type Extent struct {
	Width  float64
	Height float64
	Depth  float64
}

var ExtentComponent = NewNamedComponent[Extent]("extent")
