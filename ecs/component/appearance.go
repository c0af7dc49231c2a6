package component

// RGB channels are linear and may exceed 1 for light sources.
type RGB struct {
	R float64
	G float64
	B float64
}

func (c RGB) Scale(f float64) RGB {
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

func (c RGB) Mul(o RGB) RGB {
	return RGB{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

func (c RGB) Add(o RGB) RGB {
	return RGB{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

type Appearance struct {
	Color RGB
}

var AppearanceComponent = NewNamedComponent[Appearance]("appearance")
