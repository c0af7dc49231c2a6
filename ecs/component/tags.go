package component

// CanopyTag marks tree canopy parts. Prototypes carry it so instances see it
// through their template chain.
type CanopyTag struct{}

var CanopyTagComponent = NewNamedComponent[CanopyTag]("canopy_tag")

type CameraTag struct{}

var CameraTagComponent = NewNamedComponent[CameraTag]("camera_tag")

type Name struct {
	Value string
}

var NameComponent = NewNamedComponent[Name]("name")
