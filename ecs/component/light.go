package component

type DirectionalLight struct {
	// Direction points from the scene towards the light.
	Direction Vec3
	Color     RGB
}

var DirectionalLightComponent = NewNamedComponent[DirectionalLight]("directional_light")
