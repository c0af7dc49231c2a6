package component

// Camera is the pose handed to the renderer.
type Camera struct {
	Position Vec3
	LookAt   Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
}

var CameraComponent = NewNamedComponent[Camera]("camera")

// CameraRig is the orbit controller state driven by the camera rig system.
type CameraRig struct {
	// R is the orbit angle in radians.
	R float64
	// V is the angular velocity, VH the vertical velocity.
	V  float64
	VH float64
	H  float64
	D  float64
	// Shake is the current shake amplitude. It decays every frame.
	Shake float64
}

var CameraRigComponent = NewNamedComponent[CameraRig]("camera_rig")
