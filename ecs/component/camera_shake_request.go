package component

// CameraShakeRequest asks the camera rig system to add Intensity (world
// units) to the rig's shake amplitude. The component is removed once applied.
type CameraShakeRequest struct {
	Intensity float64
}

var CameraShakeRequestComponent = NewNamedComponent[CameraShakeRequest]("camera_shake_request")
