package system

import (
	"math"

	"github.com/milk9111/trees/common"
	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
	"github.com/milk9111/trees/prefabs"
)

// RigTuning holds the camera rig constants.
type RigTuning struct {
	Acceleration     float64
	Deceleration     float64
	MaxSpeed         float64
	PrecisionDivisor float64
	ShakeFrequency   float64
	ShakeDecay       float64
	ShakeIntensity   float64
	ZOffset          float64
	TimeScaleStep    float64
	LookAt           component.Vec3
}

func DefaultRigTuning() RigTuning {
	return RigTuning{
		Acceleration:     0.2,
		Deceleration:     0.1,
		MaxSpeed:         0.05,
		PrecisionDivisor: 8,
		ShakeFrequency:   50,
		ShakeDecay:       0.8,
		ShakeIntensity:   0.3,
		ZOffset:          5,
		TimeScaleStep:    0.05,
		LookAt:           component.Vec3{Z: 5},
	}
}

// RigTuningFromSpec fills unset spec fields from DefaultRigTuning.
func RigTuningFromSpec(spec prefabs.CameraSpec) RigTuning {
	t := DefaultRigTuning()
	r := spec.Rig
	setIf := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setIf(&t.Acceleration, r.Acceleration)
	setIf(&t.Deceleration, r.Deceleration)
	setIf(&t.MaxSpeed, r.MaxSpeed)
	setIf(&t.PrecisionDivisor, r.PrecisionDivisor)
	setIf(&t.ShakeFrequency, r.ShakeFrequency)
	setIf(&t.ShakeDecay, r.ShakeDecay)
	setIf(&t.ShakeIntensity, r.ShakeIntensity)
	setIf(&t.ZOffset, r.ZOffset)
	setIf(&t.TimeScaleStep, r.TimeScaleStep)
	t.LookAt = component.Vec3{X: spec.LookAt.X, Y: spec.LookAt.Y, Z: spec.LookAt.Z}
	return t
}

// Decelerate pulls v toward zero by decel*dt without crossing it, then caps
// the magnitude at maxSpeed.
func Decelerate(v, decel, dt, maxSpeed float64) float64 {
	if v > 0 {
		v = common.Clamp(v-decel*dt, 0, v)
	}
	if v < 0 {
		v = common.Clamp(v+decel*dt, v, 0)
	}
	return common.Clamp(v, -maxSpeed, maxSpeed)
}

// StepRig advances rig by one frame and returns the camera world position.
func StepRig(rig *component.CameraRig, t RigTuning, in component.Input, dt, worldTime float64) component.Vec3 {
	accel := t.Acceleration * dt
	if in.OrbitRight {
		rig.V -= accel
	}
	if in.OrbitLeft {
		rig.V += accel
	}
	if in.Lower {
		rig.VH -= accel
	}
	if in.Raise {
		rig.VH += accel
	}

	maxSpeed := t.MaxSpeed
	if in.Precision && t.PrecisionDivisor != 0 {
		maxSpeed /= t.PrecisionDivisor
	}

	rig.V = Decelerate(rig.V, t.Deceleration, dt, maxSpeed)
	rig.VH = Decelerate(rig.VH, t.Deceleration, dt, maxSpeed)

	rig.R += rig.V
	// Raising the camera also pulls it in.
	rig.H += rig.VH * 2
	rig.D -= rig.VH

	pos := component.Vec3{
		X: math.Cos(rig.R) * rig.D,
		Y: rig.H,
		Z: math.Sin(rig.R)*rig.D + t.ZOffset,
	}

	pos.Y += math.Sin(worldTime*t.ShakeFrequency) * rig.Shake
	rig.Shake *= t.ShakeDecay

	return pos
}

// CameraRigSystem drives every camera that has a rig from the first Input
// component in the world.
type CameraRigSystem struct {
	tuning RigTuning
}

func NewCameraRigSystem(t RigTuning) *CameraRigSystem {
	return &CameraRigSystem{tuning: t}
}

func (s *CameraRigSystem) Tuning() RigTuning {
	return s.tuning
}

// SetTuning swaps the constants used from the next frame on.
func (s *CameraRigSystem) SetTuning(t RigTuning) {
	s.tuning = t
}

func (s *CameraRigSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var in component.Input
	if e, ok := ecs.First(w, component.InputComponent.Kind()); ok {
		if v, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			in = *v
		}
	}

	shake := 0.0
	if in.Shake {
		shake += s.tuning.ShakeIntensity
	}
	var requests []ecs.Entity
	ecs.ForEach(w, component.CameraShakeRequestComponent.Kind(), func(e ecs.Entity, req *component.CameraShakeRequest) {
		shake += req.Intensity
		requests = append(requests, e)
	})
	for _, e := range requests {
		_ = ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
	}

	now := w.Time()
	ecs.ForEach2(w, component.CameraRigComponent.Kind(), component.CameraComponent.Kind(), func(_ ecs.Entity, rig *component.CameraRig, cam *component.Camera) {
		rig.Shake += shake
		cam.Position = StepRig(rig, s.tuning, in, now.DeltaTime, now.WorldTime)
		cam.LookAt = s.tuning.LookAt
	})

	if in.SlowTime {
		w.SetTimeScale(now.TimeScale * (1 - s.tuning.TimeScaleStep))
	}
	if in.FastTime {
		w.SetTimeScale(w.Time().TimeScale * (1 + s.tuning.TimeScaleStep))
	}
}
