package system

import (
	"math"
	"testing"

	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func startRig() component.CameraRig {
	return component.CameraRig{R: -math.Pi / 2, H: 6, D: 8}
}

func TestStepRigIdle(t *testing.T) {
	rig := startRig()
	pos := StepRig(&rig, DefaultRigTuning(), component.Input{}, 1, 0)

	if rig != startRig() {
		t.Fatalf("idle rig changed: %+v", rig)
	}
	if !approx(pos.X, 0) || !approx(pos.Y, 6) || !approx(pos.Z, -3) {
		t.Fatalf("unexpected idle position %+v", pos)
	}
}

func TestStepRigKeySigns(t *testing.T) {
	cases := []struct {
		name  string
		in    component.Input
		check func(before, after component.CameraRig) bool
	}{
		{"orbit_right", component.Input{OrbitRight: true}, func(b, a component.CameraRig) bool { return a.V < 0 && a.R < b.R }},
		{"orbit_left", component.Input{OrbitLeft: true}, func(b, a component.CameraRig) bool { return a.V > 0 && a.R > b.R }},
		{"raise", component.Input{Raise: true}, func(b, a component.CameraRig) bool { return a.VH > 0 && a.H > b.H && a.D < b.D }},
		{"lower", component.Input{Lower: true}, func(b, a component.CameraRig) bool { return a.VH < 0 && a.H < b.H && a.D > b.D }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rig := startRig()
			before := rig
			StepRig(&rig, DefaultRigTuning(), c.in, 1.0/60, 0)
			if !c.check(before, rig) {
				t.Fatalf("unexpected rig after %s: %+v", c.name, rig)
			}
		})
	}
}

func TestStepRigVerticalCouplesHeightAndDistance(t *testing.T) {
	rig := startRig()
	StepRig(&rig, DefaultRigTuning(), component.Input{Raise: true}, 1.0/60, 0)

	dh := rig.H - 6
	dd := 8 - rig.D
	if !approx(dh, 2*dd) {
		t.Fatalf("height change %v should be twice distance change %v", dh, dd)
	}
}

func TestStepRigVelocityDecaysToZero(t *testing.T) {
	tuning := DefaultRigTuning()
	dt := 1.0 / 60
	rig := startRig()
	rig.V = tuning.MaxSpeed
	rig.VH = -tuning.MaxSpeed

	frames := int(math.Ceil(tuning.MaxSpeed/(tuning.Deceleration*dt))) + 1
	for i := 0; i < frames; i++ {
		StepRig(&rig, tuning, component.Input{}, dt, 0)
	}
	if rig.V != 0 || rig.VH != 0 {
		t.Fatalf("velocities should be exactly zero after %d frames, got v=%v vh=%v", frames, rig.V, rig.VH)
	}

	settled := rig
	for i := 0; i < 10; i++ {
		StepRig(&rig, tuning, component.Input{}, dt, 0)
	}
	if rig.R != settled.R || rig.H != settled.H || rig.D != settled.D {
		t.Fatalf("rig drifted after settling: %+v vs %+v", rig, settled)
	}
}

func TestStepRigPrecisionCapsSpeed(t *testing.T) {
	tuning := DefaultRigTuning()
	rig := startRig()
	in := component.Input{OrbitLeft: true, Raise: true, Precision: true}
	for i := 0; i < 120; i++ {
		StepRig(&rig, tuning, in, 1.0/60, 0)
	}

	limit := tuning.MaxSpeed / tuning.PrecisionDivisor
	if rig.V > limit+eps || rig.VH > limit+eps {
		t.Fatalf("precision speed exceeded %v: v=%v vh=%v", limit, rig.V, rig.VH)
	}
	if !approx(rig.V, limit) {
		t.Fatalf("held key should reach the precision cap, got %v", rig.V)
	}
}

func TestStepRigShakeDecays(t *testing.T) {
	tuning := DefaultRigTuning()
	rig := startRig()
	rig.Shake = 0.3

	const n = 12
	for i := 0; i < n; i++ {
		StepRig(&rig, tuning, component.Input{}, 1.0/60, float64(i)/60)
	}
	want := 0.3 * math.Pow(tuning.ShakeDecay, n)
	if !approx(rig.Shake, want) {
		t.Fatalf("expected shake %v, got %v", want, rig.Shake)
	}
}

func TestDecelerate(t *testing.T) {
	cases := []struct {
		name                 string
		v, decel, dt, max, w float64
	}{
		{"positive_to_zero", 0.05, 0.1, 1, 0.05, 0},
		{"negative_to_zero", -0.05, 0.1, 1, 0.05, 0},
		{"positive_partial", 0.02, 0.1, 0.1, 1, 0.01},
		{"negative_partial", -0.05, 0.1, 0.1, 1, -0.04},
		{"capped", 0.3, 0, 1, 0.05, 0.05},
		{"capped_negative", -0.3, 0, 1, 0.05, -0.05},
		{"zero", 0, 0.1, 1, 0.05, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Decelerate(c.v, c.decel, c.dt, c.max)
			if !approx(got, c.w) {
				t.Fatalf("Decelerate(%v, %v, %v, %v) = %v, want %v", c.v, c.decel, c.dt, c.max, got, c.w)
			}
		})
	}
}

func newRigWorld(t *testing.T, in component.Input) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{FOV: 60}); err != nil {
		t.Fatalf("add camera: %v", err)
	}
	rig := startRig()
	if err := ecs.Add(w, cam, component.CameraRigComponent.Kind(), &rig); err != nil {
		t.Fatalf("add rig: %v", err)
	}
	input := ecs.CreateEntity(w)
	if err := ecs.Add(w, input, component.InputComponent.Kind(), &in); err != nil {
		t.Fatalf("add input: %v", err)
	}
	w.AddSystem(NewCameraRigSystem(DefaultRigTuning()))
	return w, cam, input
}

func TestCameraRigSystemPositionsCamera(t *testing.T) {
	w, cam, _ := newRigWorld(t, component.Input{})
	w.Progress(1.0 / 60)

	c, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	if !ok {
		t.Fatalf("camera missing")
	}
	if !approx(c.Position.Y, 6) || !approx(c.Position.Z, -3) {
		t.Fatalf("unexpected camera position %+v", c.Position)
	}
	if c.LookAt != (component.Vec3{Z: 5}) {
		t.Fatalf("unexpected look-at %+v", c.LookAt)
	}
}

func TestCameraRigSystemTimeScale(t *testing.T) {
	w, _, input := newRigWorld(t, component.Input{SlowTime: true})
	w.Progress(1.0 / 60)
	if got := w.Time().TimeScale; !approx(got, 0.95) {
		t.Fatalf("expected time scale 0.95, got %v", got)
	}

	in, _ := ecs.Get(w, input, component.InputComponent.Kind())
	*in = component.Input{FastTime: true}
	w.Progress(1.0 / 60)
	if got := w.Time().TimeScale; !approx(got, 0.95*1.05) {
		t.Fatalf("expected time scale %v, got %v", 0.95*1.05, got)
	}
}

func TestCameraRigSystemConsumesShakeRequests(t *testing.T) {
	w, cam, _ := newRigWorld(t, component.Input{})
	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{Intensity: 0.5}); err != nil {
		t.Fatalf("add request: %v", err)
	}

	w.Progress(1.0 / 60)

	if ecs.Has(w, req, component.CameraShakeRequestComponent.Kind()) {
		t.Fatalf("shake request should be removed once applied")
	}
	rig, _ := ecs.Get(w, cam, component.CameraRigComponent.Kind())
	if !approx(rig.Shake, 0.5*DefaultRigTuning().ShakeDecay) {
		t.Fatalf("expected decayed shake, got %v", rig.Shake)
	}
}
