package ecs

// FrameTime is the simulation clock as seen by systems during a frame.
type FrameTime struct {
	// DeltaTime is the scaled time since the previous frame, in seconds.
	DeltaTime float64
	// WorldTime is the sum of all scaled deltas.
	WorldTime float64
	TimeScale float64
	Frame     uint64
}

func (t *FrameTime) advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	t.DeltaTime = dt * t.TimeScale
	t.WorldTime += t.DeltaTime
	t.Frame++
}

// Time returns the current frame clock.
func (w *World) Time() FrameTime {
	if w == nil {
		return FrameTime{TimeScale: 1}
	}
	return w.clock
}

// SetTimeScale sets the multiplier applied to real frame time. Negative
// values are clamped to zero.
func (w *World) SetTimeScale(scale float64) {
	if w == nil {
		return
	}
	if scale < 0 {
		scale = 0
	}
	w.clock.TimeScale = scale
}
