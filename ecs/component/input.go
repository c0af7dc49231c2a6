package component

// Input stores the held state of the rig keys sampled once per frame.
type Input struct {
	OrbitLeft  bool
	OrbitRight bool
	Raise      bool
	Lower      bool
	Precision  bool
	SlowTime   bool
	FastTime   bool
	// Shake is true only on the frame the shake key went down.
	Shake bool
}

var InputComponent = NewNamedComponent[Input]("input")
