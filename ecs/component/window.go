package component

type Window struct {
	Width  int
	Height int
	Title  string
}

var WindowComponent = NewNamedComponent[Window]("window")

// Canvas selects what the renderer draws into a window. Camera and Light are
// raw entity handles to keep this package free of the ecs import.
type Canvas struct {
	Background RGB
	Ambient    RGB
	Camera     uint64
	Light      uint64
}

var CanvasComponent = NewNamedComponent[Canvas]("canvas")
