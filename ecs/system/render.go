package system

import (
	"image"
	"image/color"
	"math"
	"sort"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/trees/common"
	"github.com/milk9111/trees/ecs"
	"github.com/milk9111/trees/ecs/component"
)

const (
	nearPlane = 0.05
	// Fraction of the way a face at farDistance is blended into the
	// background.
	fogStrength = 0.35
	farDistance = 30.0
	// Above this many vertices a batch is flushed; DrawTriangles indices
	// are uint16.
	maxBatchVertices = 65000
)

var whiteSubImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// View is a pinhole camera projecting world points onto a screen.
type View struct {
	eye     math32.Vector3
	right   math32.Vector3
	up      math32.Vector3
	forward math32.Vector3
	focal   float32
	halfW   float32
	halfH   float32
}

// NewView builds a view for a screen of w×h pixels. fov is the vertical
// field of view in degrees.
func NewView(cam component.Camera, w, h int) View {
	eye := vec(cam.Position)
	forward := vec(cam.LookAt).Sub(eye).Normal()
	right := forward.Cross(math32.Vec3(0, 1, 0)).Normal()
	up := right.Cross(forward)

	fov := cam.FOV
	if fov <= 0 {
		fov = 60
	}
	halfH := float32(h) / 2
	return View{
		eye:     eye,
		right:   right,
		up:      up,
		forward: forward,
		focal:   halfH / float32(math.Tan(fov*math.Pi/360)),
		halfW:   float32(w) / 2,
		halfH:   halfH,
	}
}

// Project returns the screen coordinates of p and its depth along the view
// direction. ok is false for points behind the near plane.
func (v View) Project(p math32.Vector3) (x, y, depth float32, ok bool) {
	d := p.Sub(v.eye)
	depth = d.Dot(v.forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	x = v.halfW + d.Dot(v.right)/depth*v.focal
	y = v.halfH - d.Dot(v.up)/depth*v.focal
	return x, y, depth, true
}

// BoxRenderSystem draws every entity that resolves Position, Extent and
// Appearance as a flat shaded box, using the first Canvas in the world.
type BoxRenderSystem struct {
	faces    []face
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewBoxRenderSystem() *BoxRenderSystem {
	return &BoxRenderSystem{}
}

func (r *BoxRenderSystem) Update(*ecs.World) {}

type face struct {
	corners [4]math32.Vector3
	color   component.RGB
	depth   float32
}

// Box corner offsets, counter-clockwise seen from outside, with normals.
var boxFaces = [6]struct {
	normal  math32.Vector3
	corners [4][3]float32
}{
	{math32.Vec3(1, 0, 0), [4][3]float32{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{math32.Vec3(-1, 0, 0), [4][3]float32{{-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1}}},
	{math32.Vec3(0, 1, 0), [4][3]float32{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}}},
	{math32.Vec3(0, -1, 0), [4][3]float32{{-1, -1, 1}, {-1, -1, -1}, {1, -1, -1}, {1, -1, 1}}},
	{math32.Vec3(0, 0, 1), [4][3]float32{{1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {-1, -1, 1}}},
	{math32.Vec3(0, 0, -1), [4][3]float32{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}},
}

func (r *BoxRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	canvasEntity, ok := ecs.First(w, component.CanvasComponent.Kind())
	if !ok {
		return
	}
	canvas, _ := ecs.Get(w, canvasEntity, component.CanvasComponent.Kind())
	screen.Fill(toColor(canvas.Background))

	cam, ok := ecs.Get(w, ecs.Entity(canvas.Camera), component.CameraComponent.Kind())
	if !ok {
		return
	}
	light := component.DirectionalLight{Direction: component.Vec3{Y: 1}, Color: component.RGB{R: 1, G: 1, B: 1}}
	if l, ok := ecs.Get(w, ecs.Entity(canvas.Light), component.DirectionalLightComponent.Kind()); ok {
		light = *l
	}
	lightDir := vec(light.Direction).Normal()

	bounds := screen.Bounds()
	view := NewView(*cam, bounds.Dx(), bounds.Dy())

	r.faces = r.faces[:0]
	for _, e := range ecs.Entities(w) {
		if w.IsPrototype(e) {
			continue
		}
		ext, ok := ecs.Resolve(w, e, component.ExtentComponent.Kind())
		if !ok {
			continue
		}
		look, ok := ecs.Resolve(w, e, component.AppearanceComponent.Kind())
		if !ok {
			continue
		}
		center, ok := WorldPosition(w, e)
		if !ok {
			continue
		}
		r.appendBox(view, vec(center), *ext, look.Color, lightDir, light.Color, canvas.Ambient)
	}

	// Painter's order: far faces first.
	sort.Slice(r.faces, func(i, j int) bool { return r.faces[i].depth > r.faces[j].depth })

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, f := range r.faces {
		if len(r.vertices)+4 > maxBatchVertices {
			r.flush(screen)
		}
		r.appendFace(view, f, canvas.Background)
	}
	r.flush(screen)
}

func (r *BoxRenderSystem) appendBox(view View, center math32.Vector3, ext component.Extent, base component.RGB, lightDir math32.Vector3, lightColor, ambient component.RGB) {
	half := math32.Vec3(float32(ext.Width/2), float32(ext.Height/2), float32(ext.Depth/2))
	for _, bf := range boxFaces {
		var f face
		var sum math32.Vector3
		for i, c := range bf.corners {
			f.corners[i] = center.Add(math32.Vec3(c[0]*half.X, c[1]*half.Y, c[2]*half.Z))
			sum = sum.Add(f.corners[i])
		}
		mid := sum.MulScalar(0.25)
		// Back faces point away from the eye.
		if bf.normal.Dot(mid.Sub(view.eye)) >= 0 {
			continue
		}
		_, _, depth, ok := view.Project(mid)
		if !ok {
			continue
		}
		lambert := math.Max(0, float64(bf.normal.Dot(lightDir)))
		f.color = base.Mul(ambient.Add(lightColor.Scale(lambert)))
		f.depth = depth
		r.faces = append(r.faces, f)
	}
}

func (r *BoxRenderSystem) appendFace(view View, f face, background component.RGB) {
	fog := common.Clamp(float64(f.depth)/farDistance, 0, 1) * fogStrength
	c := component.RGB{
		R: common.Lerp(f.color.R, background.R, fog),
		G: common.Lerp(f.color.G, background.G, fog),
		B: common.Lerp(f.color.B, background.B, fog),
	}

	base := uint16(len(r.vertices))
	var projected [4]ebiten.Vertex
	for i, p := range f.corners {
		x, y, _, ok := view.Project(p)
		if !ok {
			return
		}
		projected[i] = ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   1.5,
			SrcY:   1.5,
			ColorR: float32(common.Clamp(c.R, 0, 1)),
			ColorG: float32(common.Clamp(c.G, 0, 1)),
			ColorB: float32(common.Clamp(c.B, 0, 1)),
			ColorA: 1,
		}
	}
	r.vertices = append(r.vertices, projected[:]...)
	r.indices = append(r.indices, base, base+1, base+2, base, base+2, base+3)
}

func (r *BoxRenderSystem) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	screen.DrawTriangles(r.vertices, r.indices, whitePixel(), &ebiten.DrawTrianglesOptions{})
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

func vec(v component.Vec3) math32.Vector3 {
	return math32.Vec3(float32(v.X), float32(v.Y), float32(v.Z))
}

func toColor(c component.RGB) color.Color {
	to8 := func(v float64) uint8 {
		return uint8(common.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}
