package scene

import (
	"cogentcore.org/core/math32"
)

// Camera is a perspective camera looking from Pos at Target.
type Camera struct {
	Pos    math32.Vector3
	Target math32.Vector3
	Up     math32.Vector3

	FOV  float32 // vertical, degrees
	Near float32
	Far  float32

	Width  int
	Height int
}

// NewCamera returns a camera at pos looking at the origin.
func NewCamera(pos math32.Vector3, fov, near, far float32, width, height int) *Camera {
	return &Camera{
		Pos:    pos,
		Up:     math32.Vec3(0, 1, 0),
		FOV:    fov,
		Near:   near,
		Far:    far,
		Width:  width,
		Height: height,
	}
}

// Resize updates the output surface size, and with it the aspect ratio.
func (c *Camera) Resize(w, h int) {
	if w > 0 {
		c.Width = w
	}
	if h > 0 {
		c.Height = h
	}
}

// Aspect is width over height.
func (c *Camera) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Forward is the unit view direction.
func (c *Camera) Forward() math32.Vector3 {
	return c.Target.Sub(c.Pos).Normal()
}

// Position returns the eye position.
func (c *Camera) Position() math32.Vector3 { return c.Pos }

// Basis returns the forward, right and up unit vectors of the view.
func (c *Camera) Basis() (fwd, right, up math32.Vector3) {
	fwd = c.Forward()
	right = fwd.Cross(c.Up).Normal()
	up = right.Cross(fwd)
	return
}

func (c *Camera) focal() float32 {
	return 1 / math32.Tan(math32.DegToRad(c.FOV)/2)
}

// Project maps a world point to pixel coordinates. depth is the distance
// along the view direction; ok is false outside the near and far planes.
func (c *Camera) Project(p math32.Vector3) (sx, sy, depth float32, ok bool) {
	pr := c.Projector()
	return pr.Project(p)
}

// Projector captures the view basis so that many points can be projected
// without recomputing it.
type Projector struct {
	cam             *Camera
	fwd, right, up  math32.Vector3
	f, aspect, w, h float32
}

// Projector returns a Projector for the current camera pose.
func (c *Camera) Projector() Projector {
	fwd, right, up := c.Basis()
	return Projector{
		cam: c, fwd: fwd, right: right, up: up,
		f: c.focal(), aspect: c.Aspect(),
		w: float32(c.Width), h: float32(c.Height),
	}
}

// Project is Camera.Project for the captured pose.
func (pr *Projector) Project(p math32.Vector3) (sx, sy, depth float32, ok bool) {
	d := p.Sub(pr.cam.Pos)
	depth = d.Dot(pr.fwd)
	if depth < pr.cam.Near || depth > pr.cam.Far {
		return 0, 0, depth, false
	}
	nx := d.Dot(pr.right) * pr.f / (pr.aspect * depth)
	ny := d.Dot(pr.up) * pr.f / depth
	sx = (nx + 1) / 2 * pr.w
	sy = (1 - ny) / 2 * pr.h
	return sx, sy, depth, true
}

// Distance returns the eye distance of p.
func (pr *Projector) Distance(p math32.Vector3) float32 {
	return p.Sub(pr.cam.Pos).Length()
}

// PixelsPerUnit is the screen scale at the given depth.
func (pr *Projector) PixelsPerUnit(depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return pr.f * pr.h / 2 / depth
}

// Ray returns the world ray through pixel (x, y).
func (c *Camera) Ray(x, y float32) Ray {
	fwd, right, up := c.Basis()
	nx := x/float32(c.Width)*2 - 1
	ny := 1 - y/float32(c.Height)*2
	f := c.focal()
	dir := fwd.Add(right.MulScalar(nx * c.Aspect() / f)).Add(up.MulScalar(ny / f))
	return Ray{Origin: c.Pos, Dir: dir.Normal()}
}
