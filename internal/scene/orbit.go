package scene

import (
	"cogentcore.org/core/math32"
)

// minPolar keeps the camera off the pole where the up vector degenerates.
const minPolar = 1e-3

// Orbit moves a camera on a sphere around its target, with damped motion.
type Orbit struct {
	MinDist  float32
	MaxDist  float32
	MaxPolar float32
	Damping  float32

	theta, phi, radius float32
	dTheta, dPhi       float32
	scale              float32
}

// NewOrbit derives the orbit from the camera's current pose.
func NewOrbit(cam *Camera, minDist, maxDist, maxPolar, damping float32) *Orbit {
	off := cam.Pos.Sub(cam.Target)
	r := off.Length()
	o := &Orbit{
		MinDist:  minDist,
		MaxDist:  maxDist,
		MaxPolar: maxPolar,
		Damping:  damping,
		radius:   r,
		scale:    1,
	}
	if r > 0 {
		o.theta = math32.Atan2(off.X, off.Z)
		o.phi = math32.Acos(math32.Clamp(off.Y/r, -1, 1))
	}
	return o
}

// Drag rotates by a pointer movement of (dx, dy) pixels on a surface of the
// given height; a full-height drag is one turn.
func (o *Orbit) Drag(dx, dy float32, height int) {
	if height <= 0 {
		return
	}
	o.dTheta -= 2 * math32.Pi * dx / float32(height)
	o.dPhi -= 2 * math32.Pi * dy / float32(height)
}

// Zoom dollies in for positive wheel steps and out for negative ones.
func (o *Orbit) Zoom(steps float32) {
	o.scale *= math32.Pow(0.95, steps)
}

// Update advances the damped motion by one tick and places the camera.
func (o *Orbit) Update(cam *Camera) {
	o.theta += o.dTheta * o.Damping
	o.phi += o.dPhi * o.Damping
	o.phi = math32.Clamp(o.phi, minPolar, o.MaxPolar)
	o.radius = math32.Clamp(o.radius*o.scale, o.MinDist, o.MaxDist)

	o.dTheta *= 1 - o.Damping
	o.dPhi *= 1 - o.Damping
	o.scale = 1

	sp, cp := math32.Sincos(o.phi)
	st, ct := math32.Sincos(o.theta)
	cam.Pos = cam.Target.Add(math32.Vec3(o.radius*sp*st, o.radius*cp, o.radius*sp*ct))
}

// Distance returns the current orbit radius.
func (o *Orbit) Distance() float32 { return o.radius }
