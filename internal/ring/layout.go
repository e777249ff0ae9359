// Package ring places image panels on a rotating ring and runs the
// enlarge and restore animations of individual panels.
package ring

import (
	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/scene"
)

// Panel geometry in world units.
const (
	PanelWidth  = 3
	PanelHeight = 4
	Border      = 0.2
	TiltDegrees = 15
)

// Slot is the resting place of one panel on the ring.
type Slot struct {
	Angle float32 // around the ring, radians
	Yaw   float32 // about world Y, turns the face outward
	Tilt  float32 // about the panel's depth axis
	Pos   math32.Vector3
}

// Layout spaces n panels evenly on a circle of the given radius at the given
// height. Slot i sits at angle i*2π/n with its face pointing away from the
// center.
func Layout(n int, radius, height float32) []Slot {
	if n <= 0 {
		return nil
	}
	step := 2 * math32.Pi / float32(n)
	tilt := math32.DegToRad(TiltDegrees)
	slots := make([]Slot, n)
	for i := range slots {
		a := float32(i) * step
		x := math32.Cos(a) * radius
		z := math32.Sin(a) * radius
		slots[i] = Slot{
			Angle: a,
			Yaw:   math32.Atan2(x, z) + math32.Pi,
			Tilt:  tilt,
			Pos:   math32.Vec3(x, height, z),
		}
	}
	return slots
}

// Transform returns the ring-local transform of the slot.
func (s Slot) Transform() scene.Transform {
	return scene.Transform{
		Pos:   s.Pos,
		Rot:   scene.Euler(0, s.Yaw, s.Tilt),
		Scale: scene.Uniform(1),
	}
}

// FaceNormal is the direction the image side of a panel with rotation t
// looks toward. Panels show their image on local -Z.
func FaceNormal(t scene.Transform) math32.Vector3 {
	return t.Rotate(math32.Vec3(0, 0, -1))
}
