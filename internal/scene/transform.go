// Package scene holds the node graph, camera and picking math.
package scene

import (
	"cogentcore.org/core/math32"
)

// Transform is a translation, rotation and scale, applied scale first.
type Transform struct {
	Pos   math32.Vector3
	Rot   math32.Quat
	Scale math32.Vector3
}

// Identity returns the transform that changes nothing.
func Identity() Transform {
	return Transform{Rot: math32.NewQuat(0, 0, 0, 1), Scale: math32.Vec3(1, 1, 1)}
}

// Euler returns a rotation from XYZ-ordered Euler angles in radians.
func Euler(x, y, z float32) math32.Quat {
	return math32.NewQuatEuler(math32.Vec3(x, y, z))
}

// Uniform returns a scale vector with all components s.
func Uniform(s float32) math32.Vector3 {
	return math32.Vec3(s, s, s)
}

func conj(q math32.Quat) math32.Quat {
	return math32.NewQuat(-q.X, -q.Y, -q.Z, q.W)
}

func mulQuat(a, b math32.Quat) math32.Quat {
	var r math32.Quat
	r.MulQuats(a, b)
	return r
}

// Apply maps a point from the local space of t into its parent space.
func (t Transform) Apply(p math32.Vector3) math32.Vector3 {
	return p.Mul(t.Scale).MulQuat(t.Rot).Add(t.Pos)
}

// Rotate maps a direction from local into parent space, ignoring scale.
func (t Transform) Rotate(d math32.Vector3) math32.Vector3 {
	return d.MulQuat(t.Rot)
}

// Compose returns the transform of a child with local transform c under t.
// Scale is composed per component, which is exact for uniform scales.
func (t Transform) Compose(c Transform) Transform {
	return Transform{
		Pos:   t.Apply(c.Pos),
		Rot:   mulQuat(t.Rot, c.Rot),
		Scale: t.Scale.Mul(c.Scale),
	}
}

// Relative returns the local transform that, composed under t, yields w.
func (t Transform) Relative(w Transform) Transform {
	inv := conj(t.Rot)
	return Transform{
		Pos:   w.Pos.Sub(t.Pos).MulQuat(inv).Div(t.Scale),
		Rot:   mulQuat(inv, w.Rot),
		Scale: w.Scale.Div(t.Scale),
	}
}

// Lerp interpolates toward o by f: linear in position and scale, spherical
// in rotation.
func (t Transform) Lerp(o Transform, f float32) Transform {
	r := t.Rot
	r.Slerp(o.Rot, f)
	return Transform{
		Pos:   lerpVec(t.Pos, o.Pos, f),
		Rot:   r,
		Scale: lerpVec(t.Scale, o.Scale, f),
	}
}

// ApproxEqual compares component-wise within tol. Rotations q and -q are
// the same orientation.
func (t Transform) ApproxEqual(o Transform, tol float32) bool {
	if !vecNear(t.Pos, o.Pos, tol) || !vecNear(t.Scale, o.Scale, tol) {
		return false
	}
	d := t.Rot.X*o.Rot.X + t.Rot.Y*o.Rot.Y + t.Rot.Z*o.Rot.Z + t.Rot.W*o.Rot.W
	return math32.Abs(d) >= 1-tol
}

func lerpVec(a, b math32.Vector3, f float32) math32.Vector3 {
	return a.Add(b.Sub(a).MulScalar(f))
}

func vecNear(a, b math32.Vector3, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol && math32.Abs(a.Y-b.Y) <= tol && math32.Abs(a.Z-b.Z) <= tol
}
