package scene

import (
	"cogentcore.org/core/math32"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin math32.Vector3
	Dir    math32.Vector3
}

// At returns the point at distance d along the ray.
func (r Ray) At(d float32) math32.Vector3 {
	return r.Origin.Add(r.Dir.MulScalar(d))
}

// IntersectRect intersects the ray with the rectangle of half extents hw, hh
// lying in the local XY plane of t. Both faces count as hits. It returns
// the distance along the ray.
func (r Ray) IntersectRect(t Transform, hw, hh float32) (float32, bool) {
	n := t.Rotate(math32.Vec3(0, 0, 1))
	denom := r.Dir.Dot(n)
	if math32.Abs(denom) < 1e-6 {
		return 0, false
	}
	d := t.Pos.Sub(r.Origin).Dot(n) / denom
	if d < 0 {
		return 0, false
	}
	hit := r.At(d).Sub(t.Pos)
	ax := t.Rotate(math32.Vec3(1, 0, 0))
	ay := t.Rotate(math32.Vec3(0, 1, 0))
	if math32.Abs(hit.Dot(ax)) > hw*t.Scale.X || math32.Abs(hit.Dot(ay)) > hh*t.Scale.Y {
		return 0, false
	}
	return d, true
}
