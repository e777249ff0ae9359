package particles

import (
	"cogentcore.org/core/math32"
)

// FadeDistance is the view distance at which particles vanish.
const FadeDistance = 50

// Sample is one particle after shading, in group-local space.
type Sample struct {
	Pos     math32.Vector3
	Spin    float32 // sprite rotation in texture space
	Opacity float32 // before distance fade
}

// Style describes the sprite falloff of a kind: alpha is (1-2d)^Exponent at
// normalized sprite radius d, and color is boosted by up to 1+Glow at the center.
type Style struct {
	Exponent float32
	Glow     float32
}

// StyleOf returns the sprite style of kind.
func StyleOf(kind Kind) Style {
	switch kind {
	case Ground:
		return Style{Exponent: 0.7, Glow: 1.5}
	case Snow:
		return Style{Exponent: 0.6, Glow: 1.2}
	case Star, Tree:
		return Style{Exponent: 0.5, Glow: 2.0}
	}
	return Style{Exponent: 1, Glow: 1}
}

// Shade evaluates particle i of g at elapsed time t seconds. It depends only
// on t and the particle's own attributes.
func Shade(g *Group, i int, t float32) Sample {
	p := g.Positions[i]
	s := Sample{Pos: p, Opacity: 1}
	var rot float32
	if g.Rotations != nil {
		rot = g.Rotations[i]
	}
	switch g.Kind {
	case Tree:
		s.Pos.X += math32.Sin(t*0.5+p.Y*0.1) * 0.1
		s.Pos.Z += math32.Cos(t*0.5+p.Y*0.1) * 0.1
		s.Pos.Y += math32.Sin(t*0.3+p.X*0.1) * 0.05
	case Ground:
		s.Pos.Y += math32.Sin(t*0.3+p.X*0.1+p.Z*0.1) * 0.1
		s.Spin = rot + t*0.5
	case Snow:
		s.Pos = SnowDrift(p, g.Velocities[i], t)
		s.Spin = rot + t*2
		s.Opacity = 0.8
	case Star:
		s.Pos.Y += math32.Sin(t*2+p.X*0.5) * 0.1
		s.Spin = rot + t*1.5
	}
	return s
}

// ShadeAll shades every particle of g into dst, reusing its storage.
func ShadeAll(g *Group, t float32, dst []Sample) []Sample {
	dst = dst[:0]
	for i := 0; i < g.Len(); i++ {
		dst = append(dst, Shade(g, i, t))
	}
	return dst
}

// SnowDrift moves a flake along its velocity and recycles it through the
// wrap box, then swirls the whole field about the vertical axis.
func SnowDrift(p, vel math32.Vector3, t float32) math32.Vector3 {
	move := Wrap(t*10, 100)
	p = p.Add(vel.MulScalar(move))
	p.Y = Wrap(p.Y+SnowWrapY, SnowWrapY)
	p.X = Wrap(p.X+SnowArea/2, SnowArea) - SnowArea/2
	p.Z = Wrap(p.Z+SnowArea/2, SnowArea) - SnowArea/2

	sn, cs := math32.Sincos(t * 0.3)
	return math32.Vec3(p.X*cs-p.Z*sn, p.Y, p.X*sn+p.Z*cs)
}

// Wrap returns v modulo m in [0, m), wrapping negative values around.
func Wrap(v, m float32) float32 {
	r := v - m*math32.Floor(v/m)
	if r >= m {
		r -= m
	}
	return r
}

// Fade is the opacity multiplier at view distance d: a linear ramp from 1
// at the eye to 0 at FadeDistance.
func Fade(d float32) float32 {
	return math32.Clamp(1-d/FadeDistance, 0, 1)
}

// ProjectedSize returns the on-screen sprite diameter in pixels.
func ProjectedSize(size, pointSize, pointScale, d float32) float32 {
	if d <= 0 {
		return 0
	}
	return size * pointSize * pointScale / d
}
