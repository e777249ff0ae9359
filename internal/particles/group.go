// Package particles builds the point clouds of the scene and shades them per frame.
package particles

import (
	"fmt"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/config"
)

// Kind names a particle group.
type Kind int

const (
	Tree Kind = iota
	Ground
	Snow
	Star
)

// Kinds lists every group in draw order.
var Kinds = []Kind{Ground, Tree, Snow, Star}

func (k Kind) String() string {
	switch k {
	case Tree:
		return "tree"
	case Ground:
		return "ground"
	case Snow:
		return "snow"
	case Star:
		return "star"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Color is a linear RGB triple with channels in [0,1].
type Color struct {
	R, G, B float32
}

// Hex converts 0xRRGGBB.
func Hex(v uint32) Color {
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}
}

// Lerp mixes c toward o by t.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Group is one particle system. Every present attribute slice has Len entries.
// Groups are never edited in place; a parameter change builds a new one.
type Group struct {
	Kind       Kind
	Positions  []math32.Vector3
	Colors     []Color
	Sizes      []float32
	Velocities []math32.Vector3 // nil unless the kind moves particles
	Rotations  []float32        // nil unless the kind spins sprites
}

func newGroup(kind Kind, n int, velocities, rotations bool) *Group {
	g := &Group{
		Kind:      kind,
		Positions: make([]math32.Vector3, 0, n),
		Colors:    make([]Color, 0, n),
		Sizes:     make([]float32, 0, n),
	}
	if velocities {
		g.Velocities = make([]math32.Vector3, 0, n)
	}
	if rotations {
		g.Rotations = make([]float32, 0, n)
	}
	return g
}

// Len returns the particle count.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Positions)
}

// Validate reports a mismatch between attribute lengths.
func (g *Group) Validate() error {
	n := g.Len()
	if len(g.Colors) != n || len(g.Sizes) != n {
		return fmt.Errorf("%s: attribute length mismatch: positions %d colors %d sizes %d",
			g.Kind, n, len(g.Colors), len(g.Sizes))
	}
	if g.Velocities != nil && len(g.Velocities) != n {
		return fmt.Errorf("%s: %d velocities for %d particles", g.Kind, len(g.Velocities), n)
	}
	if g.Rotations != nil && len(g.Rotations) != n {
		return fmt.Errorf("%s: %d rotations for %d particles", g.Kind, len(g.Rotations), n)
	}
	return nil
}

// Generate builds the group of the given kind. The same params and a
// source seeded the same way give the same group.
func Generate(kind Kind, p config.Params, rng randx.Rand) *Group {
	switch kind {
	case Tree:
		return GenerateTree(p, rng)
	case Ground:
		return GenerateGround(p, rng)
	case Snow:
		return GenerateSnow(p, rng)
	case Star:
		return GenerateStar(p, rng)
	}
	return &Group{Kind: kind}
}

// PointSize returns the size uniform for kind.
func PointSize(kind Kind, p config.Params) float32 {
	switch kind {
	case Tree:
		return float32(p.ParticleSize)
	case Ground:
		return float32(p.GroundParticleSize)
	case Snow:
		return float32(p.SnowParticleSize)
	case Star:
		return float32(p.StarParticleSize)
	}
	return 1
}

// uniform returns a value in [lo, hi).
func uniform(rng randx.Rand, lo, hi float32) float32 {
	return lo + float32(rng.Float64())*(hi-lo)
}

// centered returns a value in [-w/2, w/2).
func centered(rng randx.Rand, w float32) float32 {
	return (float32(rng.Float64()) - 0.5) * w
}

func count(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
