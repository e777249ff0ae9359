package game

import (
	"image"
	"image/color"
	"math"
	"sort"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-tree/internal/config"
	"github.com/iburimskiy/particle-tree/internal/particles"
	"github.com/iburimskiy/particle-tree/internal/ring"
	"github.com/iburimskiy/particle-tree/internal/scene"
)

const (
	spriteSize = 64
	// panelGrid subdivides textured quads so affine mapping stays close to
	// perspective and near-plane clipping drops small cells only.
	panelGrid  = 4
	groundGrid = 12
)

var (
	additive = &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		Blend:          ebiten.BlendLighter,
	}
	blended = &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		Filter:         ebiten.FilterLinear,
	}
)

// rgbaf is a premultiplied vertex color.
type rgbaf [4]float32

// batch accumulates triangles for one DrawTriangles call. Indices are 16
// bit, so a batch is flushed before it would overflow them.
type batch struct {
	vs []ebiten.Vertex
	is []uint16
}

func (b *batch) reset() {
	b.vs = b.vs[:0]
	b.is = b.is[:0]
}

// room reports whether n more vertices fit.
func (b *batch) room(n int) bool {
	return len(b.vs)+n <= math.MaxUint16
}

func (b *batch) vertex(x, y, sx, sy float32, c rgbaf) {
	b.vs = append(b.vs, ebiten.Vertex{
		DstX: x, DstY: y,
		SrcX: sx, SrcY: sy,
		ColorR: c[0], ColorG: c[1], ColorB: c[2], ColorA: c[3],
	})
}

// sprite adds a square of half size h centered on (cx, cy), turned by spin,
// sampling the whole spriteSize texture.
func (b *batch) sprite(cx, cy, h, spin float32, c rgbaf) {
	base := uint16(len(b.vs))
	sn, cs := math32.Sincos(spin)
	corners := [4][2]float32{{-h, -h}, {h, -h}, {h, h}, {-h, h}}
	src := [4][2]float32{{0, 0}, {spriteSize, 0}, {spriteSize, spriteSize}, {0, spriteSize}}
	for i, p := range corners {
		x := p[0]*cs - p[1]*sn
		y := p[0]*sn + p[1]*cs
		b.vertex(cx+x, cy+y, src[i][0], src[i][1], c)
	}
	b.is = append(b.is, base, base+1, base+2, base, base+2, base+3)
}

func (b *batch) flush(dst, src *ebiten.Image, op *ebiten.DrawTrianglesOptions) {
	if len(b.is) > 0 {
		dst.DrawTriangles(b.vs, b.is, src, op)
	}
	b.reset()
}

// spritePixels renders the point sprite of a style: alpha falls off as
// (1-2d)^Exponent and brightness peaks at the center, scaled so the peak
// is 1. The result is premultiplied.
func spritePixels(style particles.Style, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float32(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) + 0.5 - half) / float32(size)
			dy := (float32(y) + 0.5 - half) / float32(size)
			d := math32.Sqrt(dx*dx + dy*dy)
			if d > 0.5 {
				continue
			}
			core := 1 - 2*d
			a := math32.Pow(core, style.Exponent)
			v := a * (1 + core*style.Glow) / (1 + style.Glow)
			img.SetRGBA(x, y, color.RGBA{R: u8(v), G: u8(v), B: u8(v), A: u8(a)})
		}
	}
	return img
}

func u8(v float32) uint8 {
	return uint8(math32.Clamp(v, 0, 1)*255 + 0.5)
}

// tint is the vertex color of a particle: its color brightened by the
// sprite glow and scaled by opacity.
func tint(c particles.Color, style particles.Style, opacity, boost float32) rgbaf {
	k := (1 + style.Glow*boost) * opacity
	return rgbaf{
		math32.Min(c.R*k, 1),
		math32.Min(c.G*k, 1),
		math32.Min(c.B*k, 1),
		math32.Clamp(opacity, 0, 1),
	}
}

// particleQuads shades g at time t and appends one sprite per visible
// particle. flush is called whenever the batch is full.
func particleQuads(b *batch, pr *scene.Projector, g *particles.Group, node scene.Transform,
	pointSize, pointScale, t, boost float32, samples []particles.Sample, flush func()) []particles.Sample {
	style := particles.StyleOf(g.Kind)
	samples = particles.ShadeAll(g, t, samples)
	for i, s := range samples {
		p := node.Apply(s.Pos)
		sx, sy, depth, ok := pr.Project(p)
		if !ok {
			continue
		}
		opacity := s.Opacity * particles.Fade(pr.Distance(p))
		if opacity <= 0 {
			continue
		}
		size := particles.ProjectedSize(g.Sizes[i], pointSize, pointScale, depth)
		if size < 0.5 {
			continue
		}
		if !b.room(4) {
			flush()
		}
		b.sprite(sx, sy, size/2, s.Spin, tint(g.Colors[i], style, opacity, boost))
	}
	return samples
}

// plane appends a (grid x grid)-cell mesh of the rectangle of half extents
// hw, hh in the local XY plane of t. The texture region src is mapped with
// its left edge on local +X and its top on local +Y, which reads correctly
// from the -Z side. Cells with a corner outside the view are dropped.
func plane(b *batch, pr *scene.Projector, t scene.Transform, hw, hh float32, grid int,
	src image.Rectangle, c rgbaf, fog bool) {
	n := grid + 1
	if !b.room(n * n) {
		return
	}
	base := len(b.vs)
	ok := make([]bool, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			u := float32(i) / float32(grid)
			v := float32(j) / float32(grid)
			p := t.Apply(math32.Vec3(hw-2*hw*u, hh-2*hh*v, 0))
			sx, sy, _, visible := pr.Project(p)
			ok[j*n+i] = visible
			vc := c
			if fog {
				f := fogFactor(pr.Distance(p))
				vc = rgbaf{c[0] * f, c[1] * f, c[2] * f, c[3]}
			}
			b.vertex(sx, sy,
				float32(src.Min.X)+u*float32(src.Dx()),
				float32(src.Min.Y)+v*float32(src.Dy()), vc)
		}
	}
	for j := 0; j < grid; j++ {
		for i := 0; i < grid; i++ {
			k := j*n + i
			if !ok[k] || !ok[k+1] || !ok[k+n] || !ok[k+n+1] {
				continue
			}
			a := uint16(base + k)
			b.is = append(b.is, a, a+1, a+uint16(n+1), a, a+uint16(n+1), a+uint16(n))
		}
	}
}

// depthOrder returns the panels sorted far to near.
func depthOrder(pr *scene.Projector, panels []*ring.Panel) []*ring.Panel {
	out := append([]*ring.Panel(nil), panels...)
	sort.SliceStable(out, func(i, j int) bool {
		return pr.Distance(out[i].Node.World().Pos) > pr.Distance(out[j].Node.World().Pos)
	})
	return out
}

// groundTransform lays the local XY plane flat at height y.
func groundTransform(y, size float32) scene.Transform {
	return scene.Transform{
		Pos:   math32.Vec3(0, y, 0),
		Rot:   scene.Euler(-math32.Pi/2, 0, 0),
		Scale: scene.Uniform(size / 2),
	}
}

// borderColor is the translucent frame behind each image.
func borderColor() rgbaf {
	c := particles.Hex(0x4a9eff)
	const a = 0.3
	return rgbaf{c.R * a, c.G * a, c.B * a, a}
}

var (
	// whiteSrc is the inner pixel of the 3x3 white image, clear of edge bleed.
	whiteSrc    = image.Rect(1, 1, 2, 2)
	opaque      = rgbaf{1, 1, 1, 1}
	placeholder = func() rgbaf {
		c := particles.Hex(0x1a2a3a)
		return rgbaf{c.R, c.G, c.B, 1}
	}()
	groundColor = func() rgbaf {
		c := particles.Hex(0x0a0a1a)
		return rgbaf{c.R, c.G, c.B, 1}
	}()
	glowColor = func() rgbaf {
		c := particles.Hex(0x4a9eff)
		const a = 0.1
		return rgbaf{c.R * a, c.G * a, c.B * a, a}
	}()
	background = color.RGBA{R: config.Background >> 16, G: config.Background >> 8 & 0xff, B: config.Background & 0xff, A: 255}
)
