package particles

import (
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/config"
)

var (
	treeDeep   = Hex(0x0066ff)
	treeBright = Hex(0x4a9eff)
	treeCyan   = Hex(0x00d4ff)
	trunkColor = Color{R: 0.2, G: 0.1, B: 0.05}
)

const (
	treeTopWidth   = 0.2
	treeNoise      = 0.3
	treeCyanFrom   = 0.7
	trunkShare     = 0.05
	trunkHeightPct = 0.15
	trunkWidthPct  = 0.1
)

// TrunkCount is the number of trunk particles added to a canopy of n.
func TrunkCount(n int) int {
	return int(float64(count(n)) * trunkShare)
}

// GenerateTree builds the canopy in layered bands plus a cylindrical trunk.
func GenerateTree(p config.Params, rng randx.Rand) *Group {
	n := count(p.ParticleCount)
	trunk := TrunkCount(n)
	g := newGroup(Tree, n+trunk, true, false)

	layers := p.Layers
	if layers <= 0 {
		layers = 1
	}
	height := float32(p.TreeHeight)
	base := float32(p.TreeWidth)
	top := base * treeTopWidth
	size := float32(p.ParticleSize)
	band := height / float32(layers)

	for i := 0; i < n; i++ {
		layer := float32(rng.Float64())
		scaled := layer * float32(layers)
		li := math32.Floor(scaled)
		progress := scaled - li
		frac := li / float32(layers)
		width := base - (base-top)*frac

		angle := float32(rng.Float64()) * 2 * math32.Pi
		r := math32.Sqrt(float32(rng.Float64())) * width
		noise := centered(rng, treeNoise)
		g.Positions = append(g.Positions, math32.Vec3(
			math32.Cos(angle)*r+noise,
			frac*height+progress*band,
			math32.Sin(angle)*r+noise,
		))

		c := treeDeep.Lerp(treeBright, layer)
		if layer > treeCyanFrom {
			c = c.Lerp(treeCyan, (layer-treeCyanFrom)/(1-treeCyanFrom))
		}
		g.Colors = append(g.Colors, c)
		g.Sizes = append(g.Sizes, size*uniform(rng, 0.5, 1)*(1-layer*0.3))
		g.Velocities = append(g.Velocities, math32.Vec3(
			centered(rng, 0.02),
			centered(rng, 0.01),
			centered(rng, 0.02),
		))
	}

	th := height * trunkHeightPct
	tw := base * trunkWidthPct
	for i := 0; i < trunk; i++ {
		y := centered(rng, th)
		angle := float32(rng.Float64()) * 2 * math32.Pi
		r := float32(rng.Float64()) * tw
		g.Positions = append(g.Positions, math32.Vec3(math32.Cos(angle)*r, y, math32.Sin(angle)*r))
		g.Colors = append(g.Colors, trunkColor)
		g.Sizes = append(g.Sizes, size*1.5)
		g.Velocities = append(g.Velocities, math32.Vector3{})
	}
	return g
}
