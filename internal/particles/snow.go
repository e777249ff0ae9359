package particles

import (
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/config"
)

// Spawn volume, and the wrap box the shading stage recycles flakes through.
const (
	SnowArea   = 40
	SnowHeight = 30
	SnowWrapY  = 35
)

// GenerateSnow scatters flakes through the spawn volume, each with its own
// drift velocity.
func GenerateSnow(p config.Params, rng randx.Rand) *Group {
	n := count(p.SnowParticleCount)
	g := newGroup(Snow, n, true, true)
	size := float32(p.SnowParticleSize)

	for i := 0; i < n; i++ {
		g.Positions = append(g.Positions, math32.Vec3(
			centered(rng, SnowArea),
			float32(rng.Float64())*SnowHeight,
			centered(rng, SnowArea),
		))
		w := uniform(rng, 0.8, 1)
		g.Colors = append(g.Colors, Color{R: w, G: w, B: w})
		g.Sizes = append(g.Sizes, size*uniform(rng, 0.7, 1.3))
		g.Velocities = append(g.Velocities, math32.Vec3(
			centered(rng, 0.05),
			-float32(rng.Float64())*0.1-0.05,
			centered(rng, 0.05),
		))
		g.Rotations = append(g.Rotations, float32(rng.Float64())*2*math32.Pi)
	}
	return g
}
