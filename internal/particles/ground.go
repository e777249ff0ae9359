package particles

import (
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/config"
)

const (
	groundSize        = 50
	groundMaxRadius   = groundSize * 0.5
	groundSpiralRatio = 0.9
	groundTurns       = 8
	groundRadiusNoise = 1.0
	groundAngleNoise  = 0.2
	groundScatter     = 10
	groundHeightNoise = 0.3
)

// GroundReach bounds the horizontal distance of any ground particle from
// the tree axis: the spiral radius plus the worst-case jitter of either
// placement.
func GroundReach() float32 {
	spiral := float32(groundRadiusNoise / 2)
	scatter := float32(groundScatter/2) * math32.Sqrt(2)
	return groundMaxRadius + math32.Max(spiral, scatter)
}

// SpiralCount returns how many of n ground particles lie on the spiral.
func SpiralCount(n int) int {
	return int(float64(count(n)) * groundSpiralRatio)
}

// GenerateGround lays most particles on an Archimedean spiral and scatters
// the rest over the disk.
func GenerateGround(p config.Params, rng randx.Rand) *Group {
	n := count(p.GroundParticleCount)
	g := newGroup(Ground, n, false, true)
	spiralF := float32(n) * groundSpiralRatio
	maxAngle := float32(groundTurns) * 2 * math32.Pi
	size := float32(p.GroundParticleSize)

	for i := 0; i < n; i++ {
		var x, z float32
		if float32(i) < spiralF {
			progress := float32(i) / spiralF
			r := math32.Max(0, progress*groundMaxRadius+centered(rng, groundRadiusNoise))
			a := progress*maxAngle + centered(rng, groundAngleNoise)
			x = math32.Cos(a) * r
			z = math32.Sin(a) * r
		} else {
			a := float32(rng.Float64()) * 2 * math32.Pi
			r := float32(rng.Float64()) * groundMaxRadius
			off := centered(rng, groundScatter)
			x = math32.Cos(a)*r + off
			z = math32.Sin(a)*r + off
		}
		g.Positions = append(g.Positions, math32.Vec3(x, centered(rng, groundHeightNoise), z))

		w := uniform(rng, 0.9, 1)
		g.Colors = append(g.Colors, Color{R: w, G: w, B: w})
		g.Sizes = append(g.Sizes, size*uniform(rng, 0.8, 1.2))
		g.Rotations = append(g.Rotations, float32(rng.Float64())*2*math32.Pi)
	}
	return g
}
