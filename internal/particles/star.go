package particles

import (
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/config"
)

const (
	StarRadius     = 1.5
	StarInnerRatio = 0.38
	StarLift       = 2.0
	starThickness  = 0.3
	starCoreRatio  = 0.35
	starWedgeShare = 0.6
)

var (
	starDeep   = Hex(0x0066ff)
	starBright = Hex(0x4a9eff)
)

// StarOutline returns the 5 outer and 5 inner vertices of the star in its
// own YZ plane, starting from the point on -Z.
func StarOutline() (outer, inner [5]math32.Vector3) {
	step := float32(2*math32.Pi) / 5
	for i := 0; i < 5; i++ {
		a := float32(i)*step - math32.Pi/2
		outer[i] = math32.Vec3(0, math32.Cos(a)*StarRadius, math32.Sin(a)*StarRadius)
		b := a + step/2
		inner[i] = math32.Vec3(0, math32.Cos(b)*StarRadius*StarInnerRatio, math32.Sin(b)*StarRadius*StarInnerRatio)
	}
	return
}

// WedgeCount returns how many of n star particles fill the point wedges;
// the remainder fill the central disk.
func WedgeCount(n int) int {
	return int(float64(count(n)) * starWedgeShare)
}

// StarCenter is the height of the star's center above the ground.
func StarCenter(p config.Params) float32 {
	return float32(p.TreeHeight) + StarLift
}

// GenerateStar fills the ten wedges of a five-point star and its core.
func GenerateStar(p config.Params, rng randx.Rand) *Group {
	n := count(p.StarParticleCount)
	g := newGroup(Star, n, false, true)
	outer, inner := StarOutline()
	wedges := WedgeCount(n)
	lift := StarCenter(p)
	size := float32(p.StarParticleSize)

	for i := 0; i < n; i++ {
		var pt math32.Vector3
		if i < wedges {
			var a, b, c math32.Vector3
			seg := rng.Intn(10)
			if seg < 5 {
				a, b, c = outer[seg], inner[seg], outer[(seg+1)%5]
			} else {
				k := seg - 5
				a, b, c = inner[k], outer[(k+1)%5], inner[(k+1)%5]
			}
			u := float32(rng.Float64())
			v := float32(rng.Float64())
			w := v
			if u+v > 1 {
				w = 1 - u
			}
			pt = a.MulScalar(1 - u - w).Add(b.MulScalar(u)).Add(c.MulScalar(w))
		} else {
			a := float32(rng.Float64()) * 2 * math32.Pi
			r := float32(rng.Float64()) * StarRadius * starCoreRatio
			pt = math32.Vec3(0, math32.Cos(a)*r, math32.Sin(a)*r)
		}
		pt.X = centered(rng, starThickness)
		pt.Y += lift
		g.Positions = append(g.Positions, pt)

		g.Colors = append(g.Colors, starDeep.Lerp(starBright, float32(rng.Float64())))
		g.Sizes = append(g.Sizes, size*uniform(rng, 0.7, 1.3))
		g.Rotations = append(g.Rotations, float32(rng.Float64())*2*math32.Pi)
	}
	return g
}
