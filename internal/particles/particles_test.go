package particles

import (
	"testing"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-tree/internal/config"
)

func finite(v math32.Vector3) bool {
	for _, c := range []float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func TestTreeCounts(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20, 100, 5000} {
		p := config.DefaultParams()
		p.ParticleCount = n
		g := GenerateTree(p, randx.NewSysRand(1))
		require.NoError(t, g.Validate())
		assert.Equal(t, n+TrunkCount(n), g.Len(), "n=%d", n)
		assert.Len(t, g.Velocities, g.Len())
		assert.Nil(t, g.Rotations)
		for i := 0; i < g.Len(); i++ {
			assert.True(t, finite(g.Positions[i]))
			c := g.Colors[i]
			for _, ch := range []float32{c.R, c.G, c.B} {
				assert.GreaterOrEqual(t, ch, float32(0))
				assert.LessOrEqual(t, ch, float32(1))
			}
		}
	}
}

func TestTreeShape(t *testing.T) {
	p := config.DefaultParams()
	g := GenerateTree(p, randx.NewSysRand(7))
	n := p.ParticleCount
	for i := 0; i < n; i++ {
		pos := g.Positions[i]
		assert.GreaterOrEqual(t, pos.Y, float32(0))
		assert.Less(t, pos.Y, float32(p.TreeHeight)+1e-3)
		r := math32.Sqrt(pos.X*pos.X + pos.Z*pos.Z)
		assert.LessOrEqual(t, r, float32(p.TreeWidth)+0.3)
	}
	for i := n; i < g.Len(); i++ {
		assert.Equal(t, trunkColor, g.Colors[i])
		assert.LessOrEqual(t, math32.Abs(g.Positions[i].Y), float32(p.TreeHeight*trunkHeightPct/2))
	}
}

func TestZeroCountsAreEmpty(t *testing.T) {
	p := config.Params{Layers: 8}
	for _, k := range Kinds {
		g := Generate(k, p, randx.NewSysRand(3))
		require.NotNil(t, g)
		assert.Equal(t, 0, g.Len(), k.String())
		assert.NoError(t, g.Validate())
	}
}

func TestNegativeCountIsEmpty(t *testing.T) {
	p := config.DefaultParams()
	p.SnowParticleCount = -4
	assert.Equal(t, 0, GenerateSnow(p, randx.NewSysRand(1)).Len())
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := config.DefaultParams()
	p.ParticleCount = 300
	p.GroundParticleCount = 300
	p.SnowParticleCount = 300
	p.StarParticleCount = 300
	for _, k := range Kinds {
		a := Generate(k, p, randx.NewSysRand(99))
		b := Generate(k, p, randx.NewSysRand(99))
		assert.Equal(t, a, b, k.String())
	}
}

func TestGroundWithinReach(t *testing.T) {
	p := config.DefaultParams()
	g := GenerateGround(p, randx.NewSysRand(5))
	require.Equal(t, p.GroundParticleCount, g.Len())
	reach := GroundReach()
	for _, pos := range g.Positions {
		d := math32.Sqrt(pos.X*pos.X + pos.Z*pos.Z)
		assert.LessOrEqual(t, d, reach+1e-4)
		assert.LessOrEqual(t, math32.Abs(pos.Y), float32(groundHeightNoise/2))
	}
	assert.Equal(t, 14400, SpiralCount(p.GroundParticleCount))
}

func TestGroundSpiralGrowsOutward(t *testing.T) {
	p := config.DefaultParams()
	p.GroundParticleCount = 1000
	g := GenerateGround(p, randx.NewSysRand(5))
	first := g.Positions[0]
	last := g.Positions[SpiralCount(1000)-1]
	rf := math32.Sqrt(first.X*first.X + first.Z*first.Z)
	rl := math32.Sqrt(last.X*last.X + last.Z*last.Z)
	assert.Less(t, rf, float32(1))
	assert.Greater(t, rl, float32(groundMaxRadius-1))
}

func TestSnowInsideSpawnBox(t *testing.T) {
	p := config.DefaultParams()
	g := GenerateSnow(p, randx.NewSysRand(11))
	require.NoError(t, g.Validate())
	for i, pos := range g.Positions {
		assert.GreaterOrEqual(t, pos.X, float32(-SnowArea/2))
		assert.Less(t, pos.X, float32(SnowArea/2))
		assert.GreaterOrEqual(t, pos.Y, float32(0))
		assert.Less(t, pos.Y, float32(SnowHeight))
		assert.Less(t, g.Velocities[i].Y, float32(0), "flakes fall")
	}
}

func TestStarSplitAndBounds(t *testing.T) {
	p := config.DefaultParams()
	g := GenerateStar(p, randx.NewSysRand(2))
	require.Equal(t, p.StarParticleCount, g.Len())
	assert.Equal(t, 300, WedgeCount(p.StarParticleCount))

	center := StarCenter(p)
	for i, pos := range g.Positions {
		assert.LessOrEqual(t, math32.Abs(pos.X), float32(starThickness/2))
		r := math32.Sqrt((pos.Y-center)*(pos.Y-center) + pos.Z*pos.Z)
		if i < WedgeCount(g.Len()) {
			assert.LessOrEqual(t, r, float32(StarRadius)+1e-4)
		} else {
			assert.LessOrEqual(t, r, float32(StarRadius*starCoreRatio)+1e-4)
		}
	}
}

func TestStarOutlineAlternates(t *testing.T) {
	outer, inner := StarOutline()
	for i := 0; i < 5; i++ {
		assert.InDelta(t, StarRadius, outer[i].Length(), 1e-5)
		assert.InDelta(t, StarRadius*StarInnerRatio, inner[i].Length(), 1e-5)
	}
	// the first outer point sits on -Z
	assert.InDelta(t, 0, outer[0].Y, 1e-5)
	assert.InDelta(t, -StarRadius, outer[0].Z, 1e-5)
}

func TestStarOutlineSpacing(t *testing.T) {
	outer, inner := StarOutline()
	angle := func(v math32.Vector3) float32 { return math32.Atan2(v.Z, v.Y) }
	step := float32(2*math32.Pi) / 5
	for i := 0; i < 5; i++ {
		next := outer[(i+1)%5]
		// adjacent points are one fifth of a turn apart
		assert.InDelta(t, math32.Cos(step), outer[i].Normal().Dot(next.Normal()), 1e-5, "outer %d", i)
		// each inner point halves the gap to the next outer point
		assert.InDelta(t, math32.Cos(step/2), outer[i].Normal().Dot(inner[i].Normal()), 1e-5, "inner %d", i)
		assert.InDelta(t, math32.Cos(step/2), next.Normal().Dot(inner[i].Normal()), 1e-5, "inner %d", i)
		assert.InDelta(t, 0, inner[i].X, 1e-6)
	}
	assert.InDelta(t, -math32.Pi/2, angle(outer[0]), 1e-5)
}

func TestValidateCatchesMismatch(t *testing.T) {
	g := &Group{Kind: Snow, Positions: make([]math32.Vector3, 3), Colors: make([]Color, 3), Sizes: make([]float32, 2)}
	assert.Error(t, g.Validate())
	g.Sizes = append(g.Sizes, 1)
	assert.NoError(t, g.Validate())
	g.Rotations = []float32{1}
	assert.Error(t, g.Validate())
}

func TestHex(t *testing.T) {
	c := Hex(0xff8000)
	assert.InDelta(t, 1, c.R, 1e-6)
	assert.InDelta(t, 128.0/255, c.G, 1e-6)
	assert.InDelta(t, 0, c.B, 1e-6)
}
