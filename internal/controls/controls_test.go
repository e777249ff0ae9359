package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-tree/internal/config"
	"github.com/iburimskiy/particle-tree/internal/particles"
)

func newSurface() *Surface {
	return New(config.DefaultParams(), nil)
}

func TestNames(t *testing.T) {
	var names []string
	for _, c := range newSurface().Controls() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"particles", "rotation", "tree-size", "ground-size", "snow-size", "star-size"}, names)
}

func TestCountChangeRegenerates(t *testing.T) {
	s := newSurface()
	ch, ok := s.Set("particles", 8000)
	require.True(t, ok)
	assert.Equal(t, Regenerate, ch.Effect)
	assert.Equal(t, particles.Tree, ch.Kind)
	assert.Equal(t, 8000, s.Params().ParticleCount)
}

func TestSizeChangeOnlyTouchesUniform(t *testing.T) {
	s := newSurface()
	before := s.Params()

	ch, ok := s.Set("snow-size", 2.5)
	require.True(t, ok)
	assert.Equal(t, Uniform, ch.Effect)
	assert.Equal(t, particles.Snow, ch.Kind)
	assert.InDelta(t, 2.5, s.Params().SnowParticleSize, 1e-9)
	assert.Equal(t, before.ParticleCount, s.Params().ParticleCount)

	ch, _ = s.Set("rotation", 2)
	assert.Equal(t, Speed, ch.Effect)
}

func TestUnknownNameIsNoop(t *testing.T) {
	s := newSurface()
	before := s.Params()
	ch, ok := s.Set("bogus", 3)
	assert.False(t, ok)
	assert.Equal(t, None, ch.Effect)
	assert.Equal(t, before, s.Params())

	_, ok = s.Nudge("bogus", 1)
	assert.False(t, ok)
	_, ok = s.Value("bogus")
	assert.False(t, ok)
}

func TestSameValueReportsNone(t *testing.T) {
	s := newSurface()
	ch, ok := s.Set("tree-size", 2.0)
	assert.True(t, ok)
	assert.Equal(t, None, ch.Effect)
}

func TestClampAndSnap(t *testing.T) {
	s := newSurface()
	s.Set("particles", 1e9)
	assert.Equal(t, 20000, s.Params().ParticleCount)
	s.Set("particles", -5)
	assert.Equal(t, 1000, s.Params().ParticleCount)
	s.Set("particles", 5240)
	assert.Equal(t, 5000, s.Params().ParticleCount)

	s.Set("star-size", 1.23)
	assert.Equal(t, 1.2, s.Params().StarParticleSize)
}

func TestNudgeAndFraction(t *testing.T) {
	s := newSurface()
	s.Nudge("particles", 2)
	assert.Equal(t, 6000, s.Params().ParticleCount)

	s.SetFraction("ground-size", 1)
	assert.Equal(t, 5.0, s.Params().GroundParticleSize)
	assert.InDelta(t, 1, s.Fraction("ground-size"), 1e-9)
	assert.Equal(t, 0.0, s.Fraction("bogus"))
}

func TestReset(t *testing.T) {
	s := newSurface()
	s.Set("particles", 12000)
	s.Set("tree-size", 4)
	s.Set("rotation", 3)

	changes := s.Reset()
	assert.Len(t, changes, 3)
	def := config.DefaultParams()
	assert.Equal(t, def.ParticleCount, s.Params().ParticleCount)
	assert.Equal(t, def.ParticleSize, s.Params().ParticleSize)
	assert.Equal(t, def.RotationSpeed, s.Params().RotationSpeed)
	assert.Empty(t, s.Reset(), "a second reset changes nothing")
}

func TestSelectWraps(t *testing.T) {
	s := newSurface()
	assert.Equal(t, "particles", s.Selected().Name)
	assert.Equal(t, "star-size", s.Select(-1).Name)
	assert.Equal(t, "particles", s.Select(1).Name)
	assert.Equal(t, "tree-size", s.Select(8).Name)
}
