package ring

import (
	"fmt"
	"testing"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-tree/internal/scene"
)

const tol = 1e-4

type viewer struct {
	pos, fwd math32.Vector3
}

func (v viewer) Position() math32.Vector3 { return v.pos }
func (v viewer) Forward() math32.Vector3  { return v.fwd }

func camera() viewer {
	pos := math32.Vec3(0, 8, 25)
	return viewer{pos: pos, fwd: math32.Vec3(0, 0, 0).Sub(pos).Normal()}
}

func testOptions() Options {
	return Options{
		Radius:   9.6,
		Height:   7.5,
		Duration: 600 * time.Millisecond,
		Distance: 8,
		Scale:    4,
		MaxCount: 20,
	}
}

func newController(t *testing.T, n int) *Controller {
	t.Helper()
	assets := make([]string, n)
	for i := range assets {
		assets[i] = fmt.Sprintf("image/%02d.jpg", i)
	}
	return NewController(scene.NewNode("root"), assets, testOptions(), nil)
}

// rayAt aims at the center of p from outside, along its face normal.
func rayAt(p *Panel) scene.Ray {
	w := p.Node.World()
	n := FaceNormal(w)
	return scene.Ray{Origin: w.Pos.Add(n.MulScalar(5)), Dir: n.MulScalar(-1)}
}

func forwardCount(c *Controller) int {
	k := 0
	for _, p := range c.Panels() {
		if p.Forward() {
			k++
		}
	}
	return k
}

func TestLayoutAngles(t *testing.T) {
	for _, n := range []int{1, 2, 5, 20} {
		slots := Layout(n, 9.6, 7.5)
		require.Len(t, slots, n)
		step := 2 * math32.Pi / float32(n)
		for i, s := range slots {
			assert.InDelta(t, float32(i)*step, s.Angle, 1e-5)
			if i > 0 {
				assert.Greater(t, s.Angle, slots[i-1].Angle)
			}
			assert.Less(t, s.Angle, float32(2*math32.Pi))
			assert.InDelta(t, 7.5, s.Pos.Y, 1e-6)
			assert.InDelta(t, 9.6, math32.Sqrt(s.Pos.X*s.Pos.X+s.Pos.Z*s.Pos.Z), 1e-4)
			assert.InDelta(t, math32.DegToRad(TiltDegrees), s.Tilt, 1e-6)
		}
	}
	assert.Nil(t, Layout(0, 9.6, 7.5))
}

func TestLayoutFacesOutward(t *testing.T) {
	for _, s := range Layout(20, 9.6, 7.5) {
		radial := math32.Vec3(s.Pos.X, 0, s.Pos.Z).Normal()
		n := FaceNormal(s.Transform())
		assert.Greater(t, n.Dot(radial), float32(0.9), "slot at %v", s.Angle)
	}
}

func TestControllerCapsPanels(t *testing.T) {
	c := newController(t, 25)
	assert.Len(t, c.Panels(), 20)
	assert.Len(t, c.Ring.Children(), 20)
	assert.Equal(t, "image/19.jpg", c.Panels()[19].Asset)
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, float32(0), EaseOutCubic(0))
	assert.Equal(t, float32(1), EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-6)
}

func TestPickNearest(t *testing.T) {
	c := newController(t, 20)
	p := c.Panels()[3]
	assert.Equal(t, p, c.Pick(rayAt(p)))

	miss := scene.Ray{Origin: math32.Vec3(0, 100, 0), Dir: math32.Vec3(0, 1, 0)}
	assert.Nil(t, c.Pick(miss))
}

func TestEnlargeRestoreScenario(t *testing.T) {
	c := newController(t, 20)
	v := camera()
	p := c.Panels()[3]
	original := p.Node.Local
	t0 := time.Unix(1000, 0)

	require.Equal(t, p, c.Click(rayAt(p), v, t0))
	assert.Equal(t, StateEnlarging, p.State)
	assert.Equal(t, p, c.Active())
	saved, ok := p.Saved()
	require.True(t, ok)
	assert.Equal(t, original, saved)

	c.Spin(0.01)
	c.Tick(t0.Add(300 * time.Millisecond))
	assert.Equal(t, StateEnlarging, p.State)
	assert.Equal(t, c.Ring, p.Node.Parent())

	c.Spin(0.01)
	c.Tick(t0.Add(600 * time.Millisecond))
	assert.Equal(t, StateEnlarged, p.State)
	assert.Equal(t, c.Root, p.Node.Parent(), "enlarged panels leave the ring")
	assert.True(t, p.Node.World().ApproxEqual(p.Target(), tol))

	// the target faces the camera with no pitch or roll
	toCam := v.pos.Sub(p.Target().Pos).Normal()
	assert.Greater(t, FaceNormal(p.Target()).Dot(toCam), float32(0.9))
	up := p.Target().Rotate(math32.Vec3(0, 1, 0))
	assert.InDelta(t, 1, up.Y, 1e-5)
	assertVecNear(t, v.pos.Add(v.fwd.MulScalar(8)), p.Target().Pos)

	// ring spin no longer drags it
	before := p.Node.World()
	c.Spin(0.5)
	assert.True(t, p.Node.World().ApproxEqual(before, tol))

	t1 := t0.Add(2 * time.Second)
	hit := c.Click(scene.Ray{Origin: v.pos, Dir: v.fwd}, v, t1)
	require.Equal(t, p, hit)
	assert.Equal(t, StateRestoring, p.State)
	assert.Nil(t, c.Active())

	c.Spin(0.2)
	c.Tick(t1.Add(599 * time.Millisecond))
	assert.Equal(t, StateRestoring, p.State)
	c.Spin(0.2)
	c.Tick(t1.Add(600 * time.Millisecond))
	assert.Equal(t, StateRing, p.State)
	assert.Equal(t, c.Ring, p.Node.Parent())
	assert.Equal(t, original, p.Node.Local, "restore reproduces the exact ring transform")
	_, ok = p.Saved()
	assert.False(t, ok)
	assert.False(t, p.Animating())
}

func TestEnlargedPanelMovesToRoot(t *testing.T) {
	c := newController(t, 6)
	v := camera()
	p := c.Panels()[2]
	t0 := time.Unix(0, 0)

	c.Enlarge(p, v, t0)
	c.Tick(t0.Add(599 * time.Millisecond))
	require.Equal(t, c.Ring, p.Node.Parent())
	near := p.Node.World()
	assert.True(t, near.ApproxEqual(p.Target(), 1e-3), "the last step lands next to the target")

	c.Tick(t0.Add(600 * time.Millisecond))
	assert.Equal(t, c.Root, p.Node.Parent())
	assert.Len(t, c.Ring.Children(), 5)
	assert.Contains(t, c.Root.Children(), p.Node)
	assert.True(t, p.Node.World().ApproxEqual(p.Target(), tol))
	assert.True(t, p.Node.Local.ApproxEqual(p.Target(), tol), "under the root, local is world")
}

func TestOnlyOneForward(t *testing.T) {
	c := newController(t, 20)
	v := camera()
	a, b := c.Panels()[0], c.Panels()[10]
	bOriginal := b.Node.Local
	t0 := time.Unix(0, 0)

	c.Click(rayAt(b), v, t0)
	c.Tick(t0.Add(time.Second))
	require.Equal(t, StateEnlarged, b.State)

	c.Click(rayAt(a), v, t0.Add(2*time.Second))
	assert.Equal(t, StateRing, b.State, "B snaps back at once")
	assert.Equal(t, bOriginal, b.Node.Local)
	assert.Equal(t, c.Ring, b.Node.Parent())
	assert.Equal(t, StateEnlarging, a.State)
	assert.Equal(t, 1, forwardCount(c))

	c.Tick(t0.Add(3 * time.Second))
	assert.Equal(t, StateEnlarged, a.State)
	assert.Equal(t, a, c.Active())
	assert.Equal(t, 1, forwardCount(c))
}

func TestSwitchWhileEnlarging(t *testing.T) {
	c := newController(t, 8)
	v := camera()
	a, b := c.Panels()[1], c.Panels()[5]
	aOriginal := a.Node.Local
	t0 := time.Unix(0, 0)

	c.Enlarge(a, v, t0)
	c.Tick(t0.Add(100 * time.Millisecond))
	c.Enlarge(b, v, t0.Add(200*time.Millisecond))

	assert.Equal(t, StateRing, a.State)
	assert.Equal(t, aOriginal, a.Node.Local)
	assert.Equal(t, b, c.Active())
	for i := 0; i < 10; i++ {
		c.Tick(t0.Add(time.Duration(200+i*100) * time.Millisecond))
		assert.LessOrEqual(t, forwardCount(c), 1)
	}
	assert.Equal(t, StateEnlarged, b.State)
}

func TestClickWhileAnimatingIsIgnored(t *testing.T) {
	c := newController(t, 4)
	v := camera()
	p := c.Panels()[2]
	t0 := time.Unix(0, 0)
	c.Enlarge(p, v, t0)
	saved, _ := p.Saved()

	c.Toggle(p, v, t0.Add(100*time.Millisecond))
	assert.Equal(t, StateEnlarging, p.State)
	again, _ := p.Saved()
	assert.Equal(t, saved, again, "saved transform is captured once per cycle")
}

func TestRestoreWithoutSavedTransform(t *testing.T) {
	c := newController(t, 4)
	v := camera()
	other := c.Panels()[0]
	p := c.Panels()[1]
	t0 := time.Unix(0, 0)

	c.Enlarge(other, v, t0)
	otherLocal := other.Node.Local

	p.State = StateEnlarged
	err := c.Restore(p, t0)
	assert.True(t, errors.Is(err, ErrNoSavedTransform))
	assert.Equal(t, StateEnlarged, p.State)
	assert.False(t, p.Animating())
	assert.Equal(t, StateEnlarging, other.State, "other panels are untouched")
	assert.Equal(t, otherLocal, other.Node.Local)
	assert.Equal(t, other, c.Active())

	assert.True(t, errors.Is(c.Snap(p), ErrNoSavedTransform))
}

func TestDetach(t *testing.T) {
	c := newController(t, 4)
	c.Enlarge(c.Panels()[0], camera(), time.Unix(0, 0))
	c.Tick(time.Unix(5, 0))
	require.Len(t, c.Root.Children(), 2)
	c.Detach()
	assert.Empty(t, c.Root.Children())
	assert.Nil(t, c.Active())
}

func assertVecNear(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}
