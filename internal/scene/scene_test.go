package scene

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func assertVec(t *testing.T, want, got math32.Vector3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tol, msgAndArgs...)
}

func TestTransformApply(t *testing.T) {
	tr := Transform{Pos: math32.Vec3(1, 2, 3), Rot: Euler(0, math32.Pi/2, 0), Scale: Uniform(2)}
	// +X scaled to 2, turned a quarter about Y to -Z, then moved
	assertVec(t, math32.Vec3(1, 2, 1), tr.Apply(math32.Vec3(1, 0, 0)))
}

func TestComposeRelativeRoundTrip(t *testing.T) {
	parent := Transform{Pos: math32.Vec3(0, 1, 0), Rot: Euler(0, 0.7, 0), Scale: Uniform(1)}
	child := Transform{Pos: math32.Vec3(9.6, 7.5, 0), Rot: Euler(0, 1.2, 0.26), Scale: Uniform(1.5)}
	world := parent.Compose(child)
	back := parent.Relative(world)
	assert.True(t, back.ApproxEqual(child, tol), "got %+v want %+v", back, child)
}

func TestLerpEnds(t *testing.T) {
	a := Transform{Pos: math32.Vec3(0, 0, 0), Rot: Euler(0, 0, 0), Scale: Uniform(1)}
	b := Transform{Pos: math32.Vec3(4, 0, 0), Rot: Euler(0, 1, 0), Scale: Uniform(4)}
	assert.True(t, a.Lerp(b, 0).ApproxEqual(a, tol))
	assert.True(t, a.Lerp(b, 1).ApproxEqual(b, tol))
	mid := a.Lerp(b, 0.5)
	assertVec(t, math32.Vec3(2, 0, 0), mid.Pos)
	assertVec(t, Uniform(2.5), mid.Scale)
}

func TestNodeReparentKeepsWorld(t *testing.T) {
	root := NewNode("root")
	ring := NewNode("ring")
	root.Add(ring)
	ring.Local.Rot = Euler(0, 0.9, 0)

	p := NewNode("panel")
	ring.Add(p)
	p.Local.Pos = math32.Vec3(9.6, 7.5, 0)
	p.Local.Rot = Euler(0, 2, 0.26)
	before := p.World()

	p.Reparent(root)
	require.Equal(t, root, p.Parent())
	assert.Len(t, ring.Children(), 0)
	assert.Len(t, root.Children(), 2)
	assert.True(t, p.World().ApproxEqual(before, tol))

	p.Reparent(ring)
	assert.True(t, p.World().ApproxEqual(before, tol))
	assert.True(t, p.Local.ApproxEqual(Transform{Pos: math32.Vec3(9.6, 7.5, 0), Rot: Euler(0, 2, 0.26), Scale: Uniform(1)}, tol))
}

func TestNodeAddTwiceIsNoop(t *testing.T) {
	root := NewNode("root")
	c := NewNode("c")
	root.Add(c)
	root.Add(c)
	assert.Len(t, root.Children(), 1)
	assert.False(t, NewNode("other").Remove(c))
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera(math32.Vec3(0, 0, 10), 75, 0.1, 1000, 800, 600)
	sx, sy, depth, ok := cam.Project(math32.Vec3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 400, sx, tol)
	assert.InDelta(t, 300, sy, tol)
	assert.InDelta(t, 10, depth, tol)

	_, _, _, ok = cam.Project(math32.Vec3(0, 0, 20))
	assert.False(t, ok, "behind the camera")

	sx, sy, _, ok = cam.Project(math32.Vec3(1, 1, 0))
	require.True(t, ok)
	assert.Greater(t, sx, float32(400))
	assert.Less(t, sy, float32(300), "up is toward the top of the screen")
}

func TestCameraRayRoundTrip(t *testing.T) {
	cam := NewCamera(math32.Vec3(0, 8, 25), 75, 0.1, 1000, 1280, 720)
	p := math32.Vec3(3, 5, -2)
	sx, sy, _, ok := cam.Project(p)
	require.True(t, ok)
	r := cam.Ray(sx, sy)
	toP := p.Sub(cam.Pos).Normal()
	assertVec(t, toP, r.Dir)

	cam.Resize(640, 720)
	assert.InDelta(t, 640.0/720, cam.Aspect(), 1e-6)
}

func TestRayIntersectRect(t *testing.T) {
	r := Ray{Origin: math32.Vec3(0, 0, 10), Dir: math32.Vec3(0, 0, -1)}
	rect := Identity()
	d, ok := r.IntersectRect(rect, 1.6, 2.1)
	require.True(t, ok)
	assert.InDelta(t, 10, d, tol)

	rect.Pos = math32.Vec3(2, 0, 0)
	_, ok = r.IntersectRect(rect, 1.6, 2.1)
	assert.False(t, ok, "miss to the side")

	rect.Scale = Uniform(2)
	_, ok = r.IntersectRect(rect, 1.6, 2.1)
	assert.True(t, ok, "scaled rect reaches the ray")

	back := Ray{Origin: math32.Vec3(0, 0, 10), Dir: math32.Vec3(0, 0, 1)}
	_, ok = back.IntersectRect(Identity(), 1.6, 2.1)
	assert.False(t, ok, "rect behind the origin")
}

func TestOrbitLimits(t *testing.T) {
	cam := NewCamera(math32.Vec3(0, 8, 25), 75, 0.1, 1000, 1280, 720)
	o := NewOrbit(cam, 10, 50, math32.Pi/2.2, 0.05)
	for i := 0; i < 200; i++ {
		o.Zoom(10)
		o.Drag(0, -500, 720)
		o.Update(cam)
	}
	assert.InDelta(t, 10, cam.Pos.Sub(cam.Target).Length(), tol)
	assert.GreaterOrEqual(t, cam.Pos.Y, float32(0), "polar limit keeps the camera above ground")

	for i := 0; i < 200; i++ {
		o.Zoom(-10)
		o.Update(cam)
	}
	assert.InDelta(t, 50, o.Distance(), tol)
}

func TestOrbitStartsAtCamera(t *testing.T) {
	cam := NewCamera(math32.Vec3(0, 8, 25), 75, 0.1, 1000, 1280, 720)
	start := cam.Pos
	o := NewOrbit(cam, 10, 50, math32.Pi/2.2, 0.05)
	o.Update(cam)
	assertVec(t, start, cam.Pos)
}
