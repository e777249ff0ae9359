package game

import (
	"log/slog"
	"time"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/config"
	"github.com/iburimskiy/particle-tree/internal/particles"
	"github.com/iburimskiy/particle-tree/internal/ring"
	"github.com/iburimskiy/particle-tree/internal/scene"
)

// world is everything that is simulated: the particle groups, the scene
// graph, the image ring and the camera. It has no graphics state.
type world struct {
	root   *scene.Node
	nodes  [4]*scene.Node // one per particles.Kind
	groups [4]*particles.Group

	ring   *ring.Controller
	camera *scene.Camera
	orbit  *scene.Orbit

	seed int64
	spin [4]float32
	log  *slog.Logger
}

func newWorld(p config.Params, seed int64, width, height int, log *slog.Logger) *world {
	cam := scene.NewCamera(math32.Vec3(0, 8, 25), config.CameraFOV, config.CameraNear, config.CameraFar, width, height)
	w := &world{
		root:   scene.NewNode("root"),
		camera: cam,
		orbit: scene.NewOrbit(cam, config.CameraDistMin, config.CameraDistMax,
			math32.Pi/2.2, config.CameraDamping),
		seed: seed,
		log:  log,
	}
	for _, k := range particles.Kinds {
		w.nodes[k] = scene.NewNode(k.String())
		w.root.Add(w.nodes[k])
		w.regenerate(k, p)
	}
	return w
}

// rng returns the source for kind. Each kind has its own stream so that
// regenerating one group leaves the others as they were.
func (w *world) rng(k particles.Kind) randx.Rand {
	return randx.NewSysRand(w.seed + int64(k)*7919)
}

// regenerate replaces the group of kind wholesale.
func (w *world) regenerate(k particles.Kind, p config.Params) {
	start := time.Now()
	g := particles.Generate(k, p, w.rng(k))
	if err := g.Validate(); err != nil {
		w.log.Error("generated group is inconsistent", "kind", k, "err", err)
		return
	}
	w.groups[k] = g
	w.log.Debug("particles generated", "kind", k, "count", g.Len(), "took", time.Since(start))
}

// buildRing replaces the image ring with one holding assets.
func (w *world) buildRing(assets []string, p config.Params) {
	if w.ring != nil {
		w.ring.Detach()
	}
	w.ring = ring.NewController(w.root, assets, ring.Options{
		Radius:   float32(p.TreeWidth) * 1.2,
		Height:   float32(p.TreeHeight) * 0.5,
		Duration: config.EnlargeMs * time.Millisecond,
		Distance: config.EnlargeDist,
		Scale:    config.EnlargeScale,
		MaxCount: config.MaxImages,
	}, w.log)
}

// step advances the spinning parts by dt seconds and the panel animations
// to now.
func (w *world) step(dt float32, speed float64, now time.Time) {
	rates := [4]float32{
		particles.Tree:   config.TreeSpin * float32(speed),
		particles.Ground: 0,
		particles.Snow:   config.SnowSpin,
		particles.Star:   config.StarSpin,
	}
	for k, r := range rates {
		if r == 0 {
			continue
		}
		w.spin[k] = math32.Mod(w.spin[k]+r*dt, 2*math32.Pi)
		w.nodes[k].Local.Rot = scene.Euler(0, w.spin[k], 0)
	}
	if w.ring != nil {
		w.ring.Spin(config.RingSpin * dt)
		w.ring.Tick(now)
	}
	w.orbit.Update(w.camera)
}

// click sends a pointer click at pixel (x, y) to the ring.
func (w *world) click(x, y int, now time.Time) *ring.Panel {
	if w.ring == nil {
		return nil
	}
	return w.ring.Click(w.camera.Ray(float32(x), float32(y)), w.camera, now)
}

// particleCount is the total of every group.
func (w *world) particleCount() int {
	n := 0
	for _, g := range w.groups {
		n += g.Len()
	}
	return n
}
