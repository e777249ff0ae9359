package ring

import (
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/scene"
)

// ErrNoSavedTransform means a restore was asked of a panel whose ring
// transform was never captured.
var ErrNoSavedTransform = errors.New("ring: panel has no saved ring transform")

// Viewer is the camera pose the enlarged target is derived from.
type Viewer interface {
	Position() math32.Vector3
	Forward() math32.Vector3
}

// Options configure a Controller.
type Options struct {
	Radius   float32
	Height   float32
	Duration time.Duration
	Distance float32 // from the camera to an enlarged panel
	Scale    float32 // of an enlarged panel
	MaxCount int
}

// Controller owns the ring node, its panels and the single panel that may
// be enlarged at any time.
type Controller struct {
	Root *scene.Node
	Ring *scene.Node

	opts   Options
	panels []*Panel
	active *Panel
	angle  float32
	log    *slog.Logger
}

// NewController builds a ring under root holding one panel per asset, in
// order. Assets beyond opts.MaxCount are ignored.
func NewController(root *scene.Node, assets []string, opts Options, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	if opts.MaxCount > 0 && len(assets) > opts.MaxCount {
		log.Warn("too many images, ignoring the rest", "count", len(assets), "max", opts.MaxCount)
		assets = assets[:opts.MaxCount]
	}
	c := &Controller{
		Root: root,
		Ring: scene.NewNode("ring"),
		opts: opts,
		log:  log,
	}
	root.Add(c.Ring)
	for i, s := range Layout(len(assets), opts.Radius, opts.Height) {
		n := scene.NewNode(fmt.Sprintf("panel-%d", i))
		n.Local = s.Transform()
		c.Ring.Add(n)
		c.panels = append(c.panels, &Panel{Index: i, Asset: assets[i], Slot: s, Node: n})
	}
	log.Info("image ring built", "panels", len(c.panels))
	return c
}

// Panels returns the panels in ring order.
func (c *Controller) Panels() []*Panel { return c.panels }

// Active returns the panel that is enlarging or enlarged, if any.
func (c *Controller) Active() *Panel { return c.active }

// Spin turns the ring about the vertical axis by d radians.
func (c *Controller) Spin(d float32) {
	c.angle = math32.Mod(c.angle+d, 2*math32.Pi)
	c.Ring.Local.Rot = scene.Euler(0, c.angle, 0)
}

// Pick returns the nearest panel hit by r, or nil.
func (c *Controller) Pick(r scene.Ray) *Panel {
	var best *Panel
	bestD := math32.Inf(1)
	hw := float32(PanelWidth+Border) / 2
	hh := float32(PanelHeight+Border) / 2
	for _, p := range c.panels {
		d, ok := r.IntersectRect(p.Node.World(), hw, hh)
		if ok && d < bestD {
			best, bestD = p, d
		}
	}
	return best
}

// Click resolves r to a panel and toggles it. It returns the panel hit.
func (c *Controller) Click(r scene.Ray, v Viewer, now time.Time) *Panel {
	p := c.Pick(r)
	if p == nil {
		return nil
	}
	c.Toggle(p, v, now)
	return p
}

// Toggle enlarges a resting panel and restores an enlarged one. Panels in
// the middle of an animation ignore it.
func (c *Controller) Toggle(p *Panel, v Viewer, now time.Time) {
	switch p.State {
	case StateRing:
		c.Enlarge(p, v, now)
	case StateEnlarged:
		errors.Log(c.Restore(p, now))
	default:
		c.log.Debug("panel busy, click ignored", "panel", p.Index, "state", p.State)
	}
}

// Enlarge starts moving p from the ring to a spot in front of the viewer.
// Any other enlarged or enlarging panel snaps back to the ring first.
func (c *Controller) Enlarge(p *Panel, v Viewer, now time.Time) {
	if p.State != StateRing {
		return
	}
	if c.active != nil && c.active != p {
		if err := c.Snap(c.active); err != nil {
			c.log.Error("snap back failed", "panel", c.active.Index, "err", err)
			c.active = nil
		}
	}

	saved := p.Node.Local
	p.saved = &saved
	p.target = c.enlargedTarget(v)
	p.State = StateEnlarging
	c.active = p

	target := p.target
	p.task = &task{
		from:     p.Node.World(),
		to:       func() scene.Transform { return target },
		start:    now,
		duration: c.opts.Duration,
		ease:     EaseOutCubic,
	}
	c.log.Debug("enlarge", "panel", p.Index, "asset", p.Asset)
}

// enlargedTarget faces the viewer with yaw only, so the panel stays upright.
func (c *Controller) enlargedTarget(v Viewer) scene.Transform {
	fwd := v.Forward()
	return scene.Transform{
		Pos:   v.Position().Add(fwd.MulScalar(c.opts.Distance)),
		Rot:   scene.Euler(0, math32.Atan2(fwd.X, fwd.Z), 0),
		Scale: scene.Uniform(c.opts.Scale),
	}
}

// Restore starts moving an enlarged p back to its saved ring slot.
func (c *Controller) Restore(p *Panel, now time.Time) error {
	if p.State != StateEnlarged {
		return nil
	}
	if p.saved == nil {
		return fmt.Errorf("restore panel %d: %w", p.Index, ErrNoSavedTransform)
	}
	saved := *p.saved
	ring := c.Ring
	p.State = StateRestoring
	if c.active == p {
		c.active = nil
	}
	p.task = &task{
		from:     p.Node.World(),
		to:       func() scene.Transform { return ring.World().Compose(saved) },
		start:    now,
		duration: c.opts.Duration,
		ease:     EaseOutCubic,
	}
	c.log.Debug("restore", "panel", p.Index)
	return nil
}

// Snap puts p back on the ring at once, without animating.
func (c *Controller) Snap(p *Panel) error {
	if p.saved == nil {
		return fmt.Errorf("snap panel %d: %w", p.Index, ErrNoSavedTransform)
	}
	c.settle(p)
	return nil
}

// settle reattaches p to the ring with its exact saved transform.
func (c *Controller) settle(p *Panel) {
	c.Ring.Add(p.Node)
	p.Node.Local = *p.saved
	p.saved = nil
	p.task = nil
	p.State = StateRing
	if c.active == p {
		c.active = nil
	}
}

// Tick advances every running animation to now.
func (c *Controller) Tick(now time.Time) {
	for _, p := range c.panels {
		if p.task == nil {
			continue
		}
		w, done := p.task.at(now)
		if !done {
			p.Node.SetWorld(w)
			continue
		}
		switch p.State {
		case StateEnlarging:
			p.Node.Reparent(c.Root)
			p.Node.SetWorld(p.target)
			p.task = nil
			p.State = StateEnlarged
			c.log.Debug("enlarged", "panel", p.Index)
		case StateRestoring:
			c.settle(p)
			c.log.Debug("restored", "panel", p.Index)
		default:
			p.task = nil
		}
	}
}

// Detach removes the ring from the scene.
func (c *Controller) Detach() {
	for _, p := range c.panels {
		if p.Node.Parent() == c.Root {
			c.Root.Remove(p.Node)
		}
	}
	c.Root.Remove(c.Ring)
	c.active = nil
}
