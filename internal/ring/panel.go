package ring

import (
	"fmt"

	"github.com/iburimskiy/particle-tree/internal/scene"
)

// State is where a panel is in its enlarge cycle.
type State int

const (
	StateRing State = iota
	StateEnlarging
	StateEnlarged
	StateRestoring
)

func (s State) String() string {
	switch s {
	case StateRing:
		return "ring"
	case StateEnlarging:
		return "enlarging"
	case StateEnlarged:
		return "enlarged"
	case StateRestoring:
		return "restoring"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Panel is one clickable image on the ring.
type Panel struct {
	Index int
	Asset string
	Slot  Slot
	State State

	// Node carries the panel transform; its parent is the ring while the
	// panel rests there and the scene root once enlarged.
	Node *scene.Node

	// saved is the ring-local transform captured when the current enlarge
	// cycle began. It is nil while the panel rests on the ring.
	saved  *scene.Transform
	target scene.Transform
	task   *task
}

// Saved returns the ring-local transform captured for the current cycle.
func (p *Panel) Saved() (scene.Transform, bool) {
	if p.saved == nil {
		return scene.Transform{}, false
	}
	return *p.saved, true
}

// Target returns the enlarged transform computed when enlarging began.
func (p *Panel) Target() scene.Transform { return p.target }

// Animating reports whether the panel is between resting states.
func (p *Panel) Animating() bool { return p.task != nil }

// Forward reports whether the panel is enlarged or on its way there.
func (p *Panel) Forward() bool {
	return p.State == StateEnlarging || p.State == StateEnlarged
}
