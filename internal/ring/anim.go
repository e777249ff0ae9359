package ring

import (
	"time"

	"github.com/iburimskiy/particle-tree/internal/scene"
)

// EaseOutCubic maps linear progress p in [0,1] to 1-(1-p)^3.
func EaseOutCubic(p float32) float32 {
	q := 1 - p
	return 1 - q*q*q
}

// task is one running panel animation. The target is re-evaluated every
// step so that a moving destination, like a slot on the spinning ring, is
// tracked.
type task struct {
	from     scene.Transform
	to       func() scene.Transform
	start    time.Time
	duration time.Duration
	ease     func(float32) float32
}

// progress returns the linear progress at now, clamped to [0,1].
func (t *task) progress(now time.Time) float32 {
	if t.duration <= 0 {
		return 1
	}
	p := float32(now.Sub(t.start)) / float32(t.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// at returns the interpolated world transform and whether the task is done.
func (t *task) at(now time.Time) (scene.Transform, bool) {
	p := t.progress(now)
	return t.from.Lerp(t.to(), t.ease(p)), p >= 1
}
