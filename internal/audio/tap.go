package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and keeps the last samples it produced in a ring
// buffer, so the renderer can meter what is playing.
type Tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

// NewTap records up to ringSize stereo samples of src.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([][2]float64, max(ringSize, 1)),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns the last n samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, len(t.buffer))
	out := make([][2]float64, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// RMS is the root mean square of the mono mix of samples.
func RMS(samples [][2]float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sum += mono * mono
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Meter turns tap snapshots into a smoothed level in [0,1].
type Meter struct {
	Window    int     // samples per reading
	Smoothing float64 // weight of the previous reading
	level     float64
}

// NewMeter returns a meter with the usual window and smoothing.
func NewMeter() *Meter {
	return &Meter{Window: 2048, Smoothing: 0.6}
}

// Update reads the tap and returns the new level. A nil tap decays to 0.
func (m *Meter) Update(t *Tap) float64 {
	var mag float64
	if t != nil {
		// compress so quiet passages still move the glow
		mag = math.Pow(RMS(t.Snapshot(m.Window)), 0.3)
	}
	m.level = m.Smoothing*m.level + (1-m.Smoothing)*mag
	m.level = math.Min(math.Max(m.level, 0), 1)
	return m.level
}

// Level returns the last reading.
func (m *Meter) Level() float64 { return m.level }
