// Package controls is the named parameter surface driven by the HUD sliders
// and the keyboard.
package controls

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/iburimskiy/particle-tree/internal/config"
	"github.com/iburimskiy/particle-tree/internal/particles"
)

// Effect is what the scene has to do after a control moved.
type Effect int

const (
	// None means the value did not change.
	None Effect = iota
	// Regenerate rebuilds the particle group of Change.Kind.
	Regenerate
	// Uniform only updates the point size of Change.Kind.
	Uniform
	// Speed only changes the rotation rate.
	Speed
)

func (e Effect) String() string {
	switch e {
	case None:
		return "none"
	case Regenerate:
		return "regenerate"
	case Uniform:
		return "uniform"
	case Speed:
		return "speed"
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Change reports one applied control update.
type Change struct {
	Name   string
	Effect Effect
	Kind   particles.Kind
}

// Control is one slider.
type Control struct {
	Name   string
	Label  string
	Min    float64
	Max    float64
	Step   float64
	Effect Effect
	Kind   particles.Kind

	field func(*config.Params) *float64
	count func(*config.Params) *int
}

func (c *Control) get(p *config.Params) float64 {
	if c.count != nil {
		return float64(*c.count(p))
	}
	return *c.field(p)
}

func (c *Control) put(p *config.Params, v float64) {
	if c.count != nil {
		*c.count(p) = int(math.Round(v))
		return
	}
	*c.field(p) = v
}

// snap clamps v into range and rounds it to a whole number of steps.
func (c *Control) snap(v float64) float64 {
	if math.IsNaN(v) {
		v = c.Min
	}
	v = math.Min(math.Max(v, c.Min), c.Max)
	switch {
	case c.Step <= 0:
	case c.Step < 1:
		// divide by the whole inverse so 1.2 stays 1.2
		inv := math.Round(1 / c.Step)
		v = math.Round(v*inv) / inv
	default:
		v = math.Round(v/c.Step) * c.Step
	}
	return math.Min(math.Max(v, c.Min), c.Max)
}

func defs() []*Control {
	return []*Control{
		{
			Name: "particles", Label: "Particles", Min: 1000, Max: 20000, Step: 500,
			Effect: Regenerate, Kind: particles.Tree,
			count: func(p *config.Params) *int { return &p.ParticleCount },
		},
		{
			Name: "rotation", Label: "Rotation", Min: 0, Max: 5, Step: 0.1,
			Effect: Speed, Kind: particles.Tree,
			field: func(p *config.Params) *float64 { return &p.RotationSpeed },
		},
		{
			Name: "tree-size", Label: "Tree size", Min: 0.1, Max: 5, Step: 0.1,
			Effect: Uniform, Kind: particles.Tree,
			field: func(p *config.Params) *float64 { return &p.ParticleSize },
		},
		{
			Name: "ground-size", Label: "Ground size", Min: 0.1, Max: 5, Step: 0.1,
			Effect: Uniform, Kind: particles.Ground,
			field: func(p *config.Params) *float64 { return &p.GroundParticleSize },
		},
		{
			Name: "snow-size", Label: "Snow size", Min: 0.1, Max: 5, Step: 0.1,
			Effect: Uniform, Kind: particles.Snow,
			field: func(p *config.Params) *float64 { return &p.SnowParticleSize },
		},
		{
			Name: "star-size", Label: "Star size", Min: 0.1, Max: 5, Step: 0.1,
			Effect: Uniform, Kind: particles.Star,
			field: func(p *config.Params) *float64 { return &p.StarParticleSize },
		},
	}
}

// Surface owns the live scene parameters. Only the surface mutates them.
type Surface struct {
	params   config.Params
	controls []*Control
	selected int
	log      *slog.Logger
}

// New returns a surface starting from p.
func New(p config.Params, log *slog.Logger) *Surface {
	if log == nil {
		log = slog.Default()
	}
	return &Surface{params: p, controls: defs(), log: log}
}

// Params returns a copy of the current parameters.
func (s *Surface) Params() config.Params { return s.params }

// Controls returns the controls in display order.
func (s *Surface) Controls() []*Control { return s.controls }

func (s *Surface) lookup(name string) *Control {
	for _, c := range s.controls {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Value returns the current value of the named control.
func (s *Surface) Value(name string) (float64, bool) {
	c := s.lookup(name)
	if c == nil {
		return 0, false
	}
	return c.get(&s.params), true
}

// Fraction returns where the named control sits in its range, in [0,1].
func (s *Surface) Fraction(name string) float64 {
	c := s.lookup(name)
	if c == nil || c.Max <= c.Min {
		return 0
	}
	return (c.get(&s.params) - c.Min) / (c.Max - c.Min)
}

// Set moves the named control to v, clamped and snapped to its step. Unknown
// names change nothing and report false.
func (s *Surface) Set(name string, v float64) (Change, bool) {
	c := s.lookup(name)
	if c == nil {
		s.log.Debug("unknown control", "name", name)
		return Change{}, false
	}
	v = c.snap(v)
	ch := Change{Name: c.Name, Kind: c.Kind}
	if v == c.get(&s.params) {
		return ch, true
	}
	c.put(&s.params, v)
	ch.Effect = c.Effect
	s.log.Debug("control changed", "name", c.Name, "value", c.get(&s.params), "effect", c.Effect)
	return ch, true
}

// SetFraction sets the named control from a slider position in [0,1].
func (s *Surface) SetFraction(name string, f float64) (Change, bool) {
	c := s.lookup(name)
	if c == nil {
		return Change{}, false
	}
	f = math.Min(math.Max(f, 0), 1)
	return s.Set(name, c.Min+f*(c.Max-c.Min))
}

// Nudge moves the named control by whole steps.
func (s *Surface) Nudge(name string, steps int) (Change, bool) {
	c := s.lookup(name)
	if c == nil {
		return Change{}, false
	}
	return s.Set(name, c.get(&s.params)+float64(steps)*c.Step)
}

// Reset puts every control back to its default value and returns the
// resulting changes.
func (s *Surface) Reset() []Change {
	def := config.DefaultParams()
	var out []Change
	for _, c := range s.controls {
		if ch, _ := s.Set(c.Name, c.get(&def)); ch.Effect != None {
			out = append(out, ch)
		}
	}
	s.log.Info("controls reset", "changes", len(out))
	return out
}

// Selected returns the control the keyboard acts on.
func (s *Surface) Selected() *Control { return s.controls[s.selected] }

// Select moves the keyboard selection by d, wrapping around.
func (s *Surface) Select(d int) *Control {
	n := len(s.controls)
	s.selected = ((s.selected+d)%n + n) % n
	return s.Selected()
}
