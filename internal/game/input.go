package game

import (
	"image"

	"github.com/iburimskiy/particle-tree/internal/config"
)

// gesture tells an orbit drag from a click. A press and release that never
// strays more than the slop from the press point is a click.
type gesture struct {
	down     bool
	dragging bool
	startX   int
	startY   int
	lastX    int
	lastY    int
}

func (g *gesture) press(x, y int) {
	*g = gesture{down: true, startX: x, startY: y, lastX: x, lastY: y}
}

// move returns the pointer delta to apply to the orbit. It stays zero until
// the pointer leaves the slop square.
func (g *gesture) move(x, y int) (dx, dy int) {
	if !g.down {
		return 0, 0
	}
	if !g.dragging && (abs(x-g.startX) >= config.ClickSlopPx || abs(y-g.startY) >= config.ClickSlopPx) {
		g.dragging = true
		g.lastX, g.lastY = g.startX, g.startY
	}
	if !g.dragging {
		return 0, 0
	}
	dx, dy = x-g.lastX, y-g.lastY
	g.lastX, g.lastY = x, y
	return dx, dy
}

// release ends the gesture and reports whether it was a click.
func (g *gesture) release(x, y int) bool {
	if !g.down {
		return false
	}
	g.move(x, y)
	click := !g.dragging
	*g = gesture{}
	return click
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// sliderRect returns the track of slider i out of n on a surface of the
// given height. Sliders stack upward from the bottom-left corner.
func sliderRect(i, n, height int) image.Rectangle {
	y := height - 24 - (n-i)*config.SliderGap
	return image.Rect(config.SliderX, y, config.SliderX+config.SliderWidth, y+config.SliderHeight)
}

// sliderAt returns the slider under (x, y), or -1. The hit box is a little
// taller than the track.
func sliderAt(x, y, n, height int) int {
	for i := 0; i < n; i++ {
		r := sliderRect(i, n, height).Inset(-4)
		if image.Pt(x, y).In(r) {
			return i
		}
	}
	return -1
}

// sliderFraction maps a pointer x onto the slider track.
func sliderFraction(x int) float64 {
	return clamp01(float64(x-config.SliderX) / float64(config.SliderWidth))
}
