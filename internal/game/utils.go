package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"cogentcore.org/core/math32"

	"github.com/iburimskiy/particle-tree/internal/config"
	"github.com/iburimskiy/particle-tree/internal/particles"
)

// hsva converts HSV (hue 0-360, saturation and value 0-1) to an opaque-or-
// translucent color with alpha a.
func hsva(h, s, v float64, a uint8) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{R: uint8((r + m) * 255), G: uint8((g + m) * 255), B: uint8((b + m) * 255), A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// fogFactor is the linear fog visibility at distance d: 1 up to FogNear,
// 0 from FogFar on.
func fogFactor(d float32) float32 {
	return math32.Clamp((config.FogFar-d)/(config.FogFar-config.FogNear), 0, 1)
}

// rgba converts a 0xRRGGBB color with opacity a to a premultiplied
// color.RGBA.
func rgba(hex uint32, a float32) color.RGBA {
	c := particles.Hex(hex)
	return color.RGBA{R: u8(c.R * a), G: u8(c.G * a), B: u8(c.B * a), A: u8(a)}
}
