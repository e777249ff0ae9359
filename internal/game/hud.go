package game

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-tree/internal/config"
	"github.com/iburimskiy/particle-tree/internal/ring"
	"github.com/iburimskiy/particle-tree/internal/scene"
)

// HUD colors.
var (
	trackFill     = rgba(0x1e2532, 0.8)
	trackBorder   = rgba(0x465064, 1)
	trackSelected = rgba(0x96aac8, 1)
	knobBorder    = rgba(0x646e82, 1)
	shade         = rgba(0x000000, 0.8)
)

// drawPanel draws the border and then the image, or its placeholder while
// the texture is not ready.
func (g *Game) drawPanel(screen *ebiten.Image, pr *scene.Projector, p *ring.Panel) {
	w := p.Node.World()
	plane(&g.batch, pr, w, (ring.PanelWidth+ring.Border)/2, (ring.PanelHeight+ring.Border)/2,
		1, whiteSrc, borderColor(), true)
	g.batch.flush(screen, g.white, blended)

	tex := g.textures[p.Index]
	if tex == nil {
		plane(&g.batch, pr, w, ring.PanelWidth/2.0, ring.PanelHeight/2.0, panelGrid, whiteSrc, placeholder, true)
		g.batch.flush(screen, g.white, blended)
		return
	}
	plane(&g.batch, pr, w, ring.PanelWidth/2.0, ring.PanelHeight/2.0, panelGrid, tex.Bounds(), opaque, true)
	g.batch.flush(screen, tex, blended)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	if g.elapsed < config.LoadingDelayMs/1000.0 {
		g.drawLoading(screen)
	}
	if !g.showHUD {
		return
	}

	// Draw status
	active := "none"
	if p := g.world.ring.Active(); p != nil {
		active = fmt.Sprintf("%d %s", p.Index, filepath.Base(p.Asset))
	}
	status := fmt.Sprintf("FPS %0.0f | particles %d | images %d/%d | enlarged: %s",
		ebiten.ActualFPS(), g.world.particleCount(), len(g.textures), len(g.world.ring.Panels()), active)
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	ebitenutil.DebugPrintAt(screen, g.musicStatus(), 12, 28)

	// Draw help
	help := "drag: orbit  wheel: zoom  click: enlarge  Tab/arrows: adjust  R: reset  O: folder  L: reload  M: mute  H: hide  Q: quit"
	ebitenutil.DebugPrintAt(screen, help, 12, g.height-18)

	g.drawSliders(screen)
}

func (g *Game) musicStatus() string {
	if g.music == nil {
		return "music: off"
	}
	state := "playing"
	if g.music.Muted() {
		state = "muted"
	}
	return fmt.Sprintf("music: %s (%s loop) %s | level %s",
		filepath.Base(g.music.Path), formatDuration(g.music.Duration()), state, meterBar(g.meter.Level(), 10))
}

// meterBar renders a level in [0,1] as a text bar of n cells.
func meterBar(level float64, n int) string {
	k := int(clamp01(level)*float64(n) + 0.5)
	return "[" + strings.Repeat("#", k) + strings.Repeat(".", n-k) + "]"
}

// drawSliders draws one track per control, bottom-left, with the selected
// one highlighted.
func (g *Game) drawSliders(screen *ebiten.Image) {
	cs := g.controls.Controls()
	selected := g.controls.Selected()
	for i, c := range cs {
		r := sliderRect(i, len(cs), g.height)
		x, y := float32(r.Min.X), float32(r.Min.Y)
		w, h := float32(r.Dx()), float32(r.Dy())
		frac := g.controls.Fraction(c.Name)

		// Draw background
		vector.DrawFilledRect(screen, x, y, w, h, trackFill, false)
		border := trackBorder
		if c == selected {
			border = trackSelected
		}
		vector.StrokeRect(screen, x, y, w, h, 2, border, false)

		// Draw fill
		if frac > 0 {
			hue := 200 + float64(i)*25
			vector.DrawFilledRect(screen, x, y, float32(frac)*w, h, hsva(hue, 0.7, 0.9, 180), false)
		}

		// Draw indicator
		ix := x + float32(frac)*w
		vector.DrawFilledCircle(screen, ix, y+h/2, 6, color.White, false)
		vector.StrokeCircle(screen, ix, y+h/2, 6, 2, knobBorder, false)

		v, _ := g.controls.Value(c.Name)
		label := fmt.Sprintf("%s %.1f", c.Label, v)
		if c.Name == "particles" {
			label = fmt.Sprintf("%s %d", c.Label, int(v))
		}
		ebitenutil.DebugPrintAt(screen, label, r.Max.X+12, r.Min.Y-2)
	}
}

func (g *Game) drawLoading(screen *ebiten.Image) {
	const text = "Loading..."
	x := g.width/2 - len(text)*6/2
	y := g.height / 2
	vector.DrawFilledRect(screen, float32(x-10), float32(y-8), float32(len(text)*6+20), 32,
		shade, false)
	ebitenutil.DebugPrintAt(screen, text, x, y)
}
