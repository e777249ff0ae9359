// Package game is the ebiten.Game that runs the particle tree scene: the
// update tick, pointer and keyboard input, rendering and teardown.
package game

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-tree/internal/assets"
	"github.com/iburimskiy/particle-tree/internal/audio"
	"github.com/iburimskiy/particle-tree/internal/config"
	"github.com/iburimskiy/particle-tree/internal/controls"
	"github.com/iburimskiy/particle-tree/internal/particles"
	"github.com/iburimskiy/particle-tree/internal/scene"
)

// maxStep bounds one simulation step, so a stalled frame does not jump.
const maxStep = 0.1

// Game implements ebiten.Game.
type Game struct {
	cfg   config.Config
	log   *slog.Logger
	clock func() time.Time

	world    *world
	controls *controls.Surface

	// graphics
	sprites  [4]*ebiten.Image
	white    *ebiten.Image
	textures map[int]*ebiten.Image
	batch    batch
	samples  []particles.Sample

	// images
	loader     *assets.Loader
	gen        int
	cancelLoad context.CancelFunc
	watcher    *assets.Watcher
	picked     chan pickResult
	picking    bool

	// audio
	music *audio.Player
	meter *audio.Meter

	// input
	gesture gesture
	slider  int
	showHUD bool

	width, height int
	started       time.Time
	last          time.Time
	elapsed       float32
}

// New builds the scene from cfg and starts the background image loads.
func New(cfg config.Config, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := time.Now()
	g := &Game{
		cfg:      cfg,
		log:      log,
		clock:    time.Now,
		controls: controls.New(cfg.Params, log),
		textures: map[int]*ebiten.Image{},
		loader:   assets.NewLoader(1024, config.MaxImages, log),
		picked:   make(chan pickResult, 1),
		meter:    audio.NewMeter(),
		slider:   -1,
		showHUD:  true,
		width:    config.WindowWidth,
		height:   config.WindowHeight,
		started:  now,
		last:     now,
	}
	g.world = newWorld(cfg.Params, seed, g.width, g.height, log)
	log.Info("scene built", "seed", seed, "particles", g.world.particleCount())

	for _, k := range particles.Kinds {
		g.sprites[k] = ebiten.NewImageFromImage(spritePixels(particles.StyleOf(k), spriteSize))
	}
	g.white = ebiten.NewImage(3, 3)
	g.white.Fill(color.White)

	if err := g.reloadImages(); err != nil {
		g.Close()
		return nil, err
	}
	g.watch()
	g.startMusic()
	return g, nil
}

func (g *Game) startMusic() {
	if g.cfg.Music == "" {
		return
	}
	p, err := audio.Open(g.cfg.Music, g.cfg.MusicVolume, g.log)
	if err != nil {
		g.log.Warn("music unavailable, running silent", "path", g.cfg.Music, "err", err)
		return
	}
	if err := p.Play(); err != nil {
		g.log.Warn("music playback failed, running silent", "err", err)
		errors.Log(p.Close())
		return
	}
	g.music = p
}

func (g *Game) Update() error {
	now := g.clock()
	dt := math32.Clamp(float32(now.Sub(g.last).Seconds()), 0, maxStep)
	g.last = now
	g.elapsed = float32(now.Sub(g.started).Seconds())

	g.drain()

	if err := g.handleKeys(); err != nil {
		return err
	}
	g.handlePointer(now)

	g.world.step(dt, g.controls.Params().RotationSpeed, now)
	if g.music != nil {
		g.meter.Update(g.music.Tap())
	}
	return nil
}

// repeat reports a key press with auto-repeat while held.
func repeat(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 20 && d%4 == 0)
}

func (g *Game) handleKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.controls.Select(-1)
		} else {
			g.controls.Select(1)
		}
	}
	if repeat(ebiten.KeyArrowLeft) {
		g.nudge(-1)
	}
	if repeat(ebiten.KeyArrowRight) {
		g.nudge(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		for _, ch := range g.controls.Reset() {
			g.apply(ch)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.music != nil {
		g.music.ToggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.pickFolder()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		errors.Log(g.reloadImages())
	}
	return nil
}

func (g *Game) nudge(steps int) {
	if ch, ok := g.controls.Nudge(g.controls.Selected().Name, steps); ok {
		g.apply(ch)
	}
}

// apply carries a control change into the scene. Size and speed changes
// are read every frame and need nothing here.
func (g *Game) apply(ch controls.Change) {
	if ch.Effect == controls.Regenerate {
		g.world.regenerate(ch.Kind, g.controls.Params())
	}
}

func (g *Game) handlePointer(now time.Time) {
	x, y := ebiten.CursorPosition()
	cs := g.controls.Controls()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.slider = -1
		if g.showHUD {
			g.slider = sliderAt(x, y, len(cs), g.height)
		}
		if g.slider < 0 {
			g.gesture.press(x, y)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.slider >= 0 {
			if ch, ok := g.controls.SetFraction(cs[g.slider].Name, sliderFraction(x)); ok {
				g.apply(ch)
			}
		} else if dx, dy := g.gesture.move(x, y); dx != 0 || dy != 0 {
			g.world.orbit.Drag(float32(dx), float32(dy), g.height)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.slider >= 0 {
			g.slider = -1
		} else if g.gesture.release(x, y) {
			if p := g.world.click(x, y, now); p != nil {
				g.log.Debug("panel clicked", "panel", p.Index, "state", p.State)
			}
		}
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.world.orbit.Zoom(float32(wy))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	pr := g.world.camera.Projector()

	// ground plane and glow
	plane(&g.batch, &pr, groundTransform(-0.5, 30), 1, 1, groundGrid, whiteSrc, groundColor, true)
	g.batch.flush(screen, g.white, blended)
	plane(&g.batch, &pr, groundTransform(-0.49, 5), 1, 1, 2, whiteSrc, glowColor, true)
	g.batch.flush(screen, g.white, blended)

	// panels behind the tree first, then the particles, then the rest
	panels := depthOrder(&pr, g.world.ring.Panels())
	center := pr.Distance(math32.Vec3(0, float32(g.controls.Params().TreeHeight)/2, 0))
	split := len(panels)
	for i, p := range panels {
		if pr.Distance(p.Node.World().Pos) < center {
			split = i
			break
		}
	}
	for _, p := range panels[:split] {
		g.drawPanel(screen, &pr, p)
	}
	g.drawParticles(screen, &pr)
	for _, p := range panels[split:] {
		g.drawPanel(screen, &pr, p)
	}

	g.drawHUD(screen)
}

func (g *Game) drawParticles(screen *ebiten.Image, pr *scene.Projector) {
	params := g.controls.Params()
	for _, k := range particles.Kinds {
		grp := g.world.groups[k]
		if grp.Len() == 0 {
			continue
		}
		boost := float32(1)
		if k == particles.Star {
			boost += float32(g.meter.Level())
		}
		sprite := g.sprites[k]
		flush := func() { g.batch.flush(screen, sprite, additive) }
		g.samples = particleQuads(&g.batch, pr, grp, g.world.nodes[k].World(),
			particles.PointSize(k, params), float32(g.cfg.PointScale), g.elapsed, boost, g.samples, flush)
		flush()
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.world.camera.Resize(outsideWidth, outsideHeight)
		g.log.Debug("resized", "width", outsideWidth, "height", outsideHeight)
	}
	return g.width, g.height
}

// Close stops background work and releases audio and GPU images.
func (g *Game) Close() error {
	if g.cancelLoad != nil {
		g.cancelLoad()
	}
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
		g.watcher = nil
	}
	if g.music != nil {
		errs = append(errs, g.music.Close())
		g.music = nil
	}
	g.dropTextures()
	for i, s := range g.sprites {
		if s != nil {
			s.Deallocate()
			g.sprites[i] = nil
		}
	}
	if g.white != nil {
		g.white.Deallocate()
		g.white = nil
	}
	g.log.Info("scene closed")
	return errors.Join(errs...)
}
