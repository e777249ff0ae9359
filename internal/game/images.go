package game

import (
	"context"
	"fmt"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-tree/internal/assets"
	"github.com/iburimskiy/particle-tree/internal/config"
)

// watchQuiet folds bursts of directory events, like a copy of many files,
// into one reload.
const watchQuiet = 300 * time.Millisecond

type pickResult struct {
	dir string
	err error
}

// reloadImages rebuilds the ring from the configured image list and starts
// loading its textures. Loads still running for the old ring are cancelled
// and their results dropped.
func (g *Game) reloadImages() error {
	paths, err := assets.Resolve(g.cfg.Images, g.cfg.ImageDir, config.MaxImages)
	switch {
	case err != nil && len(g.cfg.Images) > 0:
		return fmt.Errorf("image list: %w", err)
	case err != nil:
		g.log.Warn("no images", "dir", g.cfg.ImageDir, "err", err)
		paths = nil
	}
	if g.cancelLoad != nil {
		g.cancelLoad()
	}
	g.gen++
	g.dropTextures()
	g.world.buildRing(paths, g.controls.Params())

	ctx, cancel := context.WithCancel(context.Background())
	g.cancelLoad = cancel
	g.loader.Load(ctx, g.gen, paths)
	return nil
}

func (g *Game) dropTextures() {
	for i, t := range g.textures {
		t.Deallocate()
		delete(g.textures, i)
	}
}

// watch follows the image directory when the list comes from one.
func (g *Game) watch() {
	if g.watcher != nil {
		errors.Log(g.watcher.Close())
		g.watcher = nil
	}
	if !g.cfg.WatchImages || g.cfg.ImageDir == "" || len(g.cfg.Images) > 0 {
		return
	}
	w, err := assets.Watch(g.cfg.ImageDir, watchQuiet, g.log)
	if err != nil {
		g.log.Warn("image directory not watched", "dir", g.cfg.ImageDir, "err", err)
		return
	}
	g.watcher = w
}

// pickFolder asks for a new image directory without blocking the loop.
func (g *Game) pickFolder() {
	if g.picking {
		return
	}
	g.picking = true
	go func() {
		dir, err := zenity.SelectFile(zenity.Title("Choose an image folder"), zenity.Directory())
		g.picked <- pickResult{dir: dir, err: err}
	}()
}

func (g *Game) onPicked(r pickResult) {
	g.picking = false
	if errors.Is(r.err, zenity.ErrCanceled) {
		return
	}
	if r.err != nil {
		g.log.Error("folder picker failed", "err", r.err)
		return
	}
	g.log.Info("image folder chosen", "dir", r.dir)
	g.cfg.ImageDir = r.dir
	g.cfg.Images = nil
	errors.Log(g.reloadImages())
	g.watch()
}

// onImage turns a decoded image into a panel texture. Results of an older
// ring and failed loads leave the placeholder in place.
func (g *Game) onImage(r assets.Result) {
	if r.Gen != g.gen || r.Err != nil {
		return
	}
	if old := g.textures[r.Index]; old != nil {
		old.Deallocate()
	}
	g.textures[r.Index] = ebiten.NewImageFromImage(r.Image)
}

// drain handles everything background goroutines sent since the last tick.
func (g *Game) drain() {
	var changed <-chan struct{}
	if g.watcher != nil {
		changed = g.watcher.Changed()
	}
	for {
		select {
		case r := <-g.loader.Results():
			g.onImage(r)
		case <-changed:
			g.log.Info("image directory changed, reloading")
			errors.Log(g.reloadImages())
		case r := <-g.picked:
			g.onPicked(r)
		default:
			return
		}
	}
}
