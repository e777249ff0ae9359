package assets

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watcher reports, debounced, that the contents of an image directory
// changed.
type Watcher struct {
	w       *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
	log     *slog.Logger
}

// Watch starts watching dir. Bursts of events closer than quiet apart are
// folded into one notification.
func Watch(dir string, quiet time.Duration, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	d, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch images: %w", err)
	}
	if err := fw.Add(d); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", d, err)
	}
	w := &Watcher{
		w:       fw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
	}
	go w.run(quiet)
	log.Info("watching image directory", "dir", d)
	return w, nil
}

// Changed receives once per settled burst of changes.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

func (w *Watcher) run(quiet time.Duration) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Write) {
				continue
			}
			w.log.Debug("image directory event", "event", ev.String())
			if timer == nil {
				timer = time.NewTimer(quiet)
			} else {
				timer.Reset(quiet)
			}
			fire = timer.C
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn("image watcher error", "err", err)
		case <-fire:
			fire = nil
			select {
			case w.changed <- struct{}{}:
			default:
			}
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.w.Close()
}
