// Package audio plays optional looping background music and meters it.
package audio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const tapSize = 8192

// ErrUnsupported is returned for audio files of an unknown type.
var ErrUnsupported = errors.New("audio: unsupported file type")

// Player loops one music file through a mute control and a level tap.
type Player struct {
	Path string

	streamer beep.StreamSeekCloser
	format   beep.Format
	volume   *effects.Volume
	ctrl     *beep.Ctrl
	tap      *Tap
	playing  bool
	log      *slog.Logger
}

// Decode opens path and picks a decoder from its extension. Closing the
// streamer closes the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%s: %w", ext, ErrUnsupported)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// Open decodes path and prepares the chain streamer -> loop -> tap -> volume
// -> ctrl. volume is in beep's base-2 steps; 0 is unchanged.
func Open(path string, volume float64, log *slog.Logger) (*Player, error) {
	if log == nil {
		log = slog.Default()
	}
	streamer, format, err := Decode(path)
	if err != nil {
		return nil, err
	}
	t := NewTap(beep.Loop(-1, streamer), tapSize)
	vol := &effects.Volume{Streamer: t, Base: 2, Volume: volume}
	p := &Player{
		Path:     path,
		streamer: streamer,
		format:   format,
		volume:   vol,
		ctrl:     &beep.Ctrl{Streamer: vol},
		tap:      t,
		log:      log,
	}
	log.Info("music loaded", "path", path, "rate", int(format.SampleRate), "length", p.Duration())
	return p, nil
}

// Play initialises the speaker for the file's rate and starts looping.
func (p *Player) Play() error {
	if p.playing {
		return nil
	}
	bufferSize := p.format.SampleRate.N(time.Second / 20)
	if err := speaker.Init(p.format.SampleRate, bufferSize); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.ctrl)
	p.playing = true
	return nil
}

// Duration is the length of one loop.
func (p *Player) Duration() time.Duration {
	return p.format.SampleRate.D(p.streamer.Len())
}

// Tap exposes the level tap.
func (p *Player) Tap() *Tap { return p.tap }

// Muted reports whether output is silenced.
func (p *Player) Muted() bool { return p.volume.Silent }

// ToggleMute flips the mute state and returns the new one.
func (p *Player) ToggleMute() bool {
	p.lock()
	p.volume.Silent = !p.volume.Silent
	p.unlock()
	p.log.Debug("music mute", "muted", p.volume.Silent)
	return p.volume.Silent
}

func (p *Player) lock() {
	if p.playing {
		speaker.Lock()
	}
}

func (p *Player) unlock() {
	if p.playing {
		speaker.Unlock()
	}
}

// Close stops playback and releases the file.
func (p *Player) Close() error {
	if p.playing {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		p.playing = false
	}
	return p.streamer.Close()
}
