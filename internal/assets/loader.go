package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Result is one finished image load. Gen is the generation the load was
// requested for; results of older generations should be dropped.
type Result struct {
	Gen   int
	Index int
	Path  string
	Image image.Image
	Err   error
}

// Loader decodes images on background goroutines and reports them on a
// channel. Results are only consumed by the update loop.
type Loader struct {
	// MaxSide bounds the longer side of a decoded image. Zero keeps the size.
	MaxSide int
	// Workers bounds concurrent decodes.
	Workers int

	results chan Result
	log     *slog.Logger
}

// NewLoader returns a loader whose result channel holds up to buffer
// undelivered results.
func NewLoader(maxSide, buffer int, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		MaxSide: maxSide,
		Workers: 4,
		results: make(chan Result, buffer),
		log:     log,
	}
}

// Results is drained by the consumer without blocking.
func (l *Loader) Results() <-chan Result { return l.results }

// Load starts decoding paths for generation gen and returns at once. The
// returned channel is closed when the batch is done. Cancelling ctx stops
// pending loads and unblocks senders.
func (l *Loader) Load(ctx context.Context, gen int, paths []string) <-chan struct{} {
	done := make(chan struct{})
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.Workers, 1))
	go func() {
		defer close(done)
		for i, p := range paths {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				img, err := Open(p, l.MaxSide)
				if err != nil {
					l.log.Warn("image load failed", "path", p, "err", err)
				} else {
					l.log.Debug("image loaded", "path", p, "size", img.Bounds().Size())
				}
				select {
				case l.results <- Result{Gen: gen, Index: i, Path: p, Image: img, Err: err}:
				case <-ctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
	return done
}

// Open sniffs, decodes and downscales the image at path.
func Open(path string, maxSide int) (image.Image, error) {
	if _, err := Sniff(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Downscale(img, maxSide), nil
}

// Downscale shrinks img so that its longer side is at most maxSide, keeping
// the aspect ratio. Smaller images are returned as is.
func Downscale(img image.Image, maxSide int) image.Image {
	sz := img.Bounds().Size()
	long := max(sz.X, sz.Y)
	if maxSide <= 0 || long <= maxSide {
		return img
	}
	w := max(sz.X*maxSide/long, 1)
	h := max(sz.Y*maxSide/long, 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
