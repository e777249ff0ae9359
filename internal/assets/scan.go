// Package assets finds, decodes and watches the images shown on the ring.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"cogentcore.org/core/base/errors"
	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
)

// headerSize is how much of a file filetype needs to sniff it.
const headerSize = 262

// ErrNotImage is returned for files whose content is not a known image type.
var ErrNotImage = errors.New("assets: not an image")

// Sniff reads the head of path and returns the image extension it carries.
func Sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]
	if !filetype.IsImage(head) {
		return "", fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return "", err
	}
	return kind.Extension, nil
}

// Scan lists the images directly inside dir in name order, keeping at most
// max of them when max > 0. Files that do not sniff as images are skipped.
func Scan(dir string, max int) ([]string, error) {
	d, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(d)
	if err != nil {
		return nil, fmt.Errorf("scan images: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []string
	for _, e := range entries {
		if e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		p := filepath.Join(d, e.Name())
		if _, err := Sniff(p); err != nil {
			continue
		}
		out = append(out, p)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out, nil
}

// Resolve returns the explicit list when it is not empty and the scanned
// directory otherwise, capped at max.
func Resolve(images []string, dir string, max int) ([]string, error) {
	if len(images) == 0 {
		if dir == "" {
			return nil, nil
		}
		return Scan(dir, max)
	}
	out := make([]string, 0, len(images))
	for _, p := range images {
		e, err := homedir.Expand(p)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out, nil
}
