// Package assets loads object sprites in the background. Rendering asks for
// a sprite by name and simply gets nothing until it has been decoded.
package assets

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// DefaultMaxEdge caps the longer side of a loaded sprite in pixels.
const DefaultMaxEdge = 512

type Options struct {
	MaxEdge int
	Logger  *log.Logger
	// OnLoad is called from the loader goroutine after a sprite is added.
	OnLoad func(name string)
}

// Library is a concurrent sprite store keyed by lowercase file basename.
type Library struct {
	opts Options
	log  *log.Logger

	mu      sync.RWMutex
	sprites map[string]image.Image

	wg sync.WaitGroup
}

func NewLibrary(opts Options) *Library {
	if opts.MaxEdge <= 0 {
		opts.MaxEdge = DefaultMaxEdge
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Library{
		opts:    opts,
		log:     opts.Logger,
		sprites: make(map[string]image.Image),
	}
}

// Sprite returns a loaded sprite. It never blocks on loading.
func (l *Library) Sprite(name string) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.sprites[strings.ToLower(name)]
	return img, ok
}

// Add stores img under name, replacing any earlier sprite.
func (l *Library) Add(name string, img image.Image) {
	name = strings.ToLower(name)
	l.mu.Lock()
	l.sprites[name] = img
	l.mu.Unlock()
	if l.opts.OnLoad != nil {
		l.opts.OnLoad(name)
	}
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sprites)
}

// Names returns the loaded sprite names.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.sprites))
	for n := range l.sprites {
		names = append(names, n)
	}
	return names
}

// LoadDir decodes every supported image in dir on a background goroutine.
// Files that fail to decode are logged and skipped.
func (l *Library) LoadDir(dir string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		entries, err := os.ReadDir(dir)
		if err != nil {
			l.log.Printf("loading sprites: %v", err)
			return
		}
		for _, entry := range entries {
			if entry.IsDir() || !Supported(entry.Name()) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			img, err := LoadFile(path, l.opts.MaxEdge)
			if err != nil {
				l.log.Printf("loading sprite %s: %v", path, err)
				continue
			}
			l.Add(Name(path), img)
		}
	}()
}

// Wait blocks until every LoadDir call has finished.
func (l *Library) Wait() {
	l.wg.Wait()
}

// Supported reports whether path has an image extension the library decodes.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".qoi", ".png", ".bmp":
		return true
	}
	return false
}

// Name is the sprite name of a file: its lowercase basename without extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// LoadFile decodes one image and scales it down so neither side exceeds
// maxEdge pixels.
func LoadFile(path string, maxEdge int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return Fit(img, maxEdge), nil
}

func decode(r io.Reader, ext string) (image.Image, error) {
	switch ext {
	case ".qoi":
		return qoi.Decode(r)
	case ".png":
		return png.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	}
	return nil, fmt.Errorf("unsupported image format %q", ext)
}

// Fit returns img scaled down to fit a maxEdge square, or img itself when
// it already fits.
func Fit(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return img
	}
	if w >= h {
		h = max(1, h*maxEdge/w)
		w = maxEdge
	} else {
		w = max(1, w*maxEdge/h)
		h = maxEdge
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
