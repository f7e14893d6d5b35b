package upload

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// thumbMax is the bounding box (pixels) thumbnails are scaled to fit.
const thumbMax = 320

// Saver writes uploaded photos to a fixed directory under generated,
// collision-resistant names and keeps downscaled copies in a thumbs/
// subdirectory.
type Saver struct {
	dir string
}

// New ensures dir and dir/thumbs exist and returns a Saver for them.
// Called once at startup; a failure here should abort the process.
func New(dir string) (*Saver, error) {
	if err := os.MkdirAll(filepath.Join(dir, "thumbs"), 0755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Saver{dir: dir}, nil
}

// Save writes the photo bytes under a generated name and returns the
// relative reference path ("uploads/<name>") clients use to fetch it.
// The name combines the clock and a random fragment so two concurrent
// uploads of the same original filename never collide.
func (s *Saver) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("photo-%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	// Best effort: a failed thumbnail never fails the upload.
	s.makeThumb(name, ext)

	// The reference uses the public /uploads/ route, not the configured
	// directory name.
	return path.Join("uploads", name), nil
}

// makeThumb decodes the stored photo and writes a copy scaled to fit
// thumbMax x thumbMax (never upscaled) to thumbs/<name>.
func (s *Saver) makeThumb(name, ext string) {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := 1.0
	if w > thumbMax || h > thumbMax {
		scale = float64(thumbMax) / float64(max(w, h))
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	out, err := os.Create(filepath.Join(s.dir, "thumbs", name))
	if err != nil {
		return
	}
	defer out.Close()

	switch ext {
	case ".png":
		png.Encode(out, dst)
	case ".gif":
		gif.Encode(out, dst, nil)
	default:
		jpeg.Encode(out, dst, nil)
	}
}
