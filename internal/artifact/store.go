// Package artifact persists analysis images under the static directory and
// hands back the URL paths they are served from.
package artifact

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	// URLPrefix is the route prefix the static file server is mounted on.
	URLPrefix = "/static"
	// jpegQuality matches typical camera-upload quality; artifacts are
	// visual aids, not archival data.
	jpegQuality = 90
)

// Store writes analysis artifacts (the uploaded frame and its stress heatmap)
// as JPEG files. Filenames carry the scan's unix timestamp plus a short
// random suffix so concurrent scans within the same second cannot collide.
type Store struct {
	dir   string
	clock clockwork.Clock
	newID func() string
}

// NewStore creates the directory if needed. A nil clock falls back to real
// time.
func NewStore(dir string, clock clockwork.Clock) (*Store, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact dir: %w", err)
	}
	return &Store{dir: dir, clock: clock, newID: uuid.NewString}, nil
}

// SavePair writes the original frame and its heatmap, returning their URL
// paths in that order.
func (s *Store) SavePair(original, heatmap image.Image) (string, string, error) {
	stamp := s.clock.Now().Unix()
	suffix := strings.ReplaceAll(s.newID(), "-", "")[:8]

	rgbName := fmt.Sprintf("rgb_%d_%s.jpg", stamp, suffix)
	heatName := fmt.Sprintf("vari_%d_%s.jpg", stamp, suffix)

	if err := s.writeJPEG(rgbName, original); err != nil {
		return "", "", err
	}
	if err := s.writeJPEG(heatName, heatmap); err != nil {
		return "", "", err
	}
	return URLPrefix + "/" + rgbName, URLPrefix + "/" + heatName, nil
}

func (s *Store) writeJPEG(name string, img image.Image) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating artifact %s: %w", name, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding artifact %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing artifact %s: %w", name, err)
	}
	return nil
}

// Dir returns the directory artifacts are written to, for mounting the
// static file server.
func (s *Store) Dir() string { return s.dir }
