// Package assets locates optional font and image files. Callers fall back to
// built-in resources when nothing is found.
package assets

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when none of the candidate files exist.
var ErrNotFound = errors.New("assets: not found")

// Font and figure file names tried in order.
var (
	FontNames   = []string{"typeface.otf", "typeface.ttf", "arial.ttf", "Arial.ttf", "calibri.ttf", "DejaVuSans.ttf"}
	FigureNames = []string{
		"figure_19_1.png", "figure_19_1.jpg", "figure_19_1.jpeg",
		"figure19_1.png", "figure19_1.jpg",
		"drum_test.png", "drum_test.jpg",
		"shutter_test.png", "shutter_test.jpg",
	}
)

// Resolver searches a list of directories.
type Resolver struct {
	dirs []string
}

// NewResolver creates a resolver. Empty directories are skipped.
func NewResolver(dirs ...string) *Resolver {
	r := &Resolver{}
	for _, d := range dirs {
		if d != "" {
			r.dirs = append(r.dirs, d)
		}
	}
	return r
}

// DefaultResolver searches dir (when set), ./assets, the working directory and
// the assets directory next to the executable.
func DefaultResolver(dir string) *Resolver {
	dirs := []string{dir, "assets", "."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), "assets"))
	}
	return NewResolver(dirs...)
}

// Resolve returns the first existing regular file among names, trying every
// name in a directory before moving to the next directory.
func (r *Resolver) Resolve(names []string) (string, error) {
	for _, dir := range r.dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, nil
			}
		}
	}
	return "", ErrNotFound
}

// Read resolves names and returns the file contents.
func (r *Resolver) Read(names []string) (string, []byte, error) {
	path, err := r.Resolve(names)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, data, nil
}
