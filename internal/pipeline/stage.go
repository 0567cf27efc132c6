package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// stage collects a mode's artifacts in a temp dir under the output root so
// a failed run never leaves a partial set behind.
type stage struct {
	dir   string
	files []string
}

func newStage(root string) (*stage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	dir, err := os.MkdirTemp(root, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &stage{dir: dir}, nil
}

// path registers name and returns where to write it.
func (s *stage) path(name string) string {
	s.files = append(s.files, name)
	return filepath.Join(s.dir, name)
}

// write creates name and fills it with fn.
func (s *stage) write(name string, fn func(io.Writer) error) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// commit replaces dest with the staged set in one directory rename. Files
// already in dest that this run did not produce (the other command's
// artifacts) are hard-linked into the staged set first, so dest is either
// the old set or the complete new one.
func (s *stage) commit(dest string) error {
	staged := make(map[string]bool, len(s.files))
	for _, name := range s.files {
		staged[name] = true
	}

	entries, err := os.ReadDir(dest)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", dest, err)
	}
	exists := err == nil
	var subdirs []string
	for _, e := range entries {
		switch {
		case staged[e.Name()]:
		case e.IsDir():
			subdirs = append(subdirs, e.Name())
		default:
			if err := os.Link(filepath.Join(dest, e.Name()), filepath.Join(s.dir, e.Name())); err != nil {
				return fmt.Errorf("keep %s: %w", e.Name(), err)
			}
		}
	}

	prev := s.dir + "-previous"
	if exists {
		if err := os.Rename(dest, prev); err != nil {
			return fmt.Errorf("move aside %s: %w", dest, err)
		}
	}
	if err := os.Rename(s.dir, dest); err != nil {
		if exists {
			os.Rename(prev, dest)
		}
		return fmt.Errorf("move into %s: %w", dest, err)
	}
	if !exists {
		return nil
	}
	for _, name := range subdirs {
		if err := os.Rename(filepath.Join(prev, name), filepath.Join(dest, name)); err != nil {
			return fmt.Errorf("keep %s: %w", name, err)
		}
	}
	return os.RemoveAll(prev)
}

func (s *stage) discard() {
	os.RemoveAll(s.dir)
}
