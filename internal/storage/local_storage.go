package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"go-crowd-monitor/pkg/validation"
)

// LocalStore reads and writes files on the local filesystem.
// Writes go to a temporary sibling file that is renamed into place only
// after the encoder succeeds, so failed writes never leave partial output.
type LocalStore struct{}

// NewLocalStore creates a filesystem backend
func NewLocalStore() Backend {
	return &LocalStore{}
}

// Open opens the file at loc.Path
func (s *LocalStore) Open(ctx context.Context, loc validation.Location) (io.ReadCloser, error) {
	f, err := os.Open(loc.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", loc.Path, err)
	}
	return f, nil
}

// Write encodes into a temporary file and renames it over loc.Path
func (s *LocalStore) Write(ctx context.Context, loc validation.Location, encode EncodeFunc) (err error) {
	dir, base := filepath.Split(loc.Path)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", loc.Path, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(f)
	if err = encode(w); err != nil {
		return fmt.Errorf("encode %s: %w", loc.Path, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", loc.Path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", loc.Path, err)
	}
	if err = os.Rename(tmpPath, loc.Path); err != nil {
		return fmt.Errorf("rename %s: %w", loc.Path, err)
	}
	return nil
}
