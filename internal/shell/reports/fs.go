// Package reports stores generated report files on the local filesystem.
package reports

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/storekit/storefront/internal/core/domain"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrInvalidName is returned when a report name cannot form a safe file name.
	ErrInvalidName = errors.New("invalid report name")

	// ErrWriteFailed is returned when the archive cannot persist a file.
	ErrWriteFailed = errors.New("failed to write report file")
)

// =============================================================================
// Archive
// =============================================================================

// Archive writes and serves report files under a single root directory.
type Archive struct {
	root string
}

// NewArchive creates an archive rooted at dir, creating it if needed.
func NewArchive(dir string) (*Archive, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: archive directory is empty", ErrWriteFailed)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return &Archive{root: dir}, nil
}

// Write renders a report into `<root>/<slug>.csv` and returns the file path.
// The file is written to a temp name first and renamed into place so readers
// never observe a partial file.
func (a *Archive) Write(name string, render func(io.Writer) error) (string, error) {
	slug := domain.SlugifyFileName(name)
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	path := filepath.Join(a.root, slug+".csv")

	tmp, err := os.CreateTemp(a.root, slug+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	defer os.Remove(tmp.Name())

	if err := render(tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return path, nil
}

// Open returns a reader for a previously written report file.
func (a *Archive) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
