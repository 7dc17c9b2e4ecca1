package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File keeps the pet in a single JSON file.
type File struct {
	path string
}

// NewFile creates a file store. The file is created on first save.
func NewFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("state path is required")
	}
	return &File{path: filepath.Clean(path)}, nil
}

// Path returns the file the store writes to.
func (f *File) Path() string {
	return f.path
}

// Load reads the saved blob. Returns ErrNotFound if the file doesn't exist.
func (f *File) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	return data, nil
}

// Save writes the blob atomically (write tmp, then rename).
func (f *File) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp state: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}

// Close is a no-op; the file is only open while loading or saving.
func (f *File) Close() error {
	return nil
}
