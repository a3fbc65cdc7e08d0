package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileMirror keeps one JSON file per key under a directory
type FileMirror struct {
	mu  sync.RWMutex
	dir string
}

// NewFileMirror creates the directory if needed
func NewFileMirror(dir string) (*FileMirror, error) {
	if dir == "" {
		return nil, fmt.Errorf("mirror directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create mirror directory: %w", err)
	}
	return &FileMirror{dir: dir}, nil
}

func (m *FileMirror) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

// Read loads the payload for key
func (m *FileMirror) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read mirror key %s: %w", key, err)
	}
	return data, true, nil
}

// Write replaces the payload for key atomically
func (m *FileMirror) Write(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := atomicWriteFile(m.path(key), value); err != nil {
		return fmt.Errorf("failed to write mirror key %s: %w", key, err)
	}
	return nil
}

// Clear deletes the file for key
func (m *FileMirror) Clear(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.Remove(m.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear mirror key %s: %w", key, err)
	}
	return nil
}

// atomicWriteFile writes to a temp file, syncs it and renames it into place
// so readers never observe a partial payload.
func atomicWriteFile(filePath string, data []byte) error {
	tempFile := filePath + ".tmp"
	f, err := os.OpenFile(tempFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}
