// Package mirror is the client-side key/value store that shadows section data
// on the device so it survives restarts and stands in for the server when the
// user is anonymous or offline.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Mirror stores opaque JSON payloads by key
type Mirror interface {
	// Read returns the payload for key and whether it exists
	Read(ctx context.Context, key string) ([]byte, bool, error)

	// Write replaces the payload for key
	Write(ctx context.Context, key string, value []byte) error

	// Clear removes key. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error
}

// Backend names a Mirror implementation
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Config selects and locates a mirror backend
type Config struct {
	Backend Backend
	Path    string // directory for file, database file for sqlite
}

// ErrInvalidKey is returned for empty keys or keys containing path separators
var ErrInvalidKey = errors.New("invalid mirror key")

// Open creates the configured mirror. The caller closes it with Close when the
// backend holds resources.
func Open(cfg Config) (Mirror, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileMirror(cfg.Path)
	case BackendSQLite:
		return OpenSQLite(cfg.Path)
	case BackendMemory:
		return NewMemoryMirror(), nil
	default:
		return nil, fmt.Errorf("unknown mirror backend: %s", cfg.Backend)
	}
}

// Close releases backend resources if m holds any
func Close(m Mirror) error {
	if c, ok := m.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
