package mirror

import (
	"context"
	"sync"
)

// MemoryMirror is an in-process Mirror, used by tests and one-shot commands
type MemoryMirror struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryMirror creates an empty MemoryMirror
func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{data: make(map[string][]byte)}
}

func (m *MemoryMirror) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryMirror) Write(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	m.data[key] = v
	m.mu.Unlock()
	return nil
}

func (m *MemoryMirror) Clear(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored keys
func (m *MemoryMirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
