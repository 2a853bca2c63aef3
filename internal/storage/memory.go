package storage

import (
	"context"
	"os"
	"sync"
)

// Memory keeps blobs in a map. Used by tests and as a scratch disk.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Put(ctx context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[path] = cp
	return nil
}

func (m *Memory) Get(ctx context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[path]
	if !ok {
		return nil, &Error{Op: "get", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

func (m *Memory) URL(path string) string {
	return "memory://" + path
}

func (m *Memory) Exists(ctx context.Context, path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[path]
	return ok
}

func (m *Memory) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, path)
	return nil
}

// Len reports the number of stored blobs
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
