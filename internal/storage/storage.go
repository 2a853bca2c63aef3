package storage

import (
	"context"
	"fmt"

	"go-backoffice/internal/config"
)

// Storage is a path-addressable blob backend. Delete of a missing path
// is a no-op, not an error.
type Storage interface {
	Put(ctx context.Context, path string, data []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	URL(path string) string
	Exists(ctx context.Context, path string) bool
	Delete(ctx context.Context, path string) error
}

// Error wraps a failed blob operation so callers can distinguish storage
// failures from validation or record-store failures.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// DefaultDisk is the disk used when upload options leave it unset
const DefaultDisk = "public"

// Manager resolves logical disk names to backends
type Manager struct {
	disks map[string]Storage
}

// NewManager registers the "public" disk backed by the local filesystem
func NewManager(cfg *config.Config) *Manager {
	m := NewEmptyManager()
	m.Register(DefaultDisk, NewLocal(cfg.FSPath, cfg.FSURL))
	return m
}

// NewEmptyManager returns a manager with no disks registered, for callers
// that wire their own backends (tests, seeding).
func NewEmptyManager() *Manager {
	return &Manager{disks: make(map[string]Storage)}
}

func (m *Manager) Register(name string, s Storage) {
	m.disks[name] = s
}

func (m *Manager) Disk(name string) (Storage, error) {
	if name == "" {
		name = DefaultDisk
	}
	s, ok := m.disks[name]
	if !ok {
		return nil, fmt.Errorf("unknown disk: %s", name)
	}
	return s, nil
}
