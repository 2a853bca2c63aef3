package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Put(ctx, "a/b.txt", []byte("hello")); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := m.Delete(ctx, "a/b.txt"); err != nil {
		t.Errorf("first delete: %v", err)
	}
	if err := m.Delete(ctx, "a/b.txt"); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
	if m.Exists(ctx, "a/b.txt") {
		t.Error("blob still exists after delete")
	}
}

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	l := NewLocal(root, "/fs/uploads")

	if err := l.Put(ctx, "uploads/products/x.bin", []byte{1, 2, 3}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !l.Exists(ctx, "uploads/products/x.bin") {
		t.Fatal("blob should exist after put")
	}

	data, err := l.Get(ctx, "uploads/products/x.bin")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(data) != 3 || data[0] != 1 {
		t.Errorf("unexpected data %v", data)
	}

	if got, want := l.URL("uploads/products/x.bin"), "/fs/uploads/uploads/products/x.bin"; got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}

	if err := l.Delete(ctx, "uploads/products/x.bin"); err != nil {
		t.Errorf("delete: %v", err)
	}
	if err := l.Delete(ctx, "uploads/products/x.bin"); err != nil {
		t.Errorf("delete of missing path should be nil, got %v", err)
	}

	// Nothing should be left under the blob's directory
	if _, err := filepath.Glob(filepath.Join(root, "uploads", "products", "*")); err != nil {
		t.Fatalf("glob: %v", err)
	}
}

func TestManagerResolvesDisks(t *testing.T) {
	m := NewEmptyManager()
	mem := NewMemory()
	m.Register(DefaultDisk, mem)

	if _, err := m.Disk("s3"); err == nil {
		t.Error("unknown disk should error")
	}

	disk, err := m.Disk("")
	if err != nil {
		t.Fatalf("empty disk name should resolve to default: %v", err)
	}
	if disk != Storage(mem) {
		t.Error("default disk mismatch")
	}
}
