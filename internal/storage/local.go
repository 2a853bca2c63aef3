package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs under a root directory and serves them from a URL prefix
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) *Local {
	return &Local{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (l *Local) fullPath(path string) string {
	return filepath.Join(l.root, filepath.FromSlash(path))
}

func (l *Local) Put(ctx context.Context, path string, data []byte) error {
	dst := l.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &Error{Op: "put", Path: path, Err: err}
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return &Error{Op: "put", Path: path, Err: err}
	}
	return nil
}

func (l *Local) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(l.fullPath(path))
	if err != nil {
		return nil, &Error{Op: "get", Path: path, Err: err}
	}
	return data, nil
}

func (l *Local) URL(path string) string {
	return l.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (l *Local) Exists(ctx context.Context, path string) bool {
	_, err := os.Stat(l.fullPath(path))
	return err == nil
}

func (l *Local) Delete(ctx context.Context, path string) error {
	err := os.Remove(l.fullPath(path))
	if err != nil && !os.IsNotExist(err) {
		return &Error{Op: "delete", Path: path, Err: err}
	}
	return nil
}
