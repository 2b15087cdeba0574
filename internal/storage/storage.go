// Package storage provides file-backed key/value persistence for the
// client's local state: the session flag, the flavour collection, the
// error list and the log ring buffer each live under their own key.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Well-known storage keys.
const (
	// KeySession holds the persisted authentication flag ("1"/"0").
	KeySession = "session"
	// KeyFlavours holds the serialized flavour collection.
	KeyFlavours = "flavours"
	// KeyErrors holds the serialized typed-error list.
	KeyErrors = "errors"
	// KeyLogs holds the serialized log ring buffer.
	KeyLogs = "logs"
)

// Store persists opaque blobs under string keys.
type Store interface {
	// Read returns the blob stored under key. A missing key yields
	// an error satisfying os.IsNotExist.
	Read(key string) ([]byte, error)
	// Write replaces the blob stored under key.
	Write(key string, data []byte) error
}

// FileStore keeps each key as a JSON file inside a single directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed and returns a
// FileStore rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

// Read returns the contents of the file backing key.
func (fs *FileStore) Read(key string) ([]byte, error) {
	return os.ReadFile(fs.path(key))
}

// Write replaces the file backing key.
func (fs *FileStore) Write(key string, data []byte) error {
	return os.WriteFile(fs.path(key), data, 0o600)
}

// MemStore is an in-memory Store used by tests.
type MemStore struct {
	data map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: map[string][]byte{}}
}

// Read returns the blob under key or os.ErrNotExist.
func (m *MemStore) Read(key string) ([]byte, error) {
	b, ok := m.data[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return b, nil
}

// Write replaces the blob under key.
func (m *MemStore) Write(key string, data []byte) error {
	m.data[key] = append([]byte(nil), data...)
	return nil
}
