package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Adapter reads and writes the raw bytes of the ledger document.
// Read returns nil, nil when the backing does not exist yet.
type Adapter interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// FileAdapter persists the document to a single JSON file
type FileAdapter struct {
	Path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{Path: path}
}

func (a *FileAdapter) Read() ([]byte, error) {
	data, err := os.ReadFile(a.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Write replaces the file atomically: the bytes go to a .tmp sibling which is
// then renamed over the target, so a crash never leaves a half-written ledger.
func (a *FileAdapter) Write(data []byte) error {
	if dir := filepath.Dir(a.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := a.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, a.Path)
}

// MemoryAdapter keeps the document in memory. Used for isolated test instances.
type MemoryAdapter struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryAdapter(initial []byte) *MemoryAdapter {
	return &MemoryAdapter{data: append([]byte(nil), initial...)}
}

func (a *MemoryAdapter) Read() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.data == nil {
		return nil, nil
	}
	return append([]byte(nil), a.data...), nil
}

func (a *MemoryAdapter) Write(data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = append([]byte(nil), data...)
	return nil
}

// Bytes returns what was last written
func (a *MemoryAdapter) Bytes() []byte {
	b, _ := a.Read()
	return b
}
