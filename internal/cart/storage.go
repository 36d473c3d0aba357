package cart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage is a single named slot holding the JSON-encoded cart.
type Storage interface {
	// Load returns the slot contents; ok is false when the slot was never
	// written.
	Load(ctx context.Context) (raw []byte, ok bool, err error)
	Save(ctx context.Context, raw []byte) error
}

// MemoryStorage keeps slots in process memory. Slots share one map so a
// MemorySlots factory can hand out many of them.
type MemoryStorage struct {
	mu   *sync.Mutex
	data map[string][]byte
	slot string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{mu: &sync.Mutex{}, data: map[string][]byte{}, slot: "cart"}
}

// Slot returns a storage sharing this one's backing map under another name.
func (m *MemoryStorage) Slot(name string) *MemoryStorage {
	return &MemoryStorage{mu: m.mu, data: m.data, slot: name}
}

func (m *MemoryStorage) Load(ctx context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[m.slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), raw...), true, nil
}

func (m *MemoryStorage) Save(ctx context.Context, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.slot] = append([]byte(nil), raw...)
	return nil
}

// FileStorage keeps the slot in a JSON file. Writes go through a temp file
// and a rename so a crash never leaves a half-written cart.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load(ctx context.Context) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", f.path, err)
	}
	return raw, true, nil
}

func (f *FileStorage) Save(ctx context.Context, raw []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	return os.Rename(tmp.Name(), f.path)
}
