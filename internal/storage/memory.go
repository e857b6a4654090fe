package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-process Repository. Failures can be injected per
// file name to exercise partial-failure paths.
type MemoryRepository struct {
	mu    sync.RWMutex
	files map[string]map[string]memFile

	failMu   sync.RWMutex
	failures map[string]map[string]error // op → name → error
}

type memFile struct {
	data    []byte
	modTime time.Time
}

// Operations accepted by Fail.
const (
	OpList     = "list"
	OpDownload = "download"
	OpUpload   = "upload"
	OpDelete   = "delete"
)

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		files:    make(map[string]map[string]memFile),
		failures: make(map[string]map[string]error),
	}
}

// Fail makes op fail with err for name. For OpList, name is the folder.
func (m *MemoryRepository) Fail(op, name string, err error) {
	m.failMu.Lock()
	defer m.failMu.Unlock()
	if m.failures[op] == nil {
		m.failures[op] = make(map[string]error)
	}
	m.failures[op][name] = err
}

func (m *MemoryRepository) failure(op, name string) error {
	m.failMu.RLock()
	defer m.failMu.RUnlock()
	return m.failures[op][name]
}

// List implements Repository.
func (m *MemoryRepository) List(ctx context.Context, folder string) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.failure(OpList, folder); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FileInfo, 0, len(m.files[folder]))
	for name, f := range m.files[folder] {
		out = append(out, FileInfo{Name: name, Folder: folder, Size: int64(len(f.data)), ModTime: f.modTime})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Download implements Repository.
func (m *MemoryRepository) Download(ctx context.Context, name, folder string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.failure(OpDownload, name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[folder][name]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return append([]byte(nil), f.data...), nil
}

// Upload implements Repository.
func (m *MemoryRepository) Upload(ctx context.Context, name, folder string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.failure(OpUpload, name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files[folder] == nil {
		m.files[folder] = make(map[string]memFile)
	}
	m.files[folder][name] = memFile{data: append([]byte(nil), data...), modTime: time.Now()}
	return nil
}

// Delete implements Repository.
func (m *MemoryRepository) Delete(ctx context.Context, name, folder string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.failure(OpDelete, name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files[folder], name)
	return nil
}

// Has reports whether folder/name is stored.
func (m *MemoryRepository) Has(folder, name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[folder][name]
	return ok
}
