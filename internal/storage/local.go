package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// LocalRepository implements Repository on the local filesystem. Folders are
// directories below basePath.
type LocalRepository struct {
	basePath string
	mu       sync.RWMutex
}

// NewLocalRepository creates a repository rooted at basePath.
func NewLocalRepository(basePath string) (*LocalRepository, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &LocalRepository{basePath: basePath}, nil
}

// List returns regular files in folder sorted by name.
func (l *LocalRepository) List(ctx context.Context, folder string) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	entries, err := os.ReadDir(l.fullPath(folder, ""))
	if err != nil {
		if os.IsNotExist(err) {
			return []FileInfo{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) == ".tmp" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:    e.Name(),
			Folder:  folder,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Download reads folder/name.
func (l *LocalRepository) Download(ctx context.Context, name, folder string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	data, err := os.ReadFile(l.fullPath(folder, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return data, nil
}

// Upload writes folder/name through a temporary file and rename so readers
// never see partial content.
func (l *LocalRepository) Upload(ctx context.Context, name, folder string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	dest := l.fullPath(folder, name)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return nil
}

// Delete removes folder/name. A missing file is not an error, as for every
// Repository.
func (l *LocalRepository) Delete(ctx context.Context, name, folder string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.fullPath(folder, name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// fullPath returns the filesystem path of folder/name. Names are reduced to
// their base so they cannot escape the folder.
func (l *LocalRepository) fullPath(folder, name string) string {
	dir := filepath.Join(l.basePath, filepath.FromSlash(folder))
	if name == "" {
		return dir
	}
	return filepath.Join(dir, filepath.Base(name))
}
