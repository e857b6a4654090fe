// Package storage provides the file repository that holds exported
// evaluation artifacts, grouped in one folder per workflow.
package storage

import (
	"context"
	"errors"
	"math"
	"path"
	"strings"
	"time"

	"github.com/avaliafor/avaliafor/pkg/types"
)

// Common errors for repository operations.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrUploadFailed   = errors.New("upload failed")
	ErrDownloadFailed = errors.New("download failed")
	ErrDeleteFailed   = errors.New("delete failed")
	ErrListFailed     = errors.New("list failed")
)

// FileInfo describes a stored artifact.
type FileInfo struct {
	Name    string    `json:"name"`
	Folder  string    `json:"folder"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Repository stores artifacts by (folder, name).
// Implementations include the local filesystem, S3, GCS and memory.
type Repository interface {
	// List returns the files directly inside folder. A missing folder is
	// empty, not an error.
	List(ctx context.Context, folder string) ([]FileInfo, error)

	// Download returns the content of folder/name or ErrObjectNotFound.
	Download(ctx context.Context, name, folder string) ([]byte, error)

	// Upload creates or replaces folder/name.
	Upload(ctx context.Context, name, folder string, data []byte) error

	// Delete removes folder/name. Deleting a missing file succeeds.
	Delete(ctx context.Context, name, folder string) error
}

// Folders maps each workflow to its artifact folder.
type Folders struct {
	Administration string
	Supplies       string
}

// DefaultFolders returns the standard folder layout.
func DefaultFolders() Folders {
	return Folders{
		Administration: "Avaliacao_Fornecedores/ADM",
		Supplies:       "Avaliacao_Fornecedores/SUP",
	}
}

// For returns the folder of origin.
func (f Folders) For(origin types.Origin) string {
	if origin == types.OriginSupplies {
		return f.Supplies
	}
	return f.Administration
}

// All returns both folders, administration first.
func (f Folders) All() []string {
	return []string{f.Administration, f.Supplies}
}

// ObjectKey joins folder and name with '/'.
func ObjectKey(folder, name string) string {
	return path.Join(strings.Trim(folder, "/"), name)
}

// ArchivePath is the entry path of a file inside a bulk download archive,
// e.g. Avaliacao_Fornecedores_ADM/x.xlsx.
func ArchivePath(folder, name string) string {
	return strings.ReplaceAll(strings.Trim(folder, "/"), "/", "_") + "/" + name
}

// retryWithBackoff executes operation with exponential backoff, giving up
// immediately on ErrObjectNotFound or context cancellation.
func retryWithBackoff(ctx context.Context, maxRetries int, operation func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, ErrObjectNotFound) {
			return lastErr
		}

		if attempt < maxRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return lastErr
}
