package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSRepository implements Repository on a Google Cloud Storage bucket.
type GCSRepository struct {
	client     *storage.Client
	bucket     string
	maxRetries int
}

// GCSConfig holds configuration for GCS storage.
type GCSConfig struct {
	// CredentialsFile is a service account key; empty uses ADC
	CredentialsFile string
}

// NewGCSRepository creates a repository for bucket.
func NewGCSRepository(ctx context.Context, bucket string, cfg GCSConfig) (*GCSRepository, error) {
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSRepository{client: client, bucket: bucket, maxRetries: 3}, nil
}

// List implements Repository.
func (g *GCSRepository) List(ctx context.Context, folder string) ([]FileInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	prefix := strings.Trim(folder, "/") + "/"
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})
	files := []FileInfo{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
		}
		// synthetic directory entries carry only a prefix
		if attrs.Name == "" || attrs.Name == prefix {
			continue
		}
		files = append(files, FileInfo{
			Name:    path.Base(attrs.Name),
			Folder:  folder,
			Size:    attrs.Size,
			ModTime: attrs.Updated,
		})
	}
	return files, nil
}

// Download implements Repository.
func (g *GCSRepository) Download(ctx context.Context, name, folder string) ([]byte, error) {
	var data []byte
	err := retryWithBackoff(ctx, g.maxRetries, func() error {
		r, err := g.client.Bucket(g.bucket).Object(ObjectKey(folder, name)).NewReader(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotExist) {
				return ErrObjectNotFound
			}
			return err
		}
		defer r.Close()
		data, err = io.ReadAll(r)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return data, nil
}

// Upload implements Repository.
func (g *GCSRepository) Upload(ctx context.Context, name, folder string, data []byte) error {
	err := retryWithBackoff(ctx, g.maxRetries, func() error {
		w := g.client.Bucket(g.bucket).Object(ObjectKey(folder, name)).NewWriter(ctx)
		w.ContentType = xlsxContentType
		if _, err := w.Write(data); err != nil {
			_ = w.Close()
			return err
		}
		return w.Close()
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return nil
}

// Delete implements Repository.
func (g *GCSRepository) Delete(ctx context.Context, name, folder string) error {
	err := retryWithBackoff(ctx, g.maxRetries, func() error {
		err := g.client.Bucket(g.bucket).Object(ObjectKey(folder, name)).Delete(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// Close releases the client.
func (g *GCSRepository) Close() error {
	return g.client.Close()
}
