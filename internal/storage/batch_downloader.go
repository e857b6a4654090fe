package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/avaliafor/avaliafor/internal/bulk"
	"github.com/avaliafor/avaliafor/internal/logger"
)

// BatchDownloader downloads every file of a set of folders in parallel and
// streams them into a single ZIP archive.
type BatchDownloader struct {
	repo        Repository
	concurrency int
	itemTimeout time.Duration
	log         *logger.Logger
}

// BatchResult summarizes a bulk download.
type BatchResult struct {
	Files  []string     `json:"files"`
	Report *bulk.Report `json:"report"`
}

// NewBatchDownloader creates a downloader.
// concurrency: maximum number of parallel downloads
// itemTimeout: limit for a single file
func NewBatchDownloader(repo Repository, concurrency int, itemTimeout time.Duration, log *logger.Logger) *BatchDownloader {
	return &BatchDownloader{
		repo:        repo,
		concurrency: concurrency,
		itemTimeout: itemTimeout,
		log:         log,
	}
}

// Download lists folders and writes every file to w as a ZIP entry named
// by ArchivePath. Failed files are left out and counted in the report; a
// listing failure aborts before anything is written.
func (b *BatchDownloader) Download(ctx context.Context, folders []string, w io.Writer, onProgress func(bulk.Progress)) (*BatchResult, error) {
	var files []FileInfo
	for _, folder := range folders {
		list, err := b.repo.List(ctx, folder)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", folder, err)
		}
		files = append(files, list...)
	}

	zw := zip.NewWriter(w)
	var (
		mu      sync.Mutex
		written []string
	)

	report := bulk.Run(ctx, bulk.Options{
		Operation:   "download",
		Concurrency: b.concurrency,
		ItemTimeout: b.itemTimeout,
		OnProgress:  onProgress,
		Logger:      b.log,
	}, files, func(f FileInfo) string {
		return ArchivePath(f.Folder, f.Name)
	}, func(ctx context.Context, f FileInfo) (int64, error) {
		data, err := b.repo.Download(ctx, f.Name, f.Folder)
		if err != nil {
			return 0, err
		}

		mu.Lock()
		defer mu.Unlock()
		entry := ArchivePath(f.Folder, f.Name)
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: entry, Method: zip.Deflate, Modified: f.ModTime})
		if err != nil {
			return 0, err
		}
		if _, err := fw.Write(data); err != nil {
			return 0, err
		}
		written = append(written, entry)
		return int64(len(data)), nil
	})

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return &BatchResult{Files: written, Report: report}, nil
}
