package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/avaliafor/avaliafor/internal/bulk"
	"github.com/avaliafor/avaliafor/internal/logger"
)

func TestBatchDownloader_ZipsEveryFolder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	folders := DefaultFolders()
	for i := 0; i < 4; i++ {
		_ = repo.Upload(ctx, fmt.Sprintf("adm%d.xlsx", i), folders.Administration, []byte("adm"))
	}
	_ = repo.Upload(ctx, "sup_SUP.xlsx", folders.Supplies, []byte("supplies"))

	var last bulk.Progress
	var buf bytes.Buffer
	res, err := NewBatchDownloader(repo, 3, time.Second, logger.Nop()).
		Download(ctx, folders.All(), &buf, func(p bulk.Progress) { last = p })
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if res.Report.Succeeded != 5 || res.Report.Failed != 0 {
		t.Fatalf("report = %+v", res.Report)
	}
	if last.Done != 5 || last.Total != 5 || last.Bytes != 4*3+8 {
		t.Errorf("last progress = %+v", last)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("invalid archive: %v", err)
	}
	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		entries[f.Name] = string(data)
	}
	if entries["Avaliacao_Fornecedores_SUP/sup_SUP.xlsx"] != "supplies" {
		t.Errorf("entries = %v", entries)
	}
	if len(entries) != 5 {
		t.Errorf("got %d entries", len(entries))
	}
}

func TestBatchDownloader_SkipsFailedFiles(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	folder := DefaultFolders().Administration
	for i := 0; i < 3; i++ {
		_ = repo.Upload(ctx, fmt.Sprintf("f%d.xlsx", i), folder, []byte("x"))
	}
	repo.Fail(OpDownload, "f1.xlsx", errors.New("timeout"))

	var buf bytes.Buffer
	res, err := NewBatchDownloader(repo, 2, time.Second, logger.Nop()).Download(ctx, []string{folder}, &buf, nil)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if res.Report.Succeeded != 2 || res.Report.Failed != 1 || len(res.Files) != 2 {
		t.Errorf("result = %+v / %+v", res, res.Report)
	}
	if _, ok := res.Report.Failures["Avaliacao_Fornecedores_ADM/f1.xlsx"]; !ok {
		t.Errorf("failures = %v", res.Report.Failures)
	}
}

func TestBatchDownloader_ListFailureAborts(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Fail(OpList, "ADM", errors.New("forbidden"))
	var buf bytes.Buffer
	if _, err := NewBatchDownloader(repo, 3, time.Second, logger.Nop()).Download(context.Background(), []string{"ADM"}, &buf, nil); err == nil {
		t.Error("expected list failure")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written when listing fails")
	}
}
