package app

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avaliafor/avaliafor/internal/config"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/pkg/types"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Database.Driver = config.DriverMemory
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.GRPC.Addr = "127.0.0.1:0"
	return cfg
}

func TestApp_ServesAndStops(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := a.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}
	base := "http://" + a.HTTPAddr()
	if a.GRPCAddr() == "" {
		t.Error("gRPC listener not started")
	}

	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	var health map[string]string
	json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if health["status"] != "healthy" {
		t.Errorf("health = %v", health)
	}

	body := `{"origin":"SUP","unit":"EPSA","period":"31/10/2025","supplier":"Beta",
		"answers":[{"category":"Documentação","question":"Alvará em dia?","answer":"Atende Totalmente"}]}`
	resp, err = http.Post(base+"/v1/evaluations", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit status = %d", resp.StatusCode)
	}
	artifact := filepath.Join(cfg.Files.Path, filepath.FromSlash(cfg.Files.SuppliesFolder), "Beta_OUT-25_EPSA_SUP.xlsx")
	if _, err := os.Stat(artifact); err != nil {
		t.Errorf("artifact not written to the local repository: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, err := http.Get(base + "/health"); err == nil {
		t.Error("server still answering after Stop")
	}
}

func TestApp_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Files.Type = "ftp"
	if _, err := New(context.Background(), cfg, logger.Nop()); err == nil {
		t.Error("invalid files type accepted")
	}
}

func TestApp_WithoutFileRepository(t *testing.T) {
	cfg := testConfig(t)
	cfg.Files.Type = config.FilesNone
	a, err := New(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	rows, err := a.Maintenance.Control(context.Background(), nil)
	if err != nil || len(rows) != 0 {
		t.Errorf("Control = %v, %v", rows, err)
	}
	if _, err := a.Maintenance.DownloadAll(context.Background(), []types.Origin{types.OriginSupplies}, nil, nil); err == nil {
		t.Error("download without repository should fail")
	}
}
