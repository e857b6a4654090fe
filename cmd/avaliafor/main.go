// Package main implements the avaliafor server binary: the JSON API, the
// gRPC maintenance service and the metrics endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/avaliafor/avaliafor/internal/app"
	"github.com/avaliafor/avaliafor/internal/config"
	"github.com/avaliafor/avaliafor/internal/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var (
		configFile  string
		envFile     string
		dataDir     string
		httpAddr    string
		grpcAddr    string
		showVersion bool
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&envFile, "env-file", ".env", "Path to a .env file with credentials")
	flag.StringVar(&dataDir, "data-dir", "", "Base directory for local data")
	flag.StringVar(&httpAddr, "http-addr", "", "HTTP listen address")
	flag.StringVar(&grpcAddr, "grpc-addr", "", "gRPC listen address")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "avaliafor - supplier evaluation service\n\n")
		fmt.Fprintf(os.Stderr, "Usage: avaliafor [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AVALIAFOR_DATA_DIR        Base directory for local data\n")
		fmt.Fprintf(os.Stderr, "  AVALIAFOR_DB_DRIVER       mongo, sqlite or memory\n")
		fmt.Fprintf(os.Stderr, "  AVALIAFOR_FILES_TYPE      local, s3, gcs or none\n")
		fmt.Fprintf(os.Stderr, "  MONGODB_USERNAME, MONGODB_PASSWORD, MONGODB_CLUSTER\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("avaliafor version %s (commit: %s)\n", version, commit)
		return
	}

	cfg, err := loadConfig(configFile, envFile, dataDir, httpAddr, grpcAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("starting avaliafor", "version", version, "commit", commit, "data_dir", cfg.DataDir,
		"database", cfg.Database.Driver, "files", cfg.Files.Type)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to create application", "error", err)
	}
	if err := application.Start(ctx); err != nil {
		log.Fatal("failed to start application", "error", err)
	}

	if err := application.WaitForShutdown(ctx); err != nil {
		log.Error("shutdown finished with errors", "error", err)
	}
	stopCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()
	if err := application.Stop(stopCtx); err != nil {
		log.Error("stop error", "error", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults or a file, then .env and the environment, then
// flags.
func loadConfig(configFile, envFile, dataDir, httpAddr, grpcAddr string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(configFile); err != nil {
			return nil, err
		}
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	config.LoadFromEnv(cfg)

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if httpAddr != "" {
		cfg.HTTP.Addr = httpAddr
	}
	if grpcAddr != "" {
		cfg.GRPC.Addr = grpcAddr
	}
	return cfg, nil
}
