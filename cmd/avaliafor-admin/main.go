// Package main implements avaliafor-admin, a one-shot maintenance tool that
// runs against the configured store without starting the servers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/avaliafor/avaliafor/internal/app"
	"github.com/avaliafor/avaliafor/internal/bulk"
	"github.com/avaliafor/avaliafor/internal/config"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/pkg/types"
)

var (
	version = "dev"
	commit  = "unknown"
)

type runFunc func(ctx context.Context, a *app.App, cfg *config.Config, args []string) error

var commands = map[string]runFunc{
	"backup":          runBackup,
	"restore":         runRestore,
	"regenerate":      runRegenerate,
	"purge":           runPurge,
	"import-defaults": runImportDefaults,
	"download":        runDownload,
	"submissions":     runSubmissions,
}

var commandOrder = []string{"backup", "restore", "regenerate", "purge", "import-defaults", "download", "submissions"}

var usage = map[string]string{
	"backup":          "backup [-compressed] [-out dir]",
	"restore":         "restore <file>",
	"regenerate":      "regenerate -supplier S -unit U -period P -origin O [-out file]",
	"purge":           "purge [-origin O] [-yes]",
	"import-defaults": "import-defaults",
	"download":        "download [-origin O] -out file.zip",
	"submissions":     "submissions [-origin O]",
}

func main() {
	var (
		configFile  string
		envFile     string
		dataDir     string
		showVersion bool
	)
	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&envFile, "env-file", ".env", "Path to a .env file with credentials")
	flag.StringVar(&dataDir, "data-dir", "", "Base directory for local data")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "avaliafor-admin - maintenance commands\n\n")
		fmt.Fprintf(os.Stderr, "Usage: avaliafor-admin [options] <command> [command options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		for _, name := range commandOrder {
			fmt.Fprintf(os.Stderr, "  %s\n", usage[name])
		}
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("avaliafor-admin version %s (commit: %s)\n", version, commit)
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	run, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
			os.Exit(1)
		}
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	config.LoadFromEnv(cfg)
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to create application", "error", err)
	}
	runErr := run(ctx, a, cfg, flag.Args()[1:])
	if err := a.Close(); err != nil {
		log.Warn("close failed", "error", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", flag.Arg(0), runErr)
		os.Exit(1)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// originFlag parses an optional origin; empty selects both workflows.
func originFlag(s string) (*types.Origin, error) {
	if s == "" {
		return nil, nil
	}
	o, err := types.ParseOrigin(s)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func runBackup(ctx context.Context, a *app.App, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	compressed := fs.Bool("compressed", cfg.Maintenance.CompressBackups, "Write a snappy compressed backup")
	out := fs.String("out", cfg.BackupDir(), "Directory for the backup file")
	fs.Parse(args)

	if err := os.MkdirAll(*out, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(*out, ".backup-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	name, err := a.Maintenance.BackupTo(ctx, tmp, *compressed)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	path := filepath.Join(*out, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	fmt.Printf("backup written to %s\n", path)
	return nil
}

func runRestore(ctx context.Context, a *app.App, _ *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", usage["restore"])
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := a.Maintenance.RestoreFrom(ctx, filepath.Base(args[0]), f)
	if report != nil {
		if perr := printJSON(report); perr != nil {
			return perr
		}
	}
	return err
}

func runRegenerate(ctx context.Context, a *app.App, _ *config.Config, args []string) error {
	fs := flag.NewFlagSet("regenerate", flag.ExitOnError)
	supplier := fs.String("supplier", "", "Supplier name")
	unit := fs.String("unit", "", "Unit name")
	period := fs.String("period", "", "Period (DD/MM/YYYY or MMM-YY)")
	originName := fs.String("origin", "", "Workflow: ADM or SUP")
	out := fs.String("out", "", "Also write the artifact to this file")
	fs.Parse(args)

	origin, err := originFlag(*originName)
	if err != nil {
		return err
	}
	if *supplier == "" || *unit == "" || *period == "" || origin == nil {
		return fmt.Errorf("usage: %s", usage["regenerate"])
	}
	art, err := a.Maintenance.RegenerateArtifact(ctx, *supplier, *unit, *period, *origin)
	if err != nil {
		return err
	}
	if *out != "" {
		if err := os.WriteFile(*out, art.Data, 0644); err != nil {
			return err
		}
	}
	return printJSON(art)
}

func runPurge(ctx context.Context, a *app.App, _ *config.Config, args []string) error {
	fs := flag.NewFlagSet("purge", flag.ExitOnError)
	originName := fs.String("origin", "", "Workflow to purge: ADM or SUP (default both)")
	yes := fs.Bool("yes", false, "Confirm the purge")
	fs.Parse(args)

	origin, err := originFlag(*originName)
	if err != nil {
		return err
	}
	ch, err := a.Maintenance.RequestPurge(origin)
	if err != nil {
		return err
	}
	if !*yes {
		fmt.Printf("purge of %s not confirmed; run again with -yes\n", ch.Action)
		return nil
	}
	results, err := a.Maintenance.Purge(ctx, origin, ch.Token)
	if perr := printJSON(results); perr != nil && err == nil {
		err = perr
	}
	return err
}

func runImportDefaults(ctx context.Context, a *app.App, _ *config.Config, _ []string) error {
	if err := a.Maintenance.ImportDefaults(ctx); err != nil {
		return err
	}
	fmt.Println("reference data imported")
	return nil
}

func runDownload(ctx context.Context, a *app.App, _ *config.Config, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	originName := fs.String("origin", "", "Workflow: ADM or SUP (default both)")
	out := fs.String("out", "", "Destination ZIP file")
	fs.Parse(args)

	if *out == "" {
		return fmt.Errorf("usage: %s", usage["download"])
	}
	origin, err := originFlag(*originName)
	if err != nil {
		return err
	}
	var origins []types.Origin
	if origin != nil {
		origins = []types.Origin{*origin}
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	res, err := a.Maintenance.DownloadAll(ctx, origins, f, func(p bulk.Progress) {
		if p.Err != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s: %v\n", p.Done, p.Total, p.Item, p.Err)
			return
		}
		fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", p.Done, p.Total, p.Item)
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*out)
		return err
	}
	fmt.Printf("%d files written to %s (%d failed)\n", res.Report.Succeeded, *out, res.Report.Failed)
	return nil
}

func runSubmissions(ctx context.Context, a *app.App, _ *config.Config, args []string) error {
	fs := flag.NewFlagSet("submissions", flag.ExitOnError)
	originName := fs.String("origin", "", "Workflow: ADM or SUP (default both)")
	fs.Parse(args)

	origin, err := originFlag(*originName)
	if err != nil {
		return err
	}
	rows, err := a.Maintenance.Control(ctx, origin)
	if err != nil {
		return err
	}
	return printJSON(rows)
}
