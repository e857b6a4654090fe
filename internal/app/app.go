// Package app wires configuration, storage and services into the running
// evaluation server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	grpcapi "github.com/avaliafor/avaliafor/internal/api/grpc"
	httpapi "github.com/avaliafor/avaliafor/internal/api/http"
	"github.com/avaliafor/avaliafor/internal/backup"
	"github.com/avaliafor/avaliafor/internal/config"
	"github.com/avaliafor/avaliafor/internal/docstore"
	"github.com/avaliafor/avaliafor/internal/evaluation"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/maintenance"
	"github.com/avaliafor/avaliafor/internal/observability"
	"github.com/avaliafor/avaliafor/internal/reference"
	"github.com/avaliafor/avaliafor/internal/report"
	"github.com/avaliafor/avaliafor/internal/server"
	"github.com/avaliafor/avaliafor/internal/storage"
)

// statsWindow is how long an idle route stays in the route statistics.
const statsWindow = time.Hour

// App owns the services and server lifecycles.
type App struct {
	cfg *config.Config
	log *logger.Logger

	db       *docstore.Manager
	files    storage.Repository
	stats    *observability.RouteStats
	shutdown *server.ShutdownManager

	Catalog     *reference.Catalog
	Evaluations *evaluation.Store
	Maintenance *maintenance.Service
	Reports     *report.Service

	httpServer   *http.Server
	httpListener net.Listener
	grpcServer   *grpc.Server
	grpcListener net.Listener

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	group   *errgroup.Group
}

// New validates cfg and builds every service. The database is connected
// lazily, so an unreachable store does not prevent startup.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		stats:    observability.NewRouteStats(statsWindow),
		shutdown: server.NewShutdownManager(server.DefaultShutdownConfig(), log),
	}

	a.db = docstore.NewManager(docstore.Options{
		Driver:         cfg.Database.Driver,
		Name:           cfg.Database.Name,
		URI:            mongoURI(cfg),
		SQLitePath:     cfg.Database.SQLitePath,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	a.shutdown.RegisterCloser("database", server.CloserFunc(func() error {
		return a.db.Close(context.Background())
	}))

	files, err := OpenFiles(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file repository: %w", err)
	}
	a.files = files
	if closer, ok := files.(interface{ Close() error }); ok {
		a.shutdown.RegisterCloser("files", closer)
	}
	log.Info("file repository initialized", "type", cfg.Files.Type)

	a.Catalog = reference.NewCatalog(
		reference.NewUnitStore(a.db, log),
		reference.NewSupplierStore(a.db, log),
		reference.NewQuestionStore(a.db, log),
		log,
	)
	a.Evaluations = evaluation.NewStore(a.db, files, evaluation.Options{
		Folders: storage.Folders{
			Administration: cfg.Files.AdministrationFolder,
			Supplies:       cfg.Files.SuppliesFolder,
		},
		Concurrency: cfg.Bulk.Concurrency,
		ItemTimeout: cfg.Bulk.ItemTimeout,
	}, log)
	a.Maintenance = maintenance.NewService(a.Evaluations, a.Catalog, backup.NewEngine(a.db, log), files,
		maintenance.Config{
			Concurrency:     cfg.Bulk.Concurrency,
			ItemTimeout:     cfg.Bulk.ItemTimeout,
			ExistenceTTL:    cfg.Files.ExistenceTTL,
			ConfirmationTTL: cfg.Maintenance.ConfirmationTTL,
		}, log)
	a.Reports = report.NewService(a.Evaluations)

	log.Info("services initialized", "driver", cfg.Database.Driver, "database", cfg.Database.Name)
	return a, nil
}

// mongoURI is only built for the mongo driver so credentials never reach
// the other backends.
func mongoURI(cfg *config.Config) string {
	if cfg.Database.Driver != config.DriverMongo {
		return ""
	}
	return cfg.MongoURI()
}

// OpenFiles builds the configured file repository. The none type returns a
// nil repository, which disables artifacts.
func OpenFiles(ctx context.Context, cfg *config.Config) (storage.Repository, error) {
	switch cfg.Files.Type {
	case config.FilesLocal:
		return storage.NewLocalRepository(cfg.Files.Path)
	case config.FilesS3:
		return storage.NewS3Repository(ctx, cfg.Files.S3.Bucket, storage.S3Config{
			Region:       cfg.Files.S3.Region,
			Endpoint:     cfg.Files.S3.Endpoint,
			UsePathStyle: cfg.Files.S3.Endpoint != "",
		})
	case config.FilesGCS:
		return storage.NewGCSRepository(ctx, cfg.Files.GCS.Bucket, storage.GCSConfig{
			CredentialsFile: cfg.Files.GCS.CredentialsFile,
		})
	case config.FilesNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported files type: %s", cfg.Files.Type)
	}
}

// Handler returns the HTTP API with shutdown tracking.
func (a *App) Handler() http.Handler {
	return httpapi.NewRouter(httpapi.Services{
		Catalog:     a.Catalog,
		Evaluations: a.Evaluations,
		Maintenance: a.Maintenance,
		Reports:     a.Reports,
		Stats:       a.stats,
		DB:          a.db,
		Log:         a.log,
		Middleware:  []func(http.Handler) http.Handler{server.ShutdownMiddleware(a.shutdown)},
	})
}

// Start listens on the configured addresses and serves until Stop.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return fmt.Errorf("app is already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)

	lis, err := net.Listen("tcp", a.cfg.HTTP.Addr)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to listen on HTTP address: %w", err)
	}
	a.httpListener = lis
	a.httpServer = &http.Server{
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	if a.cfg.GRPC.Enabled {
		glis, err := net.Listen("tcp", a.cfg.GRPC.Addr)
		if err != nil {
			lis.Close()
			cancel()
			return fmt.Errorf("failed to listen on gRPC address: %w", err)
		}
		a.grpcListener = glis
		a.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(grpcapi.LoggingInterceptor(a.log)))
		grpcapi.RegisterMaintenanceServiceServer(a.grpcServer, grpcapi.NewMaintenanceServer(a.Maintenance, a.log))
		a.shutdown.RegisterCloser("grpc", server.CloserFunc(func() error {
			a.grpcServer.GracefulStop()
			return nil
		}))
		group.Go(func() error {
			a.log.Info("gRPC server listening", "addr", glis.Addr().String())
			return a.grpcServer.Serve(glis)
		})
	}

	a.shutdown.RegisterHTTPServer("http", a.httpServer)
	group.Go(func() error {
		a.log.Info("HTTP server listening", "addr", lis.Addr().String())
		if err := a.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		ticker := time.NewTicker(statsWindow / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				a.stats.Prune()
			}
		}
	})

	a.cancel = cancel
	a.group = group
	a.running = true
	a.log.Info("avaliafor started", "http", a.cfg.HTTP.Addr, "grpc_enabled", a.cfg.GRPC.Enabled)
	return nil
}

// HTTPAddr returns the bound HTTP address once started.
func (a *App) HTTPAddr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.httpListener == nil {
		return ""
	}
	return a.httpListener.Addr().String()
}

// GRPCAddr returns the bound gRPC address once started.
func (a *App) GRPCAddr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.grpcListener == nil {
		return ""
	}
	return a.grpcListener.Addr().String()
}

// WaitForShutdown blocks until a signal arrives or ctx ends, then shuts down.
func (a *App) WaitForShutdown(ctx context.Context) error {
	return a.shutdown.ListenForSignals(ctx)
}

// Stop shuts the servers down, closes the store and waits for the serving
// goroutines.
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	running := a.running
	a.running = false
	a.mu.Unlock()

	err := a.shutdown.Shutdown(ctx, "stop requested")
	if !running {
		return err
	}
	a.cancel()
	if werr := a.group.Wait(); werr != nil && !errors.Is(werr, grpc.ErrServerStopped) {
		err = errors.Join(err, werr)
	}
	a.log.Info("avaliafor stopped")
	return err
}

// Close releases the store and file repository without starting servers.
// It is meant for one-shot commands.
func (a *App) Close() error {
	return a.shutdown.Shutdown(context.Background(), "command finished")
}
