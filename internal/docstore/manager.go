package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
)

// Options selects and configures a backend.
type Options struct {
	// Driver is mongo, sqlite or memory
	Driver string
	// Name is the logical database name
	Name string
	// URI is the mongodb connection string
	URI string
	// SQLitePath is the database file for the sqlite driver
	SQLitePath string
	// ConnectTimeout bounds the first connection attempt
	ConnectTimeout time.Duration
}

// Opener establishes a database connection.
type Opener func(ctx context.Context) (Database, error)

// Manager lazily opens a single Database and hands the same handle to every
// caller for the lifetime of the process. Configuration failures are
// remembered and returned on every later call; connectivity failures are
// not, so a later call may succeed.
type Manager struct {
	open Opener
	name string

	mu    sync.Mutex
	db    Database
	fatal error
}

// NewManager returns a manager for the configured backend.
func NewManager(opts Options) *Manager {
	m := NewManagerWithOpener(OpenerFor(opts))
	m.name = opts.Name
	return m
}

// NewManagerWithOpener returns a manager using a custom opener.
func NewManagerWithOpener(open Opener) *Manager {
	return &Manager{open: open}
}

// Database returns the memoized handle, connecting on first use.
func (m *Manager) Database(ctx context.Context) (Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}
	if m.fatal != nil {
		return nil, m.fatal
	}

	db, err := m.open(ctx)
	if err != nil {
		if apperrors.IsConfiguration(err) {
			m.fatal = err
		}
		return nil, err
	}
	m.db = db
	return db, nil
}

// Close releases the handle if one was opened.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close(ctx)
	m.db = nil
	return err
}

// Manager also satisfies Database: every collection call resolves the
// handle first, so services built at startup keep working once an
// unreachable store comes back.
var _ Database = (*Manager)(nil)

// Name returns the configured database name.
func (m *Manager) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.name == "" && m.db != nil {
		return m.db.Name()
	}
	return m.name
}

// Ping connects if needed and pings the store.
func (m *Manager) Ping(ctx context.Context) error {
	db, err := m.Database(ctx)
	if err != nil {
		return err
	}
	return db.Ping(ctx)
}

// Collection returns a collection that connects on each call until a
// connection succeeds.
func (m *Manager) Collection(name string) Collection {
	return &managedCollection{m: m, name: name}
}

type managedCollection struct {
	m    *Manager
	name string
}

func (c *managedCollection) Name() string { return c.name }

func (c *managedCollection) resolve(ctx context.Context) (Collection, error) {
	db, err := c.m.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(c.name), nil
}

func (c *managedCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	coll, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return coll.Find(ctx, filter)
}

func (c *managedCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	coll, err := c.resolve(ctx)
	if err != nil {
		return 0, err
	}
	return coll.Count(ctx, filter)
}

func (c *managedCollection) InsertMany(ctx context.Context, docs []Document) error {
	coll, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	return coll.InsertMany(ctx, docs)
}

func (c *managedCollection) UpdateOne(ctx context.Context, filter Filter, set Document, upsert bool) (bool, error) {
	coll, err := c.resolve(ctx)
	if err != nil {
		return false, err
	}
	return coll.UpdateOne(ctx, filter, set, upsert)
}

func (c *managedCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	coll, err := c.resolve(ctx)
	if err != nil {
		return 0, err
	}
	return coll.DeleteMany(ctx, filter)
}

// OpenerFor builds the opener for opts.Driver.
func OpenerFor(opts Options) Opener {
	return func(ctx context.Context) (Database, error) {
		if opts.Name == "" {
			return nil, apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "database name is required")
		}
		switch opts.Driver {
		case "mongo":
			if opts.URI == "" {
				return nil, apperrors.NewConfigurationError(apperrors.CodeMissingCredentials, "mongodb credentials are not configured")
			}
			if opts.ConnectTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
				defer cancel()
			}
			return ConnectMongo(ctx, opts.URI, opts.Name)
		case "sqlite":
			if opts.SQLitePath == "" {
				return nil, apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "sqlite path is required")
			}
			db, err := OpenSQLite(opts.SQLitePath, opts.Name)
			if err != nil {
				return nil, apperrors.NewConnectivityError(apperrors.CodeStoreUnavailable, "failed to open sqlite store", err)
			}
			return db, nil
		case "memory":
			return NewMemory(opts.Name), nil
		default:
			return nil, apperrors.NewConfigurationError(apperrors.CodeInvalidConfig,
				fmt.Sprintf("unsupported database driver: %s", opts.Driver))
		}
	}
}

// Classify converts a driver error into the CONNECTIVITY category, leaving
// already classified errors and context cancellation untouched.
func Classify(err error, op, collection string) error {
	if err == nil {
		return nil
	}
	if apperrors.GetCategory(err) != "" || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperrors.NewConnectivityError(apperrors.CodeStoreOperation,
		fmt.Sprintf("%s on %s failed", op, collection), err)
}
