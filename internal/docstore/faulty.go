package docstore

import (
	"context"
	"sync"
)

// Operation names understood by Faulty.
const (
	OpFind       = "find"
	OpCount      = "count"
	OpInsertMany = "insert_many"
	OpUpdateOne  = "update_one"
	OpDeleteMany = "delete_many"
	OpPing       = "ping"
)

// Faulty wraps a Database and fails selected operations, simulating store
// outages and partial restores.
type Faulty struct {
	Database

	mu    sync.Mutex
	fails map[string]error
}

// NewFaulty wraps db with no failures configured.
func NewFaulty(db Database) *Faulty {
	return &Faulty{Database: db, fails: make(map[string]error)}
}

// FailOn makes op on collection return err. An empty collection matches all.
func (f *Faulty) FailOn(op, collection string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails[op+"/"+collection] = err
}

// Reset clears all configured failures.
func (f *Faulty) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails = make(map[string]error)
}

func (f *Faulty) failure(op, collection string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fails[op+"/"+collection]; ok {
		return err
	}
	return f.fails[op+"/"]
}

func (f *Faulty) Ping(ctx context.Context) error {
	if err := f.failure(OpPing, ""); err != nil {
		return err
	}
	return f.Database.Ping(ctx)
}

func (f *Faulty) Collection(name string) Collection {
	return &faultyCollection{Collection: f.Database.Collection(name), f: f}
}

type faultyCollection struct {
	Collection
	f *Faulty
}

func (c *faultyCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	if err := c.f.failure(OpFind, c.Name()); err != nil {
		return nil, err
	}
	return c.Collection.Find(ctx, filter)
}

func (c *faultyCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	if err := c.f.failure(OpCount, c.Name()); err != nil {
		return 0, err
	}
	return c.Collection.Count(ctx, filter)
}

func (c *faultyCollection) InsertMany(ctx context.Context, docs []Document) error {
	if err := c.f.failure(OpInsertMany, c.Name()); err != nil {
		return err
	}
	return c.Collection.InsertMany(ctx, docs)
}

func (c *faultyCollection) UpdateOne(ctx context.Context, filter Filter, set Document, upsert bool) (bool, error) {
	if err := c.f.failure(OpUpdateOne, c.Name()); err != nil {
		return false, err
	}
	return c.Collection.UpdateOne(ctx, filter, set, upsert)
}

func (c *faultyCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	if err := c.f.failure(OpDeleteMany, c.Name()); err != nil {
		return 0, err
	}
	return c.Collection.DeleteMany(ctx, filter)
}
