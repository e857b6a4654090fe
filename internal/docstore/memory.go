package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process Database. Safe for concurrent use.
type Memory struct {
	name        string
	mu          sync.RWMutex
	collections map[string]*memCollection
	seq         int64
}

// NewMemory creates an empty in-memory database.
func NewMemory(name string) *Memory {
	return &Memory{name: name, collections: make(map[string]*memCollection)}
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{db: m, name: name}
		m.collections[name] = c
	}
	return c
}

// CollectionNames lists collections that hold at least one document.
func (m *Memory) CollectionNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var names []string
	for name, c := range m.collections {
		if len(c.docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close(ctx context.Context) error { return nil }

func (m *Memory) nextID() string {
	m.seq++
	return fmt.Sprintf("mem-%08d", m.seq)
}

type memCollection struct {
	db   *Memory
	name string
	docs []Document
}

func (c *memCollection) Name() string { return c.name }

func (c *memCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	var out []Document
	for _, d := range c.docs {
		if Matches(d, filter) {
			out = append(out, StripID(d))
		}
	}
	return out, nil
}

func (c *memCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	docs, err := c.Find(ctx, filter)
	return int64(len(docs)), err
}

func (c *memCollection) InsertMany(ctx context.Context, docs []Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	for _, d := range docs {
		stored := Clone(d)
		if _, ok := stored[IDField]; !ok {
			stored[IDField] = c.db.nextID()
		}
		c.docs = append(c.docs, stored)
	}
	return nil
}

func (c *memCollection) UpdateOne(ctx context.Context, filter Filter, set Document, upsert bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	for _, d := range c.docs {
		if Matches(d, filter) {
			for k, v := range Clone(set) {
				d[k] = v
			}
			return true, nil
		}
	}
	if !upsert {
		return false, nil
	}
	stored := Clone(Document(filter))
	for k, v := range Clone(set) {
		stored[k] = v
	}
	stored[IDField] = c.db.nextID()
	c.docs = append(c.docs, stored)
	return true, nil
}

func (c *memCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	kept := c.docs[:0]
	var removed int64
	for _, d := range c.docs {
		if Matches(d, filter) {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	c.docs = kept
	return removed, nil
}
