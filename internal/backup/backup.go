// Package backup snapshots every collection of the database and restores
// such snapshots collection by collection.
package backup

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/avaliafor/avaliafor/internal/docstore"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// DefaultCollections are the collections included in a backup.
var DefaultCollections = []string{
	types.CollectionSuppliers,
	types.CollectionUnits,
	types.CollectionQuestions,
	types.CollectionSupplies,
	types.CollectionAdministration,
}

// Snapshot holds every document of a set of collections, without store
// identifiers.
type Snapshot struct {
	Timestamp   string
	Collections map[string][]docstore.Document
}

// Names returns the collection names in restore order.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.Collections))
	for name := range s.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Documents returns the total number of documents.
func (s *Snapshot) Documents() int {
	n := 0
	for _, docs := range s.Collections {
		n += len(docs)
	}
	return n
}

// Engine runs backups and restores against one database.
type Engine struct {
	db          docstore.Database
	collections []string
	now         func() time.Time
	log         *logger.Logger
}

// NewEngine creates an Engine over DefaultCollections.
func NewEngine(db docstore.Database, log *logger.Logger) *Engine {
	return &Engine{db: db, collections: DefaultCollections, now: time.Now, log: log}
}

// Backup reads every configured collection. It never writes.
func (e *Engine) Backup(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Timestamp:   e.now().Format(types.TimestampLayout),
		Collections: make(map[string][]docstore.Document, len(e.collections)),
	}
	for _, name := range e.collections {
		docs, err := e.db.Collection(name).Find(ctx, nil)
		if err != nil {
			return nil, docstore.Classify(err, "backup", name)
		}
		out := make([]docstore.Document, len(docs))
		for i, d := range docs {
			out[i] = docstore.StripID(d)
		}
		snap.Collections[name] = out
	}
	e.log.Info("backup taken", "collections", len(snap.Collections), "documents", snap.Documents())
	return snap, nil
}

// RestoreReport lists the outcome per collection.
type RestoreReport struct {
	Restored map[string]int    `json:"restored"`
	Failures map[string]string `json:"failures,omitempty"`
}

// Restore replaces each collection present in snap with its documents:
// delete all, then insert all. Collections are processed in name order and
// independently; a failure does not roll back collections already restored
// and yields a PARTIAL_FAILURE error alongside the report.
func (e *Engine) Restore(ctx context.Context, snap *Snapshot) (*RestoreReport, error) {
	if snap == nil || len(snap.Collections) == 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidBackup, "backup has no collections")
	}
	report := &RestoreReport{Restored: make(map[string]int), Failures: make(map[string]string)}
	for _, name := range snap.Names() {
		if err := e.restoreCollection(ctx, name, snap.Collections[name]); err != nil {
			e.log.Error("restore failed", "collection", name, "error", err)
			report.Failures[name] = err.Error()
			continue
		}
		report.Restored[name] = len(snap.Collections[name])
	}

	if len(report.Failures) > 0 {
		return report, apperrors.NewPartialFailure(apperrors.CodeRestorePartial,
			len(report.Restored), len(report.Failures), report.Failures)
	}
	e.log.Info("backup restored", "collections", len(report.Restored), "timestamp", snap.Timestamp)
	return report, nil
}

func (e *Engine) restoreCollection(ctx context.Context, name string, docs []docstore.Document) error {
	coll := e.db.Collection(name)
	if _, err := coll.DeleteMany(ctx, nil); err != nil {
		return docstore.Classify(err, "delete", name)
	}
	if len(docs) == 0 {
		return nil
	}
	clean := make([]docstore.Document, len(docs))
	for i, d := range docs {
		clean[i] = docstore.StripID(d)
	}
	if err := coll.InsertMany(ctx, clean); err != nil {
		return docstore.Classify(err, "insert", name)
	}
	return nil
}

// FileName returns the backup file name for t.
func FileName(t time.Time, compressed bool) string {
	name := fmt.Sprintf("backup_mongodb_%s.json", t.Format("20060102_150405"))
	if compressed {
		name += CompressedExt
	}
	return name
}
