// Package reference implements the unit, supplier and question stores. Each
// store seeds its collection from the built-in dataset the first time it is
// read while empty.
package reference

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/avaliafor/avaliafor/internal/docstore"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// Unit document fields.
const (
	fieldUnitName  = "unidade"
	fieldUnitOrder = "ordem"
)

// UnitStore keeps one document per unit.
type UnitStore struct {
	coll docstore.Collection
	log  *logger.Logger

	seedMu sync.Mutex
	// writeMu keeps the existence check and insert of AddOrUpdate together
	writeMu sync.Mutex
}

// NewUnitStore creates a unit store over db.
func NewUnitStore(db docstore.Database, log *logger.Logger) *UnitStore {
	return &UnitStore{coll: db.Collection(types.CollectionUnits), log: log}
}

// GetAll returns unit names in list order, seeding the defaults when empty.
func (s *UnitStore) GetAll(ctx context.Context) ([]string, error) {
	if err := s.seed(ctx); err != nil {
		return nil, err
	}
	docs, err := s.coll.Find(ctx, nil)
	if err != nil {
		return nil, docstore.Classify(err, "find", s.coll.Name())
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docstore.Int64(docs[i], fieldUnitOrder) < docstore.Int64(docs[j], fieldUnitOrder)
	})
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, docstore.String(d, fieldUnitName))
	}
	return names, nil
}

func (s *UnitStore) seed(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	n, err := s.coll.Count(ctx, nil)
	if err != nil {
		return docstore.Classify(err, "count", s.coll.Name())
	}
	if n > 0 {
		return nil
	}
	if err := s.coll.InsertMany(ctx, unitDocuments(defaultUnits)); err != nil {
		return docstore.Classify(err, "seed", s.coll.Name())
	}
	s.log.Info("seeded units", "count", len(defaultUnits))
	return nil
}

// AddOrUpdate inserts the unit at the end of the list. An existing unit is
// left in place and reported as success.
func (s *UnitStore) AddOrUpdate(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, apperrors.NewValidationError(apperrors.CodeInvalidInput, "unit name is required")
	}
	if err := s.seed(ctx); err != nil {
		return false, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	existing, err := s.coll.Count(ctx, docstore.Filter{fieldUnitName: name})
	if err != nil {
		return false, docstore.Classify(err, "count", s.coll.Name())
	}
	if existing > 0 {
		return true, nil
	}
	total, err := s.coll.Count(ctx, nil)
	if err != nil {
		return false, docstore.Classify(err, "count", s.coll.Name())
	}
	doc := docstore.Document{fieldUnitName: name, fieldUnitOrder: total}
	if err := s.coll.InsertMany(ctx, []docstore.Document{doc}); err != nil {
		return false, docstore.Classify(err, "insert", s.coll.Name())
	}
	return true, nil
}

// Remove deletes the unit and reports whether it existed.
func (s *UnitStore) Remove(ctx context.Context, name string) (bool, error) {
	n, err := s.coll.DeleteMany(ctx, docstore.Filter{fieldUnitName: strings.TrimSpace(name)})
	if err != nil {
		return false, docstore.Classify(err, "delete", s.coll.Name())
	}
	return n > 0, nil
}

// Reset replaces the collection with the built-in units.
func (s *UnitStore) Reset(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if _, err := s.coll.DeleteMany(ctx, nil); err != nil {
		return docstore.Classify(err, "delete", s.coll.Name())
	}
	return docstore.Classify(s.coll.InsertMany(ctx, unitDocuments(defaultUnits)), "insert", s.coll.Name())
}

func unitDocuments(names []string) []docstore.Document {
	docs := make([]docstore.Document, len(names))
	for i, n := range names {
		docs[i] = docstore.Document{fieldUnitName: n, fieldUnitOrder: i}
	}
	return docs
}
