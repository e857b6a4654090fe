package reference

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/avaliafor/avaliafor/internal/docstore"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// Supplier document fields.
const (
	fieldSupplierName  = "fornecedor"
	fieldSupplierUnits = "unidades"
)

// minSupplierNameLen is enforced by Register, not by AddOrUpdate.
const minSupplierNameLen = 3

// Supplier is a contracted provider and the units it serves.
type Supplier struct {
	Name  string   `json:"name"`
	Units []string `json:"units"`
}

// SupplierStore keeps one document per supplier, unique by name.
type SupplierStore struct {
	coll docstore.Collection
	log  *logger.Logger

	seedMu sync.Mutex
}

// NewSupplierStore creates a supplier store over db.
func NewSupplierStore(db docstore.Database, log *logger.Logger) *SupplierStore {
	return &SupplierStore{coll: db.Collection(types.CollectionSuppliers), log: log}
}

// GetAll returns supplier → units, seeding the defaults when empty.
func (s *SupplierStore) GetAll(ctx context.Context) (map[string][]string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(list))
	for _, sup := range list {
		out[sup.Name] = sup.Units
	}
	return out, nil
}

// List returns suppliers sorted by name.
func (s *SupplierStore) List(ctx context.Context) ([]Supplier, error) {
	if err := s.seed(ctx); err != nil {
		return nil, err
	}
	docs, err := s.coll.Find(ctx, nil)
	if err != nil {
		return nil, docstore.Classify(err, "find", s.coll.Name())
	}
	out := make([]Supplier, 0, len(docs))
	for _, d := range docs {
		units := docstore.Strings(d, fieldSupplierUnits)
		if units == nil {
			units = []string{}
		}
		out = append(out, Supplier{Name: docstore.String(d, fieldSupplierName), Units: units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ByUnit returns the sorted names of suppliers serving unit.
func (s *SupplierStore) ByUnit(ctx context.Context, unit string) ([]string, error) {
	if err := s.seed(ctx); err != nil {
		return nil, err
	}
	docs, err := s.coll.Find(ctx, docstore.Filter{fieldSupplierUnits: unit})
	if err != nil {
		return nil, docstore.Classify(err, "find", s.coll.Name())
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, docstore.String(d, fieldSupplierName))
	}
	sort.Strings(names)
	return names, nil
}

func (s *SupplierStore) seed(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	n, err := s.coll.Count(ctx, nil)
	if err != nil {
		return docstore.Classify(err, "count", s.coll.Name())
	}
	if n > 0 {
		return nil
	}
	if err := s.coll.InsertMany(ctx, supplierDocuments()); err != nil {
		return docstore.Classify(err, "seed", s.coll.Name())
	}
	s.log.Info("seeded suppliers", "count", len(defaultSuppliers))
	return nil
}

// AddOrUpdate upserts by name, replacing the unit set. An empty unit set is
// accepted.
func (s *SupplierStore) AddOrUpdate(ctx context.Context, name string, units []string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, apperrors.NewValidationError(apperrors.CodeInvalidInput, "supplier name is required")
	}
	if err := s.seed(ctx); err != nil {
		return false, err
	}
	_, err := s.coll.UpdateOne(ctx,
		docstore.Filter{fieldSupplierName: name},
		docstore.Document{fieldSupplierName: name, fieldSupplierUnits: dedupe(units)},
		true,
	)
	if err != nil {
		return false, docstore.Classify(err, "upsert", s.coll.Name())
	}
	return true, nil
}

// Register applies the registration form rules before AddOrUpdate: a name of
// at least three characters and at least one unit.
func (s *SupplierStore) Register(ctx context.Context, name string, units []string) (bool, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minSupplierNameLen {
		return false, apperrors.NewValidationError(apperrors.CodeInvalidInput, "supplier name must have at least 3 characters")
	}
	if len(dedupe(units)) == 0 {
		return false, apperrors.NewValidationError(apperrors.CodeInvalidInput, "select at least one unit")
	}
	return s.AddOrUpdate(ctx, name, units)
}

// Remove deletes every document with the name.
func (s *SupplierStore) Remove(ctx context.Context, name string) (bool, error) {
	n, err := s.coll.DeleteMany(ctx, docstore.Filter{fieldSupplierName: strings.TrimSpace(name)})
	if err != nil {
		return false, docstore.Classify(err, "delete", s.coll.Name())
	}
	return n > 0, nil
}

// Reset replaces the collection with the built-in suppliers.
func (s *SupplierStore) Reset(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if _, err := s.coll.DeleteMany(ctx, nil); err != nil {
		return docstore.Classify(err, "delete", s.coll.Name())
	}
	return docstore.Classify(s.coll.InsertMany(ctx, supplierDocuments()), "insert", s.coll.Name())
}

func supplierDocuments() []docstore.Document {
	docs := make([]docstore.Document, len(defaultSuppliers))
	for i, sup := range defaultSuppliers {
		docs[i] = docstore.Document{fieldSupplierName: sup.name, fieldSupplierUnits: dedupe(sup.units)}
	}
	return docs
}

// dedupe trims, drops empties and keeps first occurrences in order.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
