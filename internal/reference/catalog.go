package reference

import (
	"context"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// Snapshot is the reference data needed to drive an evaluation session.
type Snapshot struct {
	Units     []string                               `json:"units"`
	Suppliers map[string][]string                    `json:"suppliers"`
	Questions map[string]map[types.Category][]string `json:"questions"`

	// Degraded is set when the store was unreachable and the built-in
	// dataset is being served instead.
	Degraded bool `json:"degraded"`
}

// SuppliersFor returns the sorted suppliers serving unit.
func (s *Snapshot) SuppliersFor(unit string) []string {
	return suppliersServing(s.Suppliers, unit)
}

// QuestionsFor returns the questions of supplier restricted to the
// categories evaluated by origin, in category order.
func (s *Snapshot) QuestionsFor(supplier string, origin types.Origin) map[types.Category][]string {
	out := make(map[types.Category][]string)
	for _, c := range origin.Categories() {
		if qs := s.Questions[supplier][c]; len(qs) > 0 {
			out[c] = qs
		}
	}
	return out
}

// Catalog loads all reference data at once.
type Catalog struct {
	Units     *UnitStore
	Suppliers *SupplierStore
	Questions *QuestionStore

	log *logger.Logger
}

// NewCatalog groups the three stores.
func NewCatalog(units *UnitStore, suppliers *SupplierStore, questions *QuestionStore, log *logger.Logger) *Catalog {
	return &Catalog{Units: units, Suppliers: suppliers, Questions: questions, log: log}
}

// Load reads the reference data from the store. When the store cannot be
// reached, Load still returns a usable Snapshot built from the defaults with
// Degraded set, together with the error so the caller can warn the user.
func (c *Catalog) Load(ctx context.Context) (*Snapshot, error) {
	snap, err := c.load(ctx)
	if err == nil {
		return snap, nil
	}
	c.log.Warn("reference data unavailable, serving built-in defaults", "error", err)
	return Defaults(), err
}

func (c *Catalog) load(ctx context.Context) (*Snapshot, error) {
	units, err := c.Units.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := c.Suppliers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := c.Questions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Units: units, Suppliers: suppliers, Questions: questions}, nil
}

// Defaults returns the built-in dataset as a degraded snapshot.
func Defaults() *Snapshot {
	return &Snapshot{
		Units:     DefaultUnits(),
		Suppliers: DefaultSuppliers(),
		Questions: DefaultQuestions(),
		Degraded:  true,
	}
}

// ImportDefaults overwrites the three collections with the built-in dataset.
// Each collection is replaced independently; failures are collected into a
// PARTIAL_FAILURE error.
func (c *Catalog) ImportDefaults(ctx context.Context) error {
	steps := []struct {
		name  string
		reset func(context.Context) error
	}{
		{types.CollectionUnits, c.Units.Reset},
		{types.CollectionSuppliers, c.Suppliers.Reset},
		{types.CollectionQuestions, c.Questions.Reset},
	}

	failures := make(map[string]string)
	for _, step := range steps {
		if err := step.reset(ctx); err != nil {
			c.log.Error("import defaults failed", "collection", step.name, "error", err)
			failures[step.name] = err.Error()
		}
	}
	if len(failures) > 0 {
		return apperrors.NewPartialFailure(apperrors.CodeRestorePartial, len(steps)-len(failures), len(failures), failures)
	}
	c.log.Info("imported built-in reference data")
	return nil
}
