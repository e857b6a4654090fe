package reference

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/avaliafor/avaliafor/internal/docstore"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// Question document fields.
const (
	fieldQuestionID       = "id"
	fieldQuestionSupplier = "fornecedor"
	fieldQuestionCategory = "categoria"
	fieldQuestionText     = "pergunta"
	fieldQuestionOrder    = "ordem"
)

// Question is a single questionnaire entry. ID is stable across edits so
// that updates and removals never depend on list positions.
type Question struct {
	ID       string         `json:"id"`
	Supplier string         `json:"supplier"`
	Category types.Category `json:"category"`
	Text     string         `json:"text"`
	Order    int64          `json:"order"`
}

// QuestionStore keeps one document per question.
type QuestionStore struct {
	coll docstore.Collection
	log  *logger.Logger

	seedMu sync.Mutex
	// writeMu serializes order-dependent edits
	writeMu sync.Mutex
}

// NewQuestionStore creates a question store over db.
func NewQuestionStore(db docstore.Database, log *logger.Logger) *QuestionStore {
	return &QuestionStore{coll: db.Collection(types.CollectionQuestions), log: log}
}

// GetAll returns supplier → category → ordered question texts.
func (s *QuestionStore) GetAll(ctx context.Context) (map[string]map[types.Category][]string, error) {
	qs, err := s.find(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[types.Category][]string)
	for _, q := range qs {
		if out[q.Supplier] == nil {
			out[q.Supplier] = make(map[types.Category][]string)
		}
		out[q.Supplier][q.Category] = append(out[q.Supplier][q.Category], q.Text)
	}
	return out, nil
}

// List returns the questions of supplier ordered by category then position.
func (s *QuestionStore) List(ctx context.Context, supplier string) ([]Question, error) {
	return s.find(ctx, docstore.Filter{fieldQuestionSupplier: supplier})
}

// Bucket returns the ordered questions for one supplier and category.
func (s *QuestionStore) Bucket(ctx context.Context, supplier string, category types.Category) ([]Question, error) {
	return s.find(ctx, docstore.Filter{
		fieldQuestionSupplier: supplier,
		fieldQuestionCategory: string(category),
	})
}

// Get returns the question with id.
func (s *QuestionStore) Get(ctx context.Context, id string) (*Question, error) {
	qs, err := s.find(ctx, docstore.Filter{fieldQuestionID: id})
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, apperrors.NewNotFoundError(apperrors.CodeNoRecords, "question not found: "+id)
	}
	return &qs[0], nil
}

func (s *QuestionStore) find(ctx context.Context, filter docstore.Filter) ([]Question, error) {
	if err := s.seed(ctx); err != nil {
		return nil, err
	}
	docs, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, docstore.Classify(err, "find", s.coll.Name())
	}
	qs := make([]Question, 0, len(docs))
	for _, d := range docs {
		qs = append(qs, questionFromDocument(d))
	}
	sortQuestions(qs)
	return qs, nil
}

func (s *QuestionStore) seed(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	n, err := s.coll.Count(ctx, nil)
	if err != nil {
		return docstore.Classify(err, "count", s.coll.Name())
	}
	if n > 0 {
		return nil
	}
	qs := defaultQuestionList()
	if err := s.coll.InsertMany(ctx, questionDocuments(qs)); err != nil {
		return docstore.Classify(err, "seed", s.coll.Name())
	}
	s.log.Info("seeded questions", "count", len(qs))
	return nil
}

// AddOrUpdate replaces the whole bucket for supplier and category with texts.
// Every question in the new bucket receives a fresh id.
func (s *QuestionStore) AddOrUpdate(ctx context.Context, supplier string, category types.Category, texts []string) (bool, error) {
	supplier = strings.TrimSpace(supplier)
	if err := validateBucket(supplier, category); err != nil {
		return false, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.seed(ctx); err != nil {
		return false, err
	}

	filter := docstore.Filter{fieldQuestionSupplier: supplier, fieldQuestionCategory: string(category)}
	if _, err := s.coll.DeleteMany(ctx, filter); err != nil {
		return false, docstore.Classify(err, "delete", s.coll.Name())
	}
	var qs []Question
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		qs = append(qs, Question{
			ID:       uuid.NewString(),
			Supplier: supplier,
			Category: category,
			Text:     text,
			Order:    int64(len(qs)),
		})
	}
	if len(qs) == 0 {
		return true, nil
	}
	if err := s.coll.InsertMany(ctx, questionDocuments(qs)); err != nil {
		return false, docstore.Classify(err, "insert", s.coll.Name())
	}
	return true, nil
}

// Add appends a question to the end of its bucket.
func (s *QuestionStore) Add(ctx context.Context, supplier string, category types.Category, text string) (*Question, error) {
	supplier = strings.TrimSpace(supplier)
	text = strings.TrimSpace(text)
	if err := validateBucket(supplier, category); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidInput, "question text is required")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	bucket, err := s.Bucket(ctx, supplier, category)
	if err != nil {
		return nil, err
	}
	q := Question{
		ID:       uuid.NewString(),
		Supplier: supplier,
		Category: category,
		Text:     text,
	}
	if n := len(bucket); n > 0 {
		q.Order = bucket[n-1].Order + 1
	}
	if err := s.coll.InsertMany(ctx, questionDocuments([]Question{q})); err != nil {
		return nil, docstore.Classify(err, "insert", s.coll.Name())
	}
	return &q, nil
}

// RemoveText deletes every question in the bucket whose text equals text and
// returns how many were removed.
func (s *QuestionStore) RemoveText(ctx context.Context, supplier string, category types.Category, text string) (int64, error) {
	n, err := s.coll.DeleteMany(ctx, docstore.Filter{
		fieldQuestionSupplier: supplier,
		fieldQuestionCategory: string(category),
		fieldQuestionText:     text,
	})
	if err != nil {
		return 0, docstore.Classify(err, "delete", s.coll.Name())
	}
	return n, nil
}

// Update changes the text of the question at index in the bucket's current
// order. An out-of-range index reports false.
func (s *QuestionStore) Update(ctx context.Context, supplier string, category types.Category, index int, text string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	bucket, err := s.Bucket(ctx, supplier, category)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(bucket) {
		return false, nil
	}
	return s.updateText(ctx, bucket[index].ID, text)
}

// UpdateByID changes the text of the question with id.
func (s *QuestionStore) UpdateByID(ctx context.Context, id, text string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.updateText(ctx, id, text)
}

func (s *QuestionStore) updateText(ctx context.Context, id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, apperrors.NewValidationError(apperrors.CodeInvalidInput, "question text is required")
	}
	ok, err := s.coll.UpdateOne(ctx, docstore.Filter{fieldQuestionID: id}, docstore.Document{fieldQuestionText: text}, false)
	if err != nil {
		return false, docstore.Classify(err, "update", s.coll.Name())
	}
	return ok, nil
}

// RemoveByID deletes the question with id.
func (s *QuestionStore) RemoveByID(ctx context.Context, id string) (bool, error) {
	n, err := s.coll.DeleteMany(ctx, docstore.Filter{fieldQuestionID: id})
	if err != nil {
		return false, docstore.Classify(err, "delete", s.coll.Name())
	}
	return n > 0, nil
}

// Remove deletes every question of supplier.
func (s *QuestionStore) Remove(ctx context.Context, supplier string) (bool, error) {
	n, err := s.coll.DeleteMany(ctx, docstore.Filter{fieldQuestionSupplier: strings.TrimSpace(supplier)})
	if err != nil {
		return false, docstore.Classify(err, "delete", s.coll.Name())
	}
	return n > 0, nil
}

// Reset replaces the collection with the built-in questionnaire.
func (s *QuestionStore) Reset(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	if _, err := s.coll.DeleteMany(ctx, nil); err != nil {
		return docstore.Classify(err, "delete", s.coll.Name())
	}
	return docstore.Classify(s.coll.InsertMany(ctx, questionDocuments(defaultQuestionList())), "insert", s.coll.Name())
}

func validateBucket(supplier string, category types.Category) error {
	if supplier == "" {
		return apperrors.NewValidationError(apperrors.CodeInvalidInput, "supplier is required")
	}
	if !category.Valid() {
		return apperrors.NewValidationError(apperrors.CodeInvalidInput, "unknown category: "+string(category))
	}
	return nil
}

func questionDocuments(qs []Question) []docstore.Document {
	docs := make([]docstore.Document, len(qs))
	for i, q := range qs {
		docs[i] = docstore.Document{
			fieldQuestionID:       q.ID,
			fieldQuestionSupplier: q.Supplier,
			fieldQuestionCategory: string(q.Category),
			fieldQuestionText:     q.Text,
			fieldQuestionOrder:    q.Order,
		}
	}
	return docs
}

func questionFromDocument(d docstore.Document) Question {
	return Question{
		ID:       docstore.String(d, fieldQuestionID),
		Supplier: docstore.String(d, fieldQuestionSupplier),
		Category: types.Category(docstore.String(d, fieldQuestionCategory)),
		Text:     docstore.String(d, fieldQuestionText),
		Order:    docstore.Int64(d, fieldQuestionOrder),
	}
}

func categoryRank(c types.Category) int {
	for i, v := range types.Categories() {
		if v == c {
			return i
		}
	}
	return len(types.Categories())
}

func sortQuestions(qs []Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		a, b := qs[i], qs[j]
		if a.Supplier != b.Supplier {
			return a.Supplier < b.Supplier
		}
		if ra, rb := categoryRank(a.Category), categoryRank(b.Category); ra != rb {
			return ra < rb
		}
		return a.Order < b.Order
	})
}
