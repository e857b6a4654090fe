package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/avaliafor/avaliafor/internal/docstore"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/reference"
	"github.com/avaliafor/avaliafor/internal/storage"
	"github.com/avaliafor/avaliafor/pkg/types"
)

var adminQuestions = map[types.Category][]string{
	types.CategoryOperations:    {"Cumpre os horários?", "Equipe uniformizada?"},
	types.CategorySecurity:      {"Usa EPI?"},
	types.CategoryQuality:       {"Serviço satisfatório?"},
	types.CategoryDocumentation: {"ignored by the administration workflow"},
}

func answerAll(t *testing.T, s *Session, answer string) {
	t.Helper()
	for _, c := range types.OriginAdministration.Categories() {
		for _, q := range adminQuestions[c] {
			if err := s.Answer(c, q, answer); err != nil {
				t.Fatalf("Answer(%s, %s): %v", c, q, err)
			}
		}
	}
}

func TestSession_HappyPath(t *testing.T) {
	s := NewSession(newStore(docstore.NewMemory("test"), nil))
	if s.State() != StateSelectingScope {
		t.Fatalf("initial state = %s", s.State())
	}
	if err := s.SelectScope(types.OriginAdministration, "CSA-BH", "Acme", "30/11/2025", adminQuestions); err != nil {
		t.Fatalf("SelectScope: %v", err)
	}
	if got := len(s.Request().Answers); got != 4 {
		t.Fatalf("questionnaire has %d questions, want 4", got)
	}
	answerAll(t, s, types.AnswerFully)

	sub, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.State() != StateSucceeded || s.Result() != sub || len(sub.Records) != 4 {
		t.Errorf("state = %s, records = %d", s.State(), len(sub.Records))
	}
	if err := s.Answer(types.CategorySecurity, "Usa EPI?", types.AnswerNot); err == nil {
		t.Error("answering after success should fail")
	}

	s.Reset()
	if s.State() != StateSelectingScope || s.Result() != nil {
		t.Errorf("Reset left state %s", s.State())
	}
}

func TestSession_RejectedReturnsToAnswering(t *testing.T) {
	db := docstore.NewMemory("test")
	s := NewSession(newStore(db, nil))
	if err := s.SelectScope(types.OriginAdministration, "CSA-BH", "Acme", "30/11/2025", adminQuestions); err != nil {
		t.Fatal(err)
	}
	if err := s.Answer(types.CategoryOperations, "Cumpre os horários?", types.AnswerFully); err != nil {
		t.Fatal(err)
	}

	_, err := s.Submit(context.Background())
	if !apperrors.IsValidation(err) || s.State() != StateRejected {
		t.Fatalf("Submit = %v, state %s", err, s.State())
	}
	if flagged := s.Flagged(); len(flagged) != 3 {
		t.Errorf("flagged = %v", flagged)
	}
	if n, _ := db.Collection(types.CollectionAdministration).Count(context.Background(), nil); n != 0 {
		t.Errorf("rejected session wrote %d records", n)
	}

	answerAll(t, s, types.AnswerPartially)
	if s.State() != StateAnswering {
		t.Errorf("state after answering = %s", s.State())
	}
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if len(s.Flagged()) != 0 {
		t.Errorf("flags not cleared: %v", s.Flagged())
	}
}

func TestSession_FailedRetriesSameAnswers(t *testing.T) {
	db := docstore.NewFaulty(docstore.NewMemory("test"))
	db.FailOn(docstore.OpInsertMany, "", errors.New("timeout"))
	s := NewSession(newStore(db, nil))
	if err := s.SelectScope(types.OriginAdministration, "CSA-BH", "Acme", "30/11/2025", adminQuestions); err != nil {
		t.Fatal(err)
	}
	answerAll(t, s, types.AnswerFully)

	if _, err := s.Submit(context.Background()); !apperrors.IsConnectivity(err) || s.State() != StateFailed {
		t.Fatalf("Submit = %v, state %s", err, s.State())
	}

	db.Reset()
	sub, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	for _, r := range sub.Records {
		if r.Answer != types.AnswerFully {
			t.Errorf("retry changed answer: %+v", r)
		}
	}
}

func TestSession_RejectsBadTransitions(t *testing.T) {
	s := NewSession(newStore(docstore.NewMemory("test"), nil))
	if _, err := s.Submit(context.Background()); err == nil {
		t.Error("submit before scope selection should fail")
	}
	if err := s.SelectScope(types.OriginSupplies, "EPSA", "Beta", "31/13/2025", nil); err == nil {
		t.Error("invalid period accepted")
	}
	if err := s.SelectScope(types.OriginSupplies, "EPSA", "Beta", "31/10/2025", nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Answer(types.CategoryDocumentation, "unknown", types.AnswerFully); !apperrors.IsValidation(err) {
		t.Errorf("unknown question: %v", err)
	}
	if err := s.SelectScope(types.OriginSupplies, "EPSA", "Beta", "31/10/2025", nil); err == nil {
		t.Error("scope selected twice")
	}
}

// Seed Acme for CSA-BH, answer everything with "Atende Totalmente" and
// check records and artifact name.
func TestEndToEnd_AcmeSubmission(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("e2e")
	log := logger.Nop()
	catalog := reference.NewCatalog(
		reference.NewUnitStore(db, log),
		reference.NewSupplierStore(db, log),
		reference.NewQuestionStore(db, log),
		log,
	)

	if _, err := catalog.Suppliers.AddOrUpdate(ctx, "Acme", []string{"CSA-BH"}); err != nil {
		t.Fatalf("AddOrUpdate supplier: %v", err)
	}
	for c, texts := range adminQuestions {
		if _, err := catalog.Questions.AddOrUpdate(ctx, "Acme", c, texts); err != nil {
			t.Fatalf("AddOrUpdate questions: %v", err)
		}
	}

	units, err := catalog.Units.GetAll(ctx)
	if err != nil || len(units) != 11 {
		t.Fatalf("units = %v, %v", units, err)
	}
	snap, err := catalog.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	suppliers := snap.SuppliersFor("CSA-BH")
	found := false
	for _, s := range suppliers {
		found = found || s == "Acme"
	}
	if !found {
		t.Fatalf("Acme does not serve CSA-BH: %v", suppliers)
	}
	questions := snap.QuestionsFor("Acme", types.OriginAdministration)
	total := 0
	for _, qs := range questions {
		total += len(qs)
	}

	files := storage.NewMemoryRepository()
	s := NewSession(newStore(db, files))
	if err := s.SelectScope(types.OriginAdministration, "CSA-BH", "Acme", "30/11/2025", questions); err != nil {
		t.Fatal(err)
	}
	for c, qs := range questions {
		for _, q := range qs {
			if err := s.Answer(c, q, types.AnswerFully); err != nil {
				t.Fatal(err)
			}
		}
	}
	sub, err := s.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	n, _ := db.Collection(types.CollectionAdministration).Count(ctx, nil)
	if n != int64(total) || total != 4 {
		t.Errorf("stored %d records for %d questions", n, total)
	}
	for _, r := range sub.Records {
		if r.Origin != types.OriginAdministration {
			t.Errorf("record origin = %s", r.Origin)
		}
	}
	if sub.Artifact == nil || sub.Artifact.Name != "Acme_NOV-25_CSABH.xlsx" {
		t.Errorf("artifact = %+v", sub.Artifact)
	}
}
