package evaluation

import (
	"fmt"
	"strings"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// Answer is the response given to one question. A nil Answer means the
// question was left unanswered.
type Answer struct {
	Category types.Category `json:"category" validate:"required"`
	Question string         `json:"question" validate:"required"`
	Answer   *string        `json:"answer"`
}

// SubmitRequest is one completed questionnaire.
type SubmitRequest struct {
	Origin   types.Origin `json:"origin" validate:"required"`
	Unit     string       `json:"unit" validate:"required"`
	Period   string       `json:"period" validate:"required"`
	Supplier string       `json:"supplier" validate:"required"`
	Answers  []Answer     `json:"answers" validate:"required,min=1,dive"`
}

// Validate checks the request without touching storage and returns the
// parsed period. Unanswered questions are listed in one error.
func (r SubmitRequest) Validate() (types.Period, error) {
	if !r.Origin.Valid() {
		return types.Period{}, invalidOrigin(r.Origin)
	}
	if strings.TrimSpace(r.Unit) == "" || strings.TrimSpace(r.Supplier) == "" {
		return types.Period{}, apperrors.NewValidationError(apperrors.CodeInvalidInput, "unit and supplier are required")
	}
	p, err := types.ParsePeriod(r.Period)
	if err != nil {
		return types.Period{}, apperrors.NewValidationError(apperrors.CodeInvalidInput, err.Error())
	}
	if len(r.Answers) == 0 {
		return types.Period{}, apperrors.NewValidationError(apperrors.CodeInvalidInput, "questionnaire has no questions")
	}

	allowed := make(map[types.Category]bool)
	for _, c := range r.Origin.Categories() {
		allowed[c] = true
	}
	var unanswered []string
	for _, a := range r.Answers {
		if !allowed[a.Category] {
			return types.Period{}, apperrors.NewValidationError(apperrors.CodeInvalidInput,
				fmt.Sprintf("category %q is not asked by %s", a.Category, r.Origin))
		}
		if a.Answer == nil || strings.TrimSpace(*a.Answer) == "" {
			unanswered = append(unanswered, a.Question)
			continue
		}
		if _, ok := types.Score(strings.TrimSpace(*a.Answer)); !ok {
			return types.Period{}, apperrors.NewValidationError(apperrors.CodeInvalidAnswer,
				fmt.Sprintf("unknown answer %q for %q", *a.Answer, a.Question))
		}
	}
	if len(unanswered) > 0 {
		return types.Period{}, apperrors.NewUnansweredError(unanswered)
	}
	return p, nil
}
