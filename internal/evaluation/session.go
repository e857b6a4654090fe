package evaluation

import (
	"context"
	"fmt"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// State is a step of an evaluation session.
type State int

const (
	StateSelectingScope State = iota
	StateAnswering
	StateValidating
	StateSubmitting
	StateSucceeded
	StateRejected
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSelectingScope:
		return "selecting_scope"
	case StateAnswering:
		return "answering"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateRejected:
		return "rejected"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Submitter writes a validated questionnaire.
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) (*Submission, error)
}

// Session drives one questionnaire from scope selection to submission. It
// is not safe for concurrent use.
type Session struct {
	store   Submitter
	state   State
	req     SubmitRequest
	index   map[string]int
	flagged []string
	result  *Submission
	err     error
}

// NewSession starts a session in StateSelectingScope.
func NewSession(store Submitter) *Session {
	return &Session{store: store}
}

// State returns the current step.
func (s *Session) State() State { return s.state }

// Flagged lists the questions rejected by the last validation.
func (s *Session) Flagged() []string { return append([]string(nil), s.flagged...) }

// Result returns the submission once the session succeeded.
func (s *Session) Result() *Submission { return s.result }

// Err returns the error that moved the session to Rejected or Failed.
func (s *Session) Err() error { return s.err }

// SelectScope fixes origin, unit, supplier and period and lays out the
// questionnaire. Categories not asked by the origin are ignored.
func (s *Session) SelectScope(origin types.Origin, unit, supplier, period string, questions map[types.Category][]string) error {
	if s.state != StateSelectingScope {
		return s.transitionError("select scope")
	}
	if !origin.Valid() {
		return invalidOrigin(origin)
	}
	if _, err := types.ParsePeriod(period); err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidInput, err.Error())
	}

	s.req = SubmitRequest{Origin: origin, Unit: unit, Supplier: supplier, Period: period}
	s.index = make(map[string]int)
	for _, c := range origin.Categories() {
		for _, q := range questions[c] {
			s.index[answerKey(c, q)] = len(s.req.Answers)
			s.req.Answers = append(s.req.Answers, Answer{Category: c, Question: q})
		}
	}
	s.state = StateAnswering
	return nil
}

// Answer records the answer to one question. Answering after a rejection
// returns the session to StateAnswering.
func (s *Session) Answer(category types.Category, question, answer string) error {
	if s.state != StateAnswering && s.state != StateRejected {
		return s.transitionError("answer")
	}
	i, ok := s.index[answerKey(category, question)]
	if !ok {
		return apperrors.NewValidationError(apperrors.CodeInvalidInput,
			fmt.Sprintf("question %q is not part of this questionnaire", question))
	}
	a := answer
	s.req.Answers[i].Answer = &a
	s.state = StateAnswering
	return nil
}

// Request returns a copy of the questionnaire as answered so far.
func (s *Session) Request() SubmitRequest {
	req := s.req
	req.Answers = append([]Answer(nil), s.req.Answers...)
	return req
}

// Submit validates the answers and hands them to the store. Validation
// failures move the session to StateRejected with the unanswered questions
// flagged; store failures move it to StateFailed, from which Submit may be
// called again with the same answers.
func (s *Session) Submit(ctx context.Context) (*Submission, error) {
	switch s.state {
	case StateAnswering, StateRejected, StateFailed:
	default:
		return nil, s.transitionError("submit")
	}

	s.state = StateValidating
	s.flagged = nil
	if _, err := s.req.Validate(); err != nil {
		return nil, s.reject(err)
	}

	s.state = StateSubmitting
	sub, err := s.store.Submit(ctx, s.Request())
	if err != nil {
		if apperrors.IsValidation(err) {
			return nil, s.reject(err)
		}
		s.state = StateFailed
		s.err = err
		return nil, err
	}
	s.state = StateSucceeded
	s.result = sub
	s.err = nil
	return sub, nil
}

// Reset discards the questionnaire and returns to scope selection.
func (s *Session) Reset() {
	*s = Session{store: s.store}
}

func (s *Session) reject(err error) error {
	s.state = StateRejected
	s.err = err
	if qs, ok := apperrors.GetDetails(err)["unanswered"].([]string); ok {
		s.flagged = qs
	}
	return err
}

func (s *Session) transitionError(action string) error {
	return apperrors.NewValidationError(apperrors.CodeInvalidInput,
		fmt.Sprintf("cannot %s while %s", action, s.state))
}

func answerKey(c types.Category, question string) string {
	return string(c) + "\x00" + question
}
