package http

import (
	"net/http"

	"github.com/avaliafor/avaliafor/internal/evaluation"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/maintenance"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// deleteRequest selects the records to delete. Origin is required; the
// other fields narrow the selection and at least one must be set.
type deleteRequest struct {
	Supplier string `json:"supplier"`
	Unit     string `json:"unit"`
	Period   string `json:"period"`
	Origin   string `json:"origin" validate:"required"`
}

// EvaluationHandler serves submissions and their control view.
type EvaluationHandler struct {
	store *evaluation.Store
	maint *maintenance.Service
	log   *logger.Logger
}

// NewEvaluationHandler creates a handler. maint backs the control view and
// deletions so the artifact existence cache stays consistent.
func NewEvaluationHandler(store *evaluation.Store, maint *maintenance.Service, log *logger.Logger) *EvaluationHandler {
	return &EvaluationHandler{store: store, maint: maint, log: log}
}

// Submit handles POST /v1/evaluations.
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req evaluation.SubmitRequest
	if err := decode(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	origin, err := requireOrigin(string(req.Origin))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	req.Origin = origin

	sub, err := h.store.Submit(r.Context(), req)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// List handles GET /v1/evaluations. With supplier, unit and period the
// records of that one submission are returned.
func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin, err := parseOrigin(q.Get("origin"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	var records []types.Record
	if q.Get("supplier") != "" && q.Get("unit") != "" && q.Get("period") != "" {
		key := types.SubmissionKey{Supplier: q.Get("supplier"), Unit: q.Get("unit"), Period: q.Get("period")}
		if origin != nil {
			key.Origin = *origin
		}
		records, err = h.store.Find(r.Context(), key)
	} else {
		records, err = h.store.ReadAll(r.Context(), origin)
	}
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if records == nil {
		records = []types.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(records), "records": records})
}

// Submissions handles GET /v1/submissions: submissions newest first with the
// state of their artifact.
func (h *EvaluationHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	origin, err := parseOrigin(r.URL.Query().Get("origin"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	rows, err := h.maint.Control(r.Context(), origin)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if rows == nil {
		rows = []maintenance.ControlRow{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": rows})
}

// Delete handles DELETE /v1/submissions.
func (h *EvaluationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decode(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	origin, err := requireOrigin(req.Origin)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	res, err := h.maint.DeleteSubmission(r.Context(), types.SubmissionKey{
		Supplier: req.Supplier,
		Unit:     req.Unit,
		Period:   req.Period,
		Origin:   origin,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	h.log.Info("evaluations deleted", "origin", origin, "deleted", res.Deleted, "request_id", GetRequestID(r.Context()))
	writeJSON(w, http.StatusOK, res)
}
