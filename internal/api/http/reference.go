package http

import (
	"net/http"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/reference"
)

// CatalogResponse is the reference data served to the questionnaire.
type CatalogResponse struct {
	*reference.Snapshot
	Warning string `json:"warning,omitempty"`
}

// ReferenceHandler serves units, suppliers, questions and the catalog.
type ReferenceHandler struct {
	catalog *reference.Catalog
	log     *logger.Logger
}

// NewReferenceHandler creates a handler over catalog.
func NewReferenceHandler(catalog *reference.Catalog, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{catalog: catalog, log: log}
}

// Catalog handles GET /v1/catalog. An unreachable store still answers 200
// with the built-in data and degraded set.
func (h *ReferenceHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	snap, err := h.catalog.Load(r.Context())
	resp := CatalogResponse{Snapshot: snap}
	if err != nil {
		resp.Warning = "reference data unavailable, showing built-in defaults"
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListUnits handles GET /v1/units.
func (h *ReferenceHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.catalog.Units.GetAll(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"units": units})
}

// AddUnit handles POST /v1/units.
func (h *ReferenceHandler) AddUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := decode(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	ok, err := h.catalog.Units.AddOrUpdate(r.Context(), req.Name)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	h.log.Info("unit saved", "unit", req.Name)
	writeJSON(w, http.StatusOK, MutationResponse{OK: ok})
}

// RemoveUnit handles DELETE /v1/units/{name}.
func (h *ReferenceHandler) RemoveUnit(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ok, err := h.catalog.Units.Remove(r.Context(), name)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if !ok {
		writeAppError(w, r, apperrors.NewNotFoundError(apperrors.CodeNoRecords, "unit not found: "+name))
		return
	}
	h.log.Info("unit removed", "unit", name)
	writeJSON(w, http.StatusOK, MutationResponse{OK: true})
}

// ListSuppliers handles GET /v1/suppliers. With ?unit= only the names of the
// suppliers serving that unit are returned.
func (h *ReferenceHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	if unit := r.URL.Query().Get("unit"); unit != "" {
		names, err := h.catalog.Suppliers.ByUnit(r.Context(), unit)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"unit": unit, "suppliers": names})
		return
	}
	list, err := h.catalog.Suppliers.List(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suppliers": list})
}

// RegisterSupplier handles POST /v1/suppliers.
func (h *ReferenceHandler) RegisterSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := decode(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	ok, err := h.catalog.Suppliers.Register(r.Context(), req.Name, req.Units)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	h.log.Info("supplier saved", "supplier", req.Name, "units", len(req.Units))
	writeJSON(w, http.StatusOK, MutationResponse{OK: ok})
}

// RemoveSupplier handles DELETE /v1/suppliers/{name}. The supplier's
// questions are removed with it.
func (h *ReferenceHandler) RemoveSupplier(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ok, err := h.catalog.Suppliers.Remove(r.Context(), name)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if !ok {
		writeAppError(w, r, apperrors.NewNotFoundError(apperrors.CodeNoRecords, "supplier not found: "+name))
		return
	}
	resp := MutationResponse{OK: true}
	if _, err := h.catalog.Questions.Remove(r.Context(), name); err != nil {
		h.log.Warn("supplier removed but questions kept", "supplier", name, "error", err)
		resp.Message = "questions could not be removed: " + err.Error()
	}
	h.log.Info("supplier removed", "supplier", name)
	writeJSON(w, http.StatusOK, resp)
}

// ListQuestions handles GET /v1/questions?supplier=.
func (h *ReferenceHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	supplier := r.URL.Query().Get("supplier")
	if supplier == "" {
		writeAppError(w, r, apperrors.NewValidationError(apperrors.CodeInvalidInput, "supplier is required"))
		return
	}
	qs, err := h.catalog.Questions.List(r.Context(), supplier)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"supplier": supplier, "questions": qs})
}

// AddQuestion handles POST /v1/questions.
func (h *ReferenceHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decode(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	q, err := h.catalog.Questions.Add(r.Context(), req.Supplier, req.Category, req.Text)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// UpdateQuestion handles PUT /v1/questions/{id}.
func (h *ReferenceHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req questionUpdate
	if err := decode(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	ok, err := h.catalog.Questions.UpdateByID(r.Context(), id, req.Text)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if !ok {
		writeAppError(w, r, apperrors.NewNotFoundError(apperrors.CodeNoRecords, "question not found: "+id))
		return
	}
	writeJSON(w, http.StatusOK, MutationResponse{OK: true})
}

// RemoveQuestion handles DELETE /v1/questions/{id}.
func (h *ReferenceHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ok, err := h.catalog.Questions.RemoveByID(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if !ok {
		writeAppError(w, r, apperrors.NewNotFoundError(apperrors.CodeNoRecords, "question not found: "+id))
		return
	}
	writeJSON(w, http.StatusOK, MutationResponse{OK: true})
}
