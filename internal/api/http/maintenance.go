package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avaliafor/avaliafor/internal/backup"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/maintenance"
	"github.com/avaliafor/avaliafor/pkg/types"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeZip  = "application/zip"
)

// keyRequest identifies one submission.
type keyRequest struct {
	Supplier string `json:"supplier" validate:"required"`
	Unit     string `json:"unit" validate:"required"`
	Period   string `json:"period" validate:"required"`
	Origin   string `json:"origin" validate:"required"`
}

// PurgeResponse is returned once a purge has been confirmed.
type PurgeResponse struct {
	Results interface{} `json:"results"`
}

// RestoreResponse reports a restore, including partial ones.
type RestoreResponse struct {
	Report *backup.RestoreReport `json:"report"`
	Error  string                `json:"error,omitempty"`
}

// MaintenanceHandler serves the administrative operations.
type MaintenanceHandler struct {
	svc *maintenance.Service
	log *logger.Logger
}

// NewMaintenanceHandler creates a handler over svc.
func NewMaintenanceHandler(svc *maintenance.Service, log *logger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc, log: log}
}

// Purge handles POST /v1/maintenance/purge. Without a token it answers 202
// with a confirmation challenge; the same request repeated with the token
// performs the purge.
func (h *MaintenanceHandler) Purge(w http.ResponseWriter, r *http.Request) {
	var req purgeRequest
	if err := decode(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	origin, err := parseOrigin(req.Origin)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	if req.Token == "" {
		ch, err := h.svc.RequestPurge(origin)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusAccepted, ch)
		return
	}

	results, err := h.svc.Purge(r.Context(), origin, req.Token)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	h.log.Warn("evaluations purged", "action", maintenance.PurgeAction(origin), "request_id", GetRequestID(r.Context()))
	writeJSON(w, http.StatusOK, PurgeResponse{Results: results})
}

// Regenerate handles POST /v1/maintenance/regenerate and answers with the
// rebuilt spreadsheet. The upload outcome travels in X-Artifact-* headers.
func (h *MaintenanceHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decode(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	origin, err := requireOrigin(req.Origin)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	art, err := h.svc.RegenerateArtifact(r.Context(), req.Supplier, req.Unit, req.Period, origin)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	w.Header().Set("X-Artifact-Name", art.Name)
	w.Header().Set("X-Artifact-Uploaded", strconv.FormatBool(art.Uploaded))
	if art.Warning != "" {
		w.Header().Set("X-Artifact-Warning", art.Warning)
	}
	writeAttachment(w, contentTypeXLSX, art.Name, art.Data)
}

// Backup handles GET /v1/maintenance/backup[?compressed=true].
func (h *MaintenanceHandler) Backup(w http.ResponseWriter, r *http.Request) {
	compressed, _ := strconv.ParseBool(r.URL.Query().Get("compressed"))
	var buf bytes.Buffer
	name, err := h.svc.BackupTo(r.Context(), &buf, compressed)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	contentType := "application/json"
	if compressed {
		contentType = "application/octet-stream"
	}
	h.log.Info("backup generated", "file", name, "bytes", buf.Len())
	writeAttachment(w, contentType, name, buf.Bytes())
}

// Restore handles POST /v1/maintenance/restore?name=<file>. The body is the
// backup file; its name selects the codec.
func (h *MaintenanceHandler) Restore(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "backup.json"
	}
	body := http.MaxBytesReader(w, r.Body, maxRestoreBytes)
	report, err := h.svc.RestoreFrom(r.Context(), name, body)
	if err != nil && report == nil {
		writeAppError(w, r, err)
		return
	}
	resp := RestoreResponse{Report: report}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = StatusFor(err)
	}
	h.log.Warn("database restored", "file", name, "collections", len(report.Restored), "failures", len(report.Failures))
	writeJSON(w, status, resp)
}

// ImportDefaults handles POST /v1/maintenance/import-defaults.
func (h *MaintenanceHandler) ImportDefaults(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ImportDefaults(r.Context()); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MutationResponse{OK: true, Message: "default reference data imported"})
}

// Download handles GET /v1/maintenance/download[?origin=]. The ZIP is
// streamed; per-file results are sent as trailers.
func (h *MaintenanceHandler) Download(w http.ResponseWriter, r *http.Request) {
	origin, err := parseOrigin(r.URL.Query().Get("origin"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	var origins []types.Origin
	if origin != nil {
		origins = []types.Origin{*origin}
	}

	out := &lazyAttachment{w: w, name: downloadName(origin)}
	res, err := h.svc.DownloadAll(r.Context(), origins, out, nil)
	if err != nil {
		if !out.started {
			writeAppError(w, r, err)
			return
		}
		h.log.Error("download aborted mid-stream", "error", err)
		return
	}
	if !out.started {
		out.start()
	}
	w.Header().Set("X-Download-Succeeded", strconv.Itoa(res.Report.Succeeded))
	w.Header().Set("X-Download-Failed", strconv.Itoa(res.Report.Failed))
	h.log.Info("bulk download served", "files", len(res.Files), "failed", res.Report.Failed, "bytes", res.Report.Bytes)
}

// Bundle handles GET /v1/maintenance/bundle with optional origin, supplier,
// unit and period filters.
func (h *MaintenanceHandler) Bundle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin, err := parseOrigin(q.Get("origin"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	res, err := h.svc.Bundle(r.Context(), maintenance.BundleFilter{
		Origin:   origin,
		Supplier: q.Get("supplier"),
		Unit:     q.Get("unit"),
		Period:   q.Get("period"),
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	w.Header().Set("X-Bundle-Files", strconv.Itoa(len(res.Files)))
	writeAttachment(w, contentTypeZip, res.Name, res.Data)
}

// ClearCache handles DELETE /v1/maintenance/cache.
func (h *MaintenanceHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

func downloadName(origin *types.Origin) string {
	if origin == nil {
		return "avaliacoes_todas.zip"
	}
	return fmt.Sprintf("avaliacoes_%s.zip", origin.Short())
}

func writeAttachment(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// lazyAttachment sends the attachment headers on the first write so an
// error raised before any byte is produced can still become a JSON error.
type lazyAttachment struct {
	w       http.ResponseWriter
	name    string
	started bool
}

func (a *lazyAttachment) start() {
	a.started = true
	h := a.w.Header()
	h.Set("Content-Type", contentTypeZip)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.name))
	h.Set("Trailer", "X-Download-Succeeded, X-Download-Failed")
	a.w.WriteHeader(http.StatusOK)
}

func (a *lazyAttachment) Write(p []byte) (int, error) {
	if !a.started {
		a.start()
	}
	return a.w.Write(p)
}
