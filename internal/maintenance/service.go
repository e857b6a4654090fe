// Package maintenance implements the administrative operations: deleting
// and purging evaluations, regenerating artifacts, bulk downloads, bundles,
// backups and reference data import.
package maintenance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/avaliafor/avaliafor/internal/backup"
	"github.com/avaliafor/avaliafor/internal/bulk"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/evaluation"
	"github.com/avaliafor/avaliafor/internal/export"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/reference"
	"github.com/avaliafor/avaliafor/internal/storage"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// Confirmation actions.
const (
	ActionPurgeAdministration = "purge:ADM"
	ActionPurgeSupplies       = "purge:SUP"
	ActionPurgeAll            = "purge:ALL"
)

// PurgeAction returns the confirmation action for purging origin, or both
// workflows when origin is nil.
func PurgeAction(origin *types.Origin) string {
	if origin == nil {
		return ActionPurgeAll
	}
	return "purge:" + origin.Short()
}

// Service bundles the maintenance operations.
type Service struct {
	Evaluations *evaluation.Store
	Catalog     *reference.Catalog
	Backups     *backup.Engine

	files      storage.Repository
	existence  *storage.ExistenceCache
	downloader *storage.BatchDownloader
	confirm    *Confirmations
	enc        export.Encoder
	now        func() time.Time
	log        *logger.Logger
}

// Config holds the tunables of a Service.
type Config struct {
	Concurrency     int
	ItemTimeout     time.Duration
	ExistenceTTL    time.Duration
	ConfirmationTTL time.Duration
}

// NewService wires a Service. files may be nil when no repository is
// configured; file operations then fail with a CONFIGURATION error.
func NewService(evals *evaluation.Store, catalog *reference.Catalog, backups *backup.Engine,
	files storage.Repository, cfg Config, log *logger.Logger) *Service {
	s := &Service{
		Evaluations: evals,
		Catalog:     catalog,
		Backups:     backups,
		files:       files,
		confirm:     NewConfirmations(cfg.ConfirmationTTL),
		enc:         export.NewXLSXEncoder(),
		now:         time.Now,
		log:         log,
	}
	if files != nil {
		s.existence = storage.NewExistenceCache(files, cfg.ExistenceTTL)
		s.downloader = storage.NewBatchDownloader(files, cfg.Concurrency, cfg.ItemTimeout, log)
	}
	return s
}

func (s *Service) requireFiles() error {
	if s.files == nil {
		return apperrors.NewConfigurationError(apperrors.CodeInvalidConfig, "no file repository configured")
	}
	return nil
}

// RequestPurge issues the confirmation token for a purge of origin (both
// workflows when nil).
func (s *Service) RequestPurge(origin *types.Origin) (*Challenge, error) {
	if origin != nil && !origin.Valid() {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidInput, "unknown origin "+string(*origin))
	}
	ch := s.confirm.Issue(PurgeAction(origin))
	s.log.Info("purge requested", "action", ch.Action, "expires_at", ch.ExpiresAt)
	return ch, nil
}

// Purge deletes every record and artifact of origin, or of both workflows
// when origin is nil. token must come from RequestPurge for the same scope.
func (s *Service) Purge(ctx context.Context, origin *types.Origin, token string) ([]*evaluation.PurgeResult, error) {
	if err := s.confirm.Confirm(token, PurgeAction(origin)); err != nil {
		return nil, err
	}
	origins := types.Origins()
	if origin != nil {
		origins = []types.Origin{*origin}
	}
	defer s.ClearCache()

	var results []*evaluation.PurgeResult
	for _, o := range origins {
		res, err := s.Evaluations.PurgeCollection(ctx, o)
		if err != nil {
			return results, fmt.Errorf("purge %s: %w", o, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// DeleteSubmission deletes the records of one submission and its artifact.
func (s *Service) DeleteSubmission(ctx context.Context, key types.SubmissionKey) (*evaluation.DeleteResult, error) {
	res, err := s.Evaluations.DeleteBy(ctx, evaluation.DeleteFilter{
		Supplier: key.Supplier,
		Unit:     key.Unit,
		Period:   key.Period,
	}, key.Origin)
	if err != nil {
		return nil, err
	}
	s.ClearCache()
	return res, nil
}

// RegenerateArtifact rebuilds the artifact of one submission from its
// stored records and uploads it again. The bytes are returned even when the
// upload fails.
func (s *Service) RegenerateArtifact(ctx context.Context, supplier, unit, period string, origin types.Origin) (*evaluation.Artifact, error) {
	if !origin.Valid() {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidInput, "unknown origin "+string(origin))
	}
	key := types.SubmissionKey{Supplier: supplier, Unit: unit, Period: period, Origin: origin}.Normalized()
	records, err := s.Evaluations.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewNotFoundError(apperrors.CodeNoRecords,
			fmt.Sprintf("no records for %s / %s / %s", key.Supplier, key.Unit, period))
	}
	art, err := s.Evaluations.Export(ctx, key, records)
	if err != nil {
		return nil, err
	}
	if art.Uploaded {
		s.ClearCache()
	}
	s.log.Info("artifact regenerated", "artifact", art.Name, "records", len(records), "uploaded", art.Uploaded)
	return art, nil
}

// ControlRow is one submission of the control view with the state of its
// artifact.
type ControlRow struct {
	evaluation.SubmissionSummary
	Artifact string `json:"artifact"`
	// ArtifactExists is nil when the repository could not be checked.
	ArtifactExists *bool `json:"artifact_exists,omitempty"`
}

// Control lists submissions newest first and flags those whose artifact is
// missing from the repository.
func (s *Service) Control(ctx context.Context, origin *types.Origin) ([]ControlRow, error) {
	subs, err := s.Evaluations.Submissions(ctx, origin)
	if err != nil {
		return nil, err
	}
	folders := s.Evaluations.Folders()
	rows := make([]ControlRow, len(subs))
	for i, sub := range subs {
		rows[i].SubmissionSummary = sub
		name, err := export.NameFor(sub.Key)
		if err != nil {
			continue
		}
		rows[i].Artifact = name
		if s.existence == nil {
			continue
		}
		ok, err := s.existence.Exists(ctx, folders.For(sub.Key.Origin), name)
		if err != nil {
			s.log.Warn("artifact existence check failed", "artifact", name, "error", err)
			continue
		}
		rows[i].ArtifactExists = &ok
	}
	return rows, nil
}

// ClearCache drops the artifact existence cache.
func (s *Service) ClearCache() {
	if s.existence != nil {
		s.existence.Clear()
	}
}

// DownloadAll streams every artifact of the selected workflows (both when
// origins is empty) into a ZIP written to w.
func (s *Service) DownloadAll(ctx context.Context, origins []types.Origin, w io.Writer, onProgress func(bulk.Progress)) (*storage.BatchResult, error) {
	if err := s.requireFiles(); err != nil {
		return nil, err
	}
	if len(origins) == 0 {
		origins = types.Origins()
	}
	folders := make([]string, 0, len(origins))
	for _, o := range origins {
		folders = append(folders, s.Evaluations.Folders().For(o))
	}
	res, err := s.downloader.Download(ctx, folders, w, onProgress)
	if err != nil {
		return nil, apperrors.NewConnectivityError(apperrors.CodeRepository, "bulk download failed", err)
	}
	return res, nil
}

// BundleFilter narrows a bundle. Empty fields match everything.
type BundleFilter struct {
	Origin   *types.Origin
	Supplier string
	Unit     string
	Period   string
}

func (f BundleFilter) narrowed() bool {
	return f.Supplier != "" || f.Unit != "" || f.Period != ""
}

func (f BundleFilter) match(r types.Record) bool {
	if f.Supplier != "" && r.Supplier != f.Supplier {
		return false
	}
	if f.Unit != "" && r.Unit != f.Unit {
		return false
	}
	return f.Period == "" || r.Period == f.Period
}

// Bundle builds a ZIP with one freshly encoded artifact per matching
// submission.
func (s *Service) Bundle(ctx context.Context, f BundleFilter) (*export.BundleResult, error) {
	f.Supplier = types.NormalizeName(f.Supplier)
	f.Unit = types.NormalizeName(f.Unit)
	if f.Period != "" {
		p, err := types.ParsePeriod(f.Period)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.CodeInvalidInput, err.Error())
		}
		f.Period = p.String()
	}
	records, err := s.Evaluations.ReadAll(ctx, f.Origin)
	if err != nil {
		return nil, err
	}
	var selected []types.Record
	for _, r := range records {
		if f.match(r) {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		return nil, apperrors.NewNotFoundError(apperrors.CodeNoRecords, "no evaluations match the filter")
	}
	return export.SubmissionBundle(ctx, selected, s.enc, export.PrefixFor(f.Origin, f.narrowed()), s.now())
}

// BackupTo writes a backup of the whole database to w and returns its file
// name.
func (s *Service) BackupTo(ctx context.Context, w io.Writer, compressed bool) (string, error) {
	snap, err := s.Backups.Backup(ctx)
	if err != nil {
		return "", err
	}
	if compressed {
		err = backup.EncodeCompressed(w, snap)
	} else {
		err = backup.Encode(w, snap)
	}
	if err != nil {
		return "", apperrors.NewInternalError("encode backup", err)
	}
	return backup.FileName(s.now(), compressed), nil
}

// RestoreFrom decodes a backup named name from r and restores it. Nothing is
// deleted when the file does not decode.
func (s *Service) RestoreFrom(ctx context.Context, name string, r io.Reader) (*backup.RestoreReport, error) {
	snap, err := backup.DecodeNamed(name, r)
	if err != nil {
		return nil, err
	}
	report, err := s.Backups.Restore(ctx, snap)
	s.ClearCache()
	return report, err
}

// ImportDefaults replaces the reference collections with the built-in data.
func (s *Service) ImportDefaults(ctx context.Context) error {
	return s.Catalog.ImportDefaults(ctx)
}
