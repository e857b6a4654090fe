// Package evaluation persists answered questionnaires and maintains the
// exported artifact of every submission.
package evaluation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avaliafor/avaliafor/internal/bulk"
	"github.com/avaliafor/avaliafor/internal/docstore"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/export"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/observability"
	"github.com/avaliafor/avaliafor/internal/storage"
	"github.com/avaliafor/avaliafor/pkg/types"
)

// Options configures a Store. Zero values select the defaults.
type Options struct {
	Folders     storage.Folders
	Encoder     export.Encoder
	Concurrency int
	ItemTimeout time.Duration
	Now         func() time.Time
}

// Store reads and writes evaluation records of both workflows. Artifacts go
// to files; a nil repository disables every artifact side effect.
type Store struct {
	db      docstore.Database
	files   storage.Repository
	folders storage.Folders
	enc     export.Encoder
	bulk    bulk.Options
	now     func() time.Time
	log     *logger.Logger
}

// NewStore creates a Store.
func NewStore(db docstore.Database, files storage.Repository, opts Options, log *logger.Logger) *Store {
	if opts.Folders == (storage.Folders{}) {
		opts.Folders = storage.DefaultFolders()
	}
	if opts.Encoder == nil {
		opts.Encoder = export.NewXLSXEncoder()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		db:      db,
		files:   files,
		folders: opts.Folders,
		enc:     opts.Encoder,
		bulk: bulk.Options{
			Concurrency: opts.Concurrency,
			ItemTimeout: opts.ItemTimeout,
			Logger:      log,
		},
		now: opts.Now,
		log: log,
	}
}

// Folders returns the artifact folder of each workflow.
func (s *Store) Folders() storage.Folders { return s.folders }

// Submission is the outcome of a successful Submit.
type Submission struct {
	Key        types.SubmissionKey `json:"key"`
	AnsweredAt string              `json:"answered_at"`
	Records    []types.Record      `json:"records"`
	Artifact   *Artifact           `json:"artifact,omitempty"`
}

// Submit validates req and writes every answer with one InsertMany. Nothing
// is written when validation fails. After the insert the artifact is
// exported on a best-effort basis.
func (s *Store) Submit(ctx context.Context, req SubmitRequest) (*Submission, error) {
	period, err := req.Validate()
	if err != nil {
		observability.Submissions.WithLabelValues(string(req.Origin), "rejected").Inc()
		return nil, err
	}

	stamp := s.now().Format(types.TimestampLayout)
	records := make([]types.Record, len(req.Answers))
	docs := make([]docstore.Document, len(req.Answers))
	for i, a := range req.Answers {
		records[i] = types.Record{
			Unit:       types.NormalizeName(req.Unit),
			Period:     period.String(),
			Supplier:   types.NormalizeName(req.Supplier),
			Category:   a.Category,
			Question:   a.Question,
			Answer:     strings.TrimSpace(*a.Answer),
			AnsweredAt: stamp,
			Origin:     req.Origin,
		}
		docs[i] = recordDocument(records[i])
	}

	coll := s.db.Collection(req.Origin.Collection())
	if err := coll.InsertMany(ctx, docs); err != nil {
		observability.Submissions.WithLabelValues(string(req.Origin), "failed").Inc()
		return nil, docstore.Classify(err, "insert", coll.Name())
	}
	observability.Submissions.WithLabelValues(string(req.Origin), "accepted").Inc()

	sub := &Submission{Key: records[0].Key(), AnsweredAt: stamp, Records: records}
	s.log.Info("evaluation submitted", "submission", sub.Key.String(), "records", len(records))

	if s.files != nil {
		art, err := s.Export(ctx, sub.Key, records)
		if err != nil {
			s.log.Warn("artifact export failed", "submission", sub.Key.String(), "error", err)
		} else {
			sub.Artifact = art
		}
	}
	return sub, nil
}

// ReadAll returns every record of one workflow, or of both when origin is
// nil. Records always carry their Origin.
func (s *Store) ReadAll(ctx context.Context, origin *types.Origin) ([]types.Record, error) {
	origins := types.Origins()
	if origin != nil {
		if !origin.Valid() {
			return nil, invalidOrigin(*origin)
		}
		origins = []types.Origin{*origin}
	}
	var out []types.Record
	for _, o := range origins {
		recs, err := s.read(ctx, o, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// Find returns the records of one submission key. An empty key origin
// searches both workflows.
func (s *Store) Find(ctx context.Context, key types.SubmissionKey) ([]types.Record, error) {
	key = key.Normalized()
	p, err := types.ParsePeriod(key.Period)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidInput, err.Error())
	}
	filter := docstore.Filter{
		types.FieldSupplier: key.Supplier,
		types.FieldUnit:     key.Unit,
		types.FieldPeriod:   p.String(),
	}
	origins := types.Origins()
	if key.Origin != "" {
		if !key.Origin.Valid() {
			return nil, invalidOrigin(key.Origin)
		}
		origins = []types.Origin{key.Origin}
	}
	var out []types.Record
	for _, o := range origins {
		recs, err := s.read(ctx, o, filter)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

func (s *Store) read(ctx context.Context, origin types.Origin, filter docstore.Filter) ([]types.Record, error) {
	coll := s.db.Collection(origin.Collection())
	docs, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, docstore.Classify(err, "find", coll.Name())
	}
	out := make([]types.Record, len(docs))
	for i, d := range docs {
		out[i] = recordFromDocument(d, origin)
	}
	return out, nil
}

// SubmissionSummary is one row of the control view.
type SubmissionSummary struct {
	Key        types.SubmissionKey `json:"key"`
	AnsweredAt string              `json:"answered_at"`
	Records    int                 `json:"records"`
}

// Submissions lists distinct submission keys with their latest answer time,
// newest first.
func (s *Store) Submissions(ctx context.Context, origin *types.Origin) ([]SubmissionSummary, error) {
	records, err := s.ReadAll(ctx, origin)
	if err != nil {
		return nil, err
	}
	byKey := make(map[types.SubmissionKey]*SubmissionSummary)
	for _, r := range records {
		k := r.Key()
		sum, ok := byKey[k]
		if !ok {
			sum = &SubmissionSummary{Key: k}
			byKey[k] = sum
		}
		sum.Records++
		if r.AnsweredAt > sum.AnsweredAt {
			sum.AnsweredAt = r.AnsweredAt
		}
	}
	out := make([]SubmissionSummary, 0, len(byKey))
	for _, sum := range byKey {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AnsweredAt != out[j].AnsweredAt {
			return out[i].AnsweredAt > out[j].AnsweredAt
		}
		return out[i].Key.String() < out[j].Key.String()
	})
	return out, nil
}

// DeleteFilter selects records to delete. At least one field must be set.
type DeleteFilter struct {
	Supplier string `json:"supplier"`
	Unit     string `json:"unit"`
	Period   string `json:"period"`
}

// DeleteResult reports a DeleteBy. Artifacts lists the derived names of
// every affected submission; Missing those already absent from the
// repository.
type DeleteResult struct {
	Deleted   int64        `json:"deleted"`
	Artifacts []string     `json:"artifacts,omitempty"`
	Missing   []string     `json:"missing,omitempty"`
	Files     *bulk.Report `json:"files,omitempty"`
	Message   string       `json:"message"`
}

// DeleteBy removes the matching records of one workflow, then the artifact
// of every submission they belonged to. Artifact failures only extend the
// message.
func (s *Store) DeleteBy(ctx context.Context, f DeleteFilter, origin types.Origin) (*DeleteResult, error) {
	if !origin.Valid() {
		return nil, invalidOrigin(origin)
	}
	f.Supplier = types.NormalizeName(f.Supplier)
	f.Unit = types.NormalizeName(f.Unit)
	filter := docstore.Filter{}
	if f.Supplier != "" {
		filter[types.FieldSupplier] = f.Supplier
	}
	if f.Unit != "" {
		filter[types.FieldUnit] = f.Unit
	}
	if f.Period != "" {
		p, err := types.ParsePeriod(f.Period)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.CodeInvalidInput, err.Error())
		}
		filter[types.FieldPeriod] = p.String()
	}
	if len(filter) == 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidInput, "delete filter needs supplier, unit or period")
	}

	// Keys are collected first: the records are gone after DeleteMany.
	var keys []types.SubmissionKey
	if s.files != nil {
		matched, err := s.read(ctx, origin, filter)
		if err != nil {
			return nil, err
		}
		keys = distinctKeys(matched)
	}

	coll := s.db.Collection(origin.Collection())
	n, err := coll.DeleteMany(ctx, filter)
	if err != nil {
		return nil, docstore.Classify(err, "delete", coll.Name())
	}
	if n == 0 {
		return nil, apperrors.NewNotFoundError(apperrors.CodeNoRecords, "no records match the filter")
	}

	res := &DeleteResult{Deleted: n, Message: fmt.Sprintf("%d record(s) deleted", n)}
	if len(keys) > 0 {
		s.deleteArtifacts(ctx, origin, keys, res)
	}
	return res, nil
}

func distinctKeys(records []types.Record) []types.SubmissionKey {
	seen := make(map[types.SubmissionKey]bool)
	var keys []types.SubmissionKey
	for _, r := range records {
		k := r.Key()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// deleteArtifacts removes the artifacts of keys through the bulk pool. A
// folder listing tells deleted artifacts apart from ones that never existed;
// without it every name is attempted.
func (s *Store) deleteArtifacts(ctx context.Context, origin types.Origin, keys []types.SubmissionKey, res *DeleteResult) {
	folder := s.folders.For(origin)
	for _, k := range keys {
		name, err := export.NameFor(k)
		if err != nil {
			s.log.Warn("artifact name could not be derived", "submission", k.String(), "error", err)
			continue
		}
		res.Artifacts = append(res.Artifacts, name)
	}

	present := res.Artifacts
	if listed, err := s.files.List(ctx, folder); err != nil {
		s.log.Warn("listing artifacts before delete failed", "folder", folder, "error", err)
	} else {
		stored := make(map[string]bool, len(listed))
		for _, fi := range listed {
			stored[fi.Name] = true
		}
		present = nil
		for _, name := range res.Artifacts {
			if stored[name] {
				present = append(present, name)
			} else {
				res.Missing = append(res.Missing, name)
			}
		}
	}

	if len(present) > 0 {
		opts := s.bulk
		opts.Operation = "delete"
		res.Files = bulk.Run(ctx, opts, present,
			func(name string) string { return name },
			func(ctx context.Context, name string) (int64, error) {
				return 0, s.files.Delete(ctx, name, folder)
			})
		res.Message += fmt.Sprintf("; artifacts: %d succeeded, %d failed", res.Files.Succeeded, res.Files.Failed+res.Files.Skipped)
	}
	if len(res.Missing) > 0 {
		res.Message += fmt.Sprintf("; %d artifact(s) not present", len(res.Missing))
	}
}

// PurgeResult reports a PurgeCollection.
type PurgeResult struct {
	Origin  types.Origin `json:"origin"`
	Purged  bool         `json:"purged"`
	Deleted int64        `json:"deleted"`
	Files   *bulk.Report `json:"files,omitempty"`
	Message string       `json:"message"`
}

// PurgeCollection deletes every record of one workflow, then every file in
// its folder. File failures are counted in Files and never abort the purge.
func (s *Store) PurgeCollection(ctx context.Context, origin types.Origin) (*PurgeResult, error) {
	if !origin.Valid() {
		return nil, invalidOrigin(origin)
	}
	coll := s.db.Collection(origin.Collection())
	res := &PurgeResult{Origin: origin}

	count, err := coll.Count(ctx, nil)
	if err != nil {
		return nil, docstore.Classify(err, "count", coll.Name())
	}
	if count == 0 {
		res.Message = fmt.Sprintf("collection %s is already empty", coll.Name())
		return res, nil
	}
	n, err := coll.DeleteMany(ctx, nil)
	if err != nil {
		return nil, docstore.Classify(err, "delete", coll.Name())
	}
	res.Purged = true
	res.Deleted = n
	res.Message = fmt.Sprintf("%d record(s) deleted from %s", n, coll.Name())
	s.log.Info("collection purged", "collection", coll.Name(), "deleted", n)

	if s.files == nil {
		return res, nil
	}
	folder := s.folders.For(origin)
	files, err := s.files.List(ctx, folder)
	if err != nil {
		s.log.Warn("listing artifacts for purge failed", "folder", folder, "error", err)
		res.Message += "; artifacts not listed: " + err.Error()
		return res, nil
	}

	opts := s.bulk
	opts.Operation = "purge"
	res.Files = bulk.Run(ctx, opts, files,
		func(fi storage.FileInfo) string { return fi.Name },
		func(ctx context.Context, fi storage.FileInfo) (int64, error) {
			return fi.Size, s.files.Delete(ctx, fi.Name, folder)
		})
	if res.Files.Err() != nil {
		res.Message += fmt.Sprintf("; files: %d succeeded, %d failed", res.Files.Succeeded, res.Files.Failed+res.Files.Skipped)
	} else {
		res.Message += fmt.Sprintf("; %d file(s) deleted", res.Files.Succeeded)
	}
	return res, nil
}

// Artifact is an exported submission.
type Artifact struct {
	Name     string `json:"name"`
	Data     []byte `json:"-"`
	Uploaded bool   `json:"uploaded"`
	Warning  string `json:"warning,omitempty"`
}

// Export encodes records under the derived name of key and uploads them to
// the workflow folder. An upload failure is reported in Warning; only naming
// or encoding problems return an error.
func (s *Store) Export(ctx context.Context, key types.SubmissionKey, records []types.Record) (*Artifact, error) {
	name, err := export.NameFor(key)
	if err != nil {
		return nil, err
	}
	rows := make([]types.Record, len(records))
	copy(rows, records)
	for i := range rows {
		rows[i].Origin = ""
	}
	data, err := s.enc.Encode(rows)
	if err != nil {
		return nil, apperrors.NewInternalError("encode "+name, err)
	}

	art := &Artifact{Name: name, Data: data}
	if s.files == nil {
		art.Warning = "no file repository configured"
		return art, nil
	}
	if err := s.files.Upload(ctx, name, s.folders.For(key.Origin), data); err != nil {
		observability.ArtifactUploads.WithLabelValues("failed").Inc()
		s.log.Warn("artifact upload failed", "artifact", name, "error", err)
		art.Warning = "generated but not uploaded: " + err.Error()
		return art, nil
	}
	observability.ArtifactUploads.WithLabelValues("succeeded").Inc()
	art.Uploaded = true
	return art, nil
}

func invalidOrigin(o types.Origin) error {
	return apperrors.NewValidationError(apperrors.CodeInvalidInput, fmt.Sprintf("%v: %q", types.ErrInvalidOrigin, string(o)))
}

func recordDocument(r types.Record) docstore.Document {
	return docstore.Document{
		types.FieldUnit:       r.Unit,
		types.FieldPeriod:     r.Period,
		types.FieldSupplier:   r.Supplier,
		types.FieldCategory:   string(r.Category),
		types.FieldQuestion:   r.Question,
		types.FieldAnswer:     r.Answer,
		types.FieldAnsweredAt: r.AnsweredAt,
	}
}

func recordFromDocument(d docstore.Document, origin types.Origin) types.Record {
	return types.Record{
		Unit:       docstore.String(d, types.FieldUnit),
		Period:     docstore.String(d, types.FieldPeriod),
		Supplier:   docstore.String(d, types.FieldSupplier),
		Category:   types.Category(docstore.String(d, types.FieldCategory)),
		Question:   docstore.String(d, types.FieldQuestion),
		Answer:     docstore.String(d, types.FieldAnswer),
		AnsweredAt: docstore.String(d, types.FieldAnsweredAt),
		Origin:     origin,
	}
}
