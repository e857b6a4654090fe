package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/avaliafor/avaliafor/internal/docstore"
	apperrors "github.com/avaliafor/avaliafor/internal/errors"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/storage"
	"github.com/avaliafor/avaliafor/pkg/types"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newStore(db docstore.Database, files storage.Repository) *Store {
	c := &clock{t: time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)}
	return NewStore(db, files, Options{Now: c.now}, logger.Nop())
}

func str(s string) *string { return &s }

func adminRequest(supplier, unit string, answers ...*string) SubmitRequest {
	req := SubmitRequest{
		Origin:   types.OriginAdministration,
		Unit:     unit,
		Period:   "30/11/2025",
		Supplier: supplier,
	}
	cats := types.OriginAdministration.Categories()
	for i, a := range answers {
		req.Answers = append(req.Answers, Answer{
			Category: cats[i%len(cats)],
			Question: fmt.Sprintf("pergunta %d", i+1),
			Answer:   a,
		})
	}
	return req
}

func suppliesRequest(supplier, unit string, n int) SubmitRequest {
	req := SubmitRequest{Origin: types.OriginSupplies, Unit: unit, Period: "31/10/2025", Supplier: supplier}
	for i := 0; i < n; i++ {
		req.Answers = append(req.Answers, Answer{
			Category: types.CategoryDocumentation,
			Question: fmt.Sprintf("documento %d", i+1),
			Answer:   str(types.AnswerPartially),
		})
	}
	return req
}

func count(t *testing.T, db docstore.Database, coll string) int64 {
	t.Helper()
	n, err := db.Collection(coll).Count(context.Background(), nil)
	if err != nil {
		t.Fatalf("Count(%s): %v", coll, err)
	}
	return n
}

func TestSubmit_RejectsUnansweredWithoutWriting(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("test")
	store := newStore(db, storage.NewMemoryRepository())

	req := adminRequest("Acme", "CSA-BH", str(types.AnswerFully), nil, str(""), str(types.AnswerNot))
	_, err := store.Submit(ctx, req)
	if !apperrors.IsValidation(err) {
		t.Fatalf("Submit error = %v, want validation", err)
	}
	unanswered, _ := apperrors.GetDetails(err)["unanswered"].([]string)
	if len(unanswered) != 2 || unanswered[0] != "pergunta 2" || unanswered[1] != "pergunta 3" {
		t.Errorf("unanswered = %v", unanswered)
	}
	if n := count(t, db, types.CollectionAdministration); n != 0 {
		t.Errorf("rejected submission wrote %d records", n)
	}
}

func TestSubmit_RejectsMalformedInput(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("test")
	store := newStore(db, nil)

	cases := map[string]SubmitRequest{
		"unknown answer": adminRequest("Acme", "CSA-BH", str("Talvez")),
		"bad period": func() SubmitRequest {
			r := adminRequest("Acme", "CSA-BH", str(types.AnswerFully))
			r.Period = "2025-11"
			return r
		}(),
		"no questions": adminRequest("Acme", "CSA-BH"),
		"no unit":      adminRequest("Acme", " ", str(types.AnswerFully)),
		"wrong category": func() SubmitRequest {
			r := suppliesRequest("Acme", "CSA-BH", 1)
			r.Answers[0].Category = types.CategoryQuality
			return r
		}(),
		"bad origin": func() SubmitRequest {
			r := adminRequest("Acme", "CSA-BH", str(types.AnswerFully))
			r.Origin = "OUTRA"
			return r
		}(),
	}
	for name, req := range cases {
		if _, err := store.Submit(ctx, req); !apperrors.IsValidation(err) {
			t.Errorf("%s: error = %v, want validation", name, err)
		}
	}
	if n := count(t, db, types.CollectionAdministration) + count(t, db, types.CollectionSupplies); n != 0 {
		t.Errorf("rejected submissions wrote %d records", n)
	}
}

func TestSubmit_WritesRecordsAndArtifact(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("test")
	files := storage.NewMemoryRepository()
	store := newStore(db, files)

	sub, err := store.Submit(ctx, adminRequest("Acme", "CSA-BH",
		str(types.AnswerFully), str(types.AnswerPartially), str(types.AnswerNotApplicable)))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(sub.Records) != 3 || count(t, db, types.CollectionAdministration) != 3 {
		t.Fatalf("records = %d", len(sub.Records))
	}
	for _, r := range sub.Records {
		if r.AnsweredAt != sub.AnsweredAt {
			t.Errorf("record stamped %q, submission %q", r.AnsweredAt, sub.AnsweredAt)
		}
	}
	if sub.AnsweredAt != "2025-12-05 10:01:00" {
		t.Errorf("AnsweredAt = %q", sub.AnsweredAt)
	}
	if sub.Artifact == nil || !sub.Artifact.Uploaded || sub.Artifact.Name != "Acme_NOV-25_CSABH.xlsx" {
		t.Fatalf("artifact = %+v", sub.Artifact)
	}
	if !files.Has(storage.DefaultFolders().Administration, "Acme_NOV-25_CSABH.xlsx") {
		t.Error("artifact not uploaded to the administration folder")
	}
}

func TestSubmit_UploadFailureKeepsRecords(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("test")
	files := storage.NewMemoryRepository()
	files.Fail(storage.OpUpload, "Beta_OUT-25_EPSA_SUP.xlsx", errors.New("quota exceeded"))
	store := newStore(db, files)

	sub, err := store.Submit(ctx, suppliesRequest("Beta", "EPSA", 2))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.Artifact == nil || sub.Artifact.Uploaded || !strings.Contains(sub.Artifact.Warning, "quota exceeded") {
		t.Errorf("artifact = %+v", sub.Artifact)
	}
	if len(sub.Artifact.Data) == 0 {
		t.Error("artifact bytes missing")
	}
	if n := count(t, db, types.CollectionSupplies); n != 2 {
		t.Errorf("records = %d, want 2", n)
	}
}

func TestSubmit_StoreFailureIsConnectivity(t *testing.T) {
	db := docstore.NewFaulty(docstore.NewMemory("test"))
	db.FailOn(docstore.OpInsertMany, "", errors.New("connection reset"))
	store := newStore(db, nil)

	_, err := store.Submit(context.Background(), suppliesRequest("Beta", "EPSA", 1))
	if !apperrors.IsConnectivity(err) {
		t.Fatalf("error = %v, want connectivity", err)
	}
}

func TestReadAll_MergesBothWorkflows(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("test")
	store := newStore(db, nil)

	if _, err := store.Submit(ctx, adminRequest("Acme", "CSA-BH", str(types.AnswerFully), str(types.AnswerNot))); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Submit(ctx, suppliesRequest("Beta", "EPSA", 3)); err != nil {
		t.Fatal(err)
	}

	all, err := store.ReadAll(ctx, nil)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("merged %d records, want 5", len(all))
	}
	origins := map[types.Origin]int{}
	for _, r := range all {
		origins[r.Origin]++
		want := types.OriginAdministration
		if r.Supplier == "Beta" {
			want = types.OriginSupplies
		}
		if r.Origin != want {
			t.Errorf("record %+v tagged %s", r, r.Origin)
		}
	}
	if origins[types.OriginAdministration] != 2 || origins[types.OriginSupplies] != 3 {
		t.Errorf("origins = %v", origins)
	}

	docs, _ := db.Collection(types.CollectionSupplies).Find(ctx, nil)
	for _, d := range docs {
		if _, ok := d[docstore.IDField]; ok {
			t.Error("store identifier leaked")
		}
		if _, ok := d[types.FieldOrigin]; ok {
			t.Error("origin persisted on the record")
		}
	}

	sup := types.OriginSupplies
	scoped, err := store.ReadAll(ctx, &sup)
	if err != nil || len(scoped) != 3 {
		t.Errorf("scoped ReadAll = %d, %v", len(scoped), err)
	}
}

func TestSubmissions_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newStore(docstore.NewMemory("test"), nil)

	for _, req := range []SubmitRequest{
		adminRequest("Acme", "CSA-BH", str(types.AnswerFully)),
		suppliesRequest("Beta", "EPSA", 2),
		adminRequest("Gama", "ESA", str(types.AnswerFully), str(types.AnswerFully)),
	} {
		if _, err := store.Submit(ctx, req); err != nil {
			t.Fatal(err)
		}
	}

	subs, err := store.Submissions(ctx, nil)
	if err != nil {
		t.Fatalf("Submissions: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d submissions", len(subs))
	}
	if subs[0].Key.Supplier != "Gama" || subs[2].Key.Supplier != "Acme" {
		t.Errorf("order = %v, %v, %v", subs[0].Key, subs[1].Key, subs[2].Key)
	}
	if subs[1].Records != 2 || subs[1].Key.Origin != types.OriginSupplies {
		t.Errorf("beta summary = %+v", subs[1])
	}
}

func TestFind_ByKey(t *testing.T) {
	ctx := context.Background()
	store := newStore(docstore.NewMemory("test"), nil)
	if _, err := store.Submit(ctx, adminRequest("Acme", "CSA-BH", str(types.AnswerFully), str(types.AnswerNot))); err != nil {
		t.Fatal(err)
	}

	recs, err := store.Find(ctx, types.SubmissionKey{Supplier: "Acme", Unit: "CSA-BH", Period: "01/11/2025"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(recs) != 2 || recs[0].Origin != types.OriginAdministration {
		t.Errorf("records = %+v", recs)
	}
	recs, _ = store.Find(ctx, types.SubmissionKey{Supplier: "Acme", Unit: "CSA-BH", Period: "30/11/2025", Origin: types.OriginSupplies})
	if len(recs) != 0 {
		t.Errorf("supplies scope returned %d records", len(recs))
	}
}

func TestDeleteBy_RemovesRecordsAndArtifact(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("test")
	files := storage.NewMemoryRepository()
	store := newStore(db, files)
	if _, err := store.Submit(ctx, adminRequest("Acme", "CSA-BH", str(types.AnswerFully), str(types.AnswerNot))); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Submit(ctx, adminRequest("Acme", "ESA", str(types.AnswerFully))); err != nil {
		t.Fatal(err)
	}

	res, err := store.DeleteBy(ctx, DeleteFilter{Supplier: "Acme", Unit: "CSA-BH", Period: "30/11/2025"}, types.OriginAdministration)
	if err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}
	if res.Deleted != 2 || len(res.Artifacts) != 1 || res.Artifacts[0] != "Acme_NOV-25_CSABH.xlsx" {
		t.Errorf("result = %+v", res)
	}
	if res.Files == nil || res.Files.Succeeded != 1 || res.Files.Failed != 0 {
		t.Errorf("files = %+v", res.Files)
	}
	if files.Has(storage.DefaultFolders().Administration, "Acme_NOV-25_CSABH.xlsx") {
		t.Error("artifact still present")
	}
	if !files.Has(storage.DefaultFolders().Administration, "Acme_NOV-25_ESA.xlsx") {
		t.Error("unrelated artifact removed")
	}
	if n := count(t, db, types.CollectionAdministration); n != 1 {
		t.Errorf("remaining records = %d", n)
	}
}

func TestDeleteBy_ArtifactFailureIsPartialSuccess(t *testing.T) {
	ctx := context.Background()
	files := storage.NewMemoryRepository()
	files.Fail(storage.OpDelete, "Beta_OUT-25_EPSA_SUP.xlsx", errors.New("locked"))
	store := newStore(docstore.NewMemory("test"), files)
	if _, err := store.Submit(ctx, suppliesRequest("Beta", "EPSA", 2)); err != nil {
		t.Fatal(err)
	}

	res, err := store.DeleteBy(ctx, DeleteFilter{Supplier: "Beta", Unit: "EPSA", Period: "31/10/2025"}, types.OriginSupplies)
	if err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}
	if res.Deleted != 2 || res.Files == nil || res.Files.Failed != 1 {
		t.Fatalf("result = %+v", res)
	}
	if !strings.Contains(res.Message, "0 succeeded, 1 failed") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestDeleteBy_SupplierOnlyRemovesEveryArtifact(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("test")
	files := storage.NewMemoryRepository()
	store := newStore(db, files)
	for _, unit := range []string{"CSA-BH", "CSA-CT"} {
		if _, err := store.Submit(ctx, adminRequest("Acme", unit, str(types.AnswerFully))); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Submit(ctx, adminRequest("Gama", "CSA-BH", str(types.AnswerFully))); err != nil {
		t.Fatal(err)
	}

	res, err := store.DeleteBy(ctx, DeleteFilter{Supplier: "Acme"}, types.OriginAdministration)
	if err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}
	if res.Deleted != 2 || len(res.Artifacts) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if !strings.Contains(res.Message, "2 succeeded, 0 failed") {
		t.Errorf("message = %q", res.Message)
	}
	folder := storage.DefaultFolders().Administration
	for _, name := range []string{"Acme_NOV-25_CSABH.xlsx", "Acme_NOV-25_CSACT.xlsx"} {
		if files.Has(folder, name) {
			t.Errorf("%s still present", name)
		}
	}
	if !files.Has(folder, "Gama_NOV-25_CSABH.xlsx") {
		t.Error("artifact of another supplier removed")
	}
}

func TestDeleteBy_ReportsMissingArtifact(t *testing.T) {
	ctx := context.Background()
	files := storage.NewMemoryRepository()
	store := newStore(docstore.NewMemory("test"), files)
	if _, err := store.Submit(ctx, suppliesRequest("Beta", "EPSA", 1)); err != nil {
		t.Fatal(err)
	}
	if err := files.Delete(ctx, "Beta_OUT-25_EPSA_SUP.xlsx", storage.DefaultFolders().Supplies); err != nil {
		t.Fatal(err)
	}

	res, err := store.DeleteBy(ctx, DeleteFilter{Supplier: "Beta", Unit: "EPSA", Period: "31/10/2025"}, types.OriginSupplies)
	if err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}
	if res.Files != nil || len(res.Missing) != 1 || res.Missing[0] != "Beta_OUT-25_EPSA_SUP.xlsx" {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(res.Message, "1 artifact(s) not present") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestLookups_AcceptPaddedNames(t *testing.T) {
	ctx := context.Background()
	files := storage.NewMemoryRepository()
	store := newStore(docstore.NewMemory("test"), files)
	if _, err := store.Submit(ctx, adminRequest("Acme ", " CSA-BH", str(types.AnswerFully))); err != nil {
		t.Fatal(err)
	}

	recs, err := store.Find(ctx, types.SubmissionKey{Supplier: "Acme ", Unit: " CSA-BH", Period: "30/11/2025"})
	if err != nil || len(recs) != 1 {
		t.Fatalf("Find = %d records, %v", len(recs), err)
	}
	if recs[0].Supplier != "Acme" || recs[0].Unit != "CSA-BH" {
		t.Errorf("stored names not trimmed: %+v", recs[0])
	}

	res, err := store.DeleteBy(ctx, DeleteFilter{Supplier: "Acme ", Unit: " CSA-BH", Period: "30/11/2025"}, types.OriginAdministration)
	if err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}
	if res.Deleted != 1 || res.Files == nil || res.Files.Succeeded != 1 {
		t.Errorf("result = %+v", res)
	}
	if files.Has(storage.DefaultFolders().Administration, "Acme_NOV-25_CSABH.xlsx") {
		t.Error("artifact still present")
	}
}

func TestDeleteBy_Errors(t *testing.T) {
	ctx := context.Background()
	store := newStore(docstore.NewMemory("test"), nil)

	if _, err := store.DeleteBy(ctx, DeleteFilter{}, types.OriginSupplies); !apperrors.IsValidation(err) {
		t.Errorf("empty filter: %v", err)
	}
	if _, err := store.DeleteBy(ctx, DeleteFilter{Supplier: "Nobody"}, types.OriginSupplies); !apperrors.IsNotFound(err) {
		t.Errorf("no match: %v", err)
	}
}

func TestPurgeCollection_CountsFileFailures(t *testing.T) {
	ctx := context.Background()
	db := docstore.NewMemory("test")
	files := storage.NewMemoryRepository()
	store := newStore(db, files)
	if _, err := store.Submit(ctx, suppliesRequest("Beta", "EPSA", 2)); err != nil {
		t.Fatal(err)
	}

	folder := storage.DefaultFolders().Supplies
	for i := 0; i < 4; i++ {
		if err := files.Upload(ctx, fmt.Sprintf("extra%d.xlsx", i), folder, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	files.Fail(storage.OpDelete, "extra1.xlsx", errors.New("locked"))
	files.Fail(storage.OpDelete, "extra3.xlsx", errors.New("locked"))

	res, err := store.PurgeCollection(ctx, types.OriginSupplies)
	if err != nil {
		t.Fatalf("PurgeCollection: %v", err)
	}
	if !res.Purged || res.Deleted != 2 {
		t.Errorf("result = %+v", res)
	}
	if res.Files == nil || res.Files.Total != 5 || res.Files.Succeeded != 3 || res.Files.Failed != 2 {
		t.Fatalf("files = %+v", res.Files)
	}
	if !strings.Contains(res.Message, "3 succeeded, 2 failed") {
		t.Errorf("message = %q", res.Message)
	}
	if !apperrors.IsPartialFailure(res.Files.Err()) {
		t.Error("file report should be a partial failure")
	}
	if n := count(t, db, types.CollectionSupplies); n != 0 {
		t.Errorf("records left = %d", n)
	}
}

func TestPurgeCollection_AlreadyEmpty(t *testing.T) {
	files := storage.NewMemoryRepository()
	folder := storage.DefaultFolders().Administration
	_ = files.Upload(context.Background(), "keep.xlsx", folder, []byte("x"))
	store := newStore(docstore.NewMemory("test"), files)

	res, err := store.PurgeCollection(context.Background(), types.OriginAdministration)
	if err != nil {
		t.Fatalf("PurgeCollection: %v", err)
	}
	if res.Purged || !strings.Contains(res.Message, "already empty") {
		t.Errorf("result = %+v", res)
	}
	if !files.Has(folder, "keep.xlsx") {
		t.Error("files touched although nothing was purged")
	}
}
