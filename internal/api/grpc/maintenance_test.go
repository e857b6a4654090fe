package grpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/avaliafor/avaliafor/internal/backup"
	"github.com/avaliafor/avaliafor/internal/docstore"
	"github.com/avaliafor/avaliafor/internal/evaluation"
	"github.com/avaliafor/avaliafor/internal/logger"
	"github.com/avaliafor/avaliafor/internal/maintenance"
	"github.com/avaliafor/avaliafor/internal/reference"
	"github.com/avaliafor/avaliafor/internal/storage"
	"github.com/avaliafor/avaliafor/pkg/types"
)

func startServer(t *testing.T) (*MaintenanceServiceClient, *maintenance.Service) {
	t.Helper()
	log := logger.Nop()
	db := docstore.NewMemory("test")
	files := storage.NewMemoryRepository()
	evals := evaluation.NewStore(db, files, evaluation.Options{}, log)
	catalog := reference.NewCatalog(reference.NewUnitStore(db, log), reference.NewSupplierStore(db, log),
		reference.NewQuestionStore(db, log), log)
	svc := maintenance.NewService(evals, catalog, backup.NewEngine(db, log), files, maintenance.Config{}, log)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(log)))
	RegisterMaintenanceServiceServer(srv, NewMaintenanceServer(svc, log))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewMaintenanceServiceClient(conn), svc
}

func submit(t *testing.T, svc *maintenance.Service) {
	t.Helper()
	answer := types.AnswerFully
	_, err := svc.Evaluations.Submit(context.Background(), evaluation.SubmitRequest{
		Origin:   types.OriginSupplies,
		Unit:     "EPSA",
		Period:   "31/10/2025",
		Supplier: "Beta",
		Answers: []evaluation.Answer{
			{Category: types.CategoryDocumentation, Question: "Alvará em dia?", Answer: &answer},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestListSubmissions(t *testing.T) {
	client, svc := startServer(t)
	submit(t, svc)

	resp, err := client.ListSubmissions(context.Background(), mustStruct(t, map[string]interface{}{"origin": "SUP"}))
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	list := resp.GetFields()["submissions"].GetListValue().GetValues()
	if len(list) != 1 {
		t.Fatalf("submissions = %v", list)
	}
	row := list[0].GetStructValue().GetFields()
	if row["artifact"].GetStringValue() != "Beta_OUT-25_EPSA_SUP.xlsx" || !row["artifact_exists"].GetBoolValue() {
		t.Errorf("row = %v", row)
	}

	_, err = client.ListSubmissions(context.Background(), mustStruct(t, map[string]interface{}{"origin": "nope"}))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("bad origin code = %v", status.Code(err))
	}
}

func TestBackup(t *testing.T) {
	client, svc := startServer(t)
	submit(t, svc)

	resp, err := client.Backup(context.Background(), mustStruct(t, map[string]interface{}{"compressed": true}))
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	f := resp.GetFields()
	data, err := base64.StdEncoding.DecodeString(f["data"].GetStringValue())
	if err != nil {
		t.Fatal(err)
	}
	if int(f["bytes"].GetNumberValue()) != len(data) {
		t.Errorf("bytes = %v, data = %d", f["bytes"].GetNumberValue(), len(data))
	}
	snap, err := backup.DecodeNamed(f["name"].GetStringValue(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode backup: %v", err)
	}
	if len(snap.Collections[types.CollectionSupplies]) != 1 {
		t.Errorf("supplies = %v", snap.Collections[types.CollectionSupplies])
	}
}

func TestRegenerate(t *testing.T) {
	client, svc := startServer(t)
	submit(t, svc)

	req := map[string]interface{}{"supplier": "Beta", "unit": "EPSA", "period": "31/10/2025", "origin": "SUPRIMENTOS"}
	resp, err := client.Regenerate(context.Background(), mustStruct(t, req))
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	f := resp.GetFields()
	if f["name"].GetStringValue() != "Beta_OUT-25_EPSA_SUP.xlsx" || !f["uploaded"].GetBoolValue() {
		t.Errorf("response = %v", f)
	}

	req["supplier"] = "Gama"
	if _, err := client.Regenerate(context.Background(), mustStruct(t, req)); status.Code(err) != codes.NotFound {
		t.Errorf("missing submission code = %v", status.Code(err))
	}
	delete(req, "origin")
	if _, err := client.Regenerate(context.Background(), mustStruct(t, req)); status.Code(err) != codes.InvalidArgument {
		t.Errorf("missing origin code = %v", status.Code(err))
	}
}
