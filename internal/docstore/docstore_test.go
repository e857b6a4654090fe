package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
)

// backends returns every in-process implementation so the same behaviour is
// checked against each.
func backends(t *testing.T) map[string]Database {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), "test")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close(context.Background()) })
	return map[string]Database{
		"memory": NewMemory("test"),
		"sqlite": sqlite,
	}
}

func TestCollection_InsertFindStripsID(t *testing.T) {
	ctx := context.Background()
	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			coll := db.Collection("fornecedores")
			err := coll.InsertMany(ctx, []Document{
				{"fornecedor": "Acme", "unidades": []string{"CSA-BH", "CSA-CT"}},
				{"fornecedor": "Beta", "unidades": []string{}},
				{"fornecedor": "Gama", "unidades": []string{"CSA-BH"}, IDField: "legacy"},
			})
			if err != nil {
				t.Fatalf("InsertMany: %v", err)
			}

			docs, err := coll.Find(ctx, nil)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if len(docs) != 3 {
				t.Fatalf("got %d docs, want 3", len(docs))
			}
			for _, d := range docs {
				if _, ok := d[IDField]; ok {
					t.Errorf("document still carries %s: %v", IDField, d)
				}
			}
			if String(docs[0], "fornecedor") != "Acme" || String(docs[2], "fornecedor") != "Gama" {
				t.Errorf("insertion order not preserved: %v", docs)
			}
			if got := Strings(docs[0], "unidades"); len(got) != 2 || got[1] != "CSA-CT" {
				t.Errorf("unidades = %v", got)
			}
		})
	}
}

func TestCollection_ArrayMembershipFilter(t *testing.T) {
	ctx := context.Background()
	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			coll := db.Collection("fornecedores")
			_ = coll.InsertMany(ctx, []Document{
				{"fornecedor": "Acme", "unidades": []string{"CSA-BH", "CSA-CT"}},
				{"fornecedor": "Beta", "unidades": []string{"EPSA"}},
			})

			docs, err := coll.Find(ctx, Filter{"unidades": "CSA-CT"})
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if len(docs) != 1 || String(docs[0], "fornecedor") != "Acme" {
				t.Errorf("membership filter returned %v", docs)
			}
			n, err := coll.Count(ctx, Filter{"unidades": "ILALI"})
			if err != nil || n != 0 {
				t.Errorf("Count = %d, %v", n, err)
			}
		})
	}
}

func TestCollection_UpdateOneUpsert(t *testing.T) {
	ctx := context.Background()
	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			coll := db.Collection("unidades")

			ok, err := coll.UpdateOne(ctx, Filter{"unidade": "ESA"}, Document{"ordem": 3}, false)
			if err != nil || ok {
				t.Fatalf("update without upsert on empty collection = %v, %v", ok, err)
			}
			ok, err = coll.UpdateOne(ctx, Filter{"unidade": "ESA"}, Document{"ordem": 3}, true)
			if err != nil || !ok {
				t.Fatalf("upsert = %v, %v", ok, err)
			}
			ok, err = coll.UpdateOne(ctx, Filter{"unidade": "ESA"}, Document{"ordem": 7}, true)
			if err != nil || !ok {
				t.Fatalf("second upsert = %v, %v", ok, err)
			}

			docs, _ := coll.Find(ctx, nil)
			if len(docs) != 1 {
				t.Fatalf("upsert duplicated the document: %v", docs)
			}
			if Int64(docs[0], "ordem") != 7 {
				t.Errorf("ordem = %v", docs[0]["ordem"])
			}
		})
	}
}

func TestCollection_DeleteMany(t *testing.T) {
	ctx := context.Background()
	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			coll := db.Collection("avaliacoes")
			_ = coll.InsertMany(ctx, []Document{
				{"Fornecedor": "Acme", "Unidade": "CSA-BH"},
				{"Fornecedor": "Acme", "Unidade": "CSA-CT"},
				{"Fornecedor": "Beta", "Unidade": "CSA-BH"},
			})
			other := db.Collection("avaliacoes_adm")
			_ = other.InsertMany(ctx, []Document{{"Fornecedor": "Acme"}})

			n, err := coll.DeleteMany(ctx, Filter{"Fornecedor": "Acme"})
			if err != nil || n != 2 {
				t.Fatalf("DeleteMany = %d, %v", n, err)
			}
			n, err = coll.DeleteMany(ctx, nil)
			if err != nil || n != 1 {
				t.Fatalf("DeleteMany(all) = %d, %v", n, err)
			}
			if c, _ := other.Count(ctx, nil); c != 1 {
				t.Errorf("other collection affected: count=%d", c)
			}
		})
	}
}

func TestManager_MemoizesHandle(t *testing.T) {
	var opens int32
	m := NewManagerWithOpener(func(ctx context.Context) (Database, error) {
		atomic.AddInt32(&opens, 1)
		return NewMemory("x"), nil
	})

	db1, err := m.Database(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	db2, _ := m.Database(context.Background())
	if db1 != db2 {
		t.Error("expected the same handle")
	}
	if atomic.LoadInt32(&opens) != 1 {
		t.Errorf("opener called %d times", opens)
	}
}

func TestManager_ConfigurationErrorIsFatal(t *testing.T) {
	m := NewManager(Options{Driver: "mongo", Name: "avaliacao_fornecedores"})
	_, err := m.Database(context.Background())
	if !apperrors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	_, err2 := m.Database(context.Background())
	if err2 != err {
		t.Error("configuration error should be memoized")
	}
}

func TestManager_ConnectivityErrorIsRetried(t *testing.T) {
	var opens int32
	m := NewManagerWithOpener(func(ctx context.Context) (Database, error) {
		if atomic.AddInt32(&opens, 1) == 1 {
			return nil, apperrors.NewConnectivityError(apperrors.CodeStoreUnavailable, "down", nil)
		}
		return NewMemory("x"), nil
	})

	if _, err := m.Database(context.Background()); !apperrors.IsConnectivity(err) {
		t.Fatalf("expected connectivity error, got %v", err)
	}
	if _, err := m.Database(context.Background()); err != nil {
		t.Fatalf("second attempt should succeed: %v", err)
	}
}

func TestManager_CollectionsReconnect(t *testing.T) {
	var opens int32
	m := NewManagerWithOpener(func(ctx context.Context) (Database, error) {
		if atomic.AddInt32(&opens, 1) == 1 {
			return nil, apperrors.NewConnectivityError(apperrors.CodeStoreUnavailable, "down", nil)
		}
		return NewMemory("x"), nil
	})
	ctx := context.Background()
	coll := m.Collection("unidades")

	if err := coll.InsertMany(ctx, []Document{{"nome": "EPSA"}}); !apperrors.IsConnectivity(err) {
		t.Fatalf("expected connectivity error while down, got %v", err)
	}
	if err := coll.InsertMany(ctx, []Document{{"nome": "EPSA"}}); err != nil {
		t.Fatalf("InsertMany after recovery: %v", err)
	}
	if n, err := m.Collection("unidades").Count(ctx, nil); err != nil || n != 1 {
		t.Errorf("Count = %d, %v", n, err)
	}
	if err := m.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if m.Name() != "x" {
		t.Errorf("Name = %q", m.Name())
	}
}

func TestClassify(t *testing.T) {
	raw := errors.New("socket closed")
	err := Classify(raw, "find", "perguntas")
	if !apperrors.IsConnectivity(err) || !errors.Is(err, raw) {
		t.Errorf("Classify = %v", err)
	}
	if Classify(context.Canceled, "find", "x") != context.Canceled {
		t.Error("context errors should pass through")
	}
	nf := apperrors.NewNotFoundError(apperrors.CodeNoRecords, "none")
	if Classify(nf, "find", "x") != error(nf) {
		t.Error("classified errors should pass through")
	}
}

func TestFaulty(t *testing.T) {
	ctx := context.Background()
	f := NewFaulty(NewMemory("x"))
	boom := errors.New("boom")
	f.FailOn(OpInsertMany, "perguntas", boom)

	if err := f.Collection("perguntas").InsertMany(ctx, []Document{{"a": 1}}); err != boom {
		t.Errorf("expected injected failure, got %v", err)
	}
	if err := f.Collection("unidades").InsertMany(ctx, []Document{{"a": 1}}); err != nil {
		t.Errorf("other collection should work: %v", err)
	}
	f.Reset()
	if err := f.Collection("perguntas").InsertMany(ctx, []Document{{"a": 1}}); err != nil {
		t.Errorf("after reset: %v", err)
	}
}
