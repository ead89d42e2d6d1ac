package repo

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"
)

type rowStub struct {
	values []any
}

func (r rowStub) Scan(dest ...any) error {
	for k, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[k].(int64)
		case *string:
			*p = r.values[k].(string)
		case *[]byte:
			if r.values[k] != nil {
				*p = r.values[k].([]byte)
			}
		case *time.Time:
			*p = r.values[k].(time.Time)
		}
	}
	return nil
}

func TestScanProject(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	p, err := scanProject(rowStub{values: []any{
		int64(7), "portal", "frame", []byte(`{"nodes":[]}`), nil, now, now,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 7 || p.Kind != KindFrame || string(p.Document) != `{"nodes":[]}` {
		t.Fatalf("project = %+v", p)
	}
	if p.Result != nil {
		t.Fatalf("result = %s, want none", p.Result)
	}
}

type resultStub int64

func (r resultStub) LastInsertId() (int64, error) { return 0, nil }
func (r resultStub) RowsAffected() (int64, error) { return int64(r), nil }

func TestExpectRow(t *testing.T) {
	if err := expectRow(resultStub(0)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := expectRow(resultStub(1)); err != nil {
		t.Fatal(err)
	}
}

// TestPostgresRepository runs against a live database when
// GOFRAME_TEST_DATABASE_URL is set
func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("GOFRAME_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("GOFRAME_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	r := NewPostgresRepository(db)
	if err := r.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	id, err := r.CreateProject(ctx, &Project{Name: "test", Kind: KindBeam, Document: json.RawMessage(`{"nodes":[]}`)})
	if err != nil {
		t.Fatal(err)
	}
	defer r.DeleteProject(ctx, id)

	if err := r.SaveResult(ctx, id, json.RawMessage(`{"summary":{}}`)); err != nil {
		t.Fatal(err)
	}
	p, err := r.GetProject(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" || p.Result == nil {
		t.Fatalf("project = %+v", p)
	}
	if err := r.DeleteProject(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetProject(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
