// Package repo persists analysis projects: an input document and the
// last result computed from it.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned for a project id with no stored row
var ErrNotFound = errors.New("project not found")

// Kind tells which solver a project document is for
type Kind string

const (
	KindBeam  Kind = "beam"
	KindFrame Kind = "frame"
)

// Project is a stored input document with its latest result
type Project struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Kind      Kind            `json:"kind"`
	Document  json.RawMessage `json:"document"`
	Result    json.RawMessage `json:"result,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Repository interface {
	CreateProject(ctx context.Context, p *Project) (int64, error)
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	SaveResult(ctx context.Context, id int64, result json.RawMessage) error
	DeleteProject(ctx context.Context, id int64) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects to the database at dsn and checks the connection
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

const schema = `CREATE TABLE IF NOT EXISTS projects (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	document   JSONB NOT NULL,
	result     JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the projects table when missing
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrating projects: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateProject(ctx context.Context, p *Project) (int64, error) {
	var id int64
	query := "INSERT INTO projects (name, kind, document) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, p.Name, string(p.Kind), []byte(p.Document)).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := "SELECT id, name, kind, document, result, created_at, updated_at FROM projects WHERE id=$1"
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) ListProjects(ctx context.Context) ([]Project, error) {
	query := "SELECT id, name, kind, document, result, created_at, updated_at FROM projects ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SaveResult(ctx context.Context, id int64, result json.RawMessage) error {
	query := "UPDATE projects SET result=$2, updated_at=now() WHERE id=$1"
	res, err := r.db.ExecContext(ctx, query, id, []byte(result))
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *PostgresRepository) DeleteProject(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=$1", id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*Project, error) {
	var (
		p      Project
		kind   string
		doc    []byte
		result []byte
	)
	if err := s.Scan(&p.ID, &p.Name, &kind, &doc, &result, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Kind = Kind(kind)
	p.Document = doc
	if result != nil {
		p.Result = result
	}
	return &p, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
