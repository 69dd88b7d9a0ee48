// Package postgres implements the opaque document store: it persists
// the raw bytes of a declared infrastructure document, by name and
// revision, and never the compiled graph. Compiled graph state is
// rebuilt from the stored document on demand, never read back
// directly — the spec's Non-goals forbid persisting compiled graph
// state but explicitly allow round-tripping the declaration itself.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Config describes a Postgres connection for the document store.
type Config struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// Validate checks the configuration is complete enough to connect.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if c.User == "" {
		return fmt.Errorf("postgres user is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("postgres database name is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("postgres port must be between 1 and 65535, got %d", c.Port)
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	return nil
}

// Document is one stored revision of a named infrastructure
// declaration.
type Document struct {
	Name     string    `db:"name"`
	Revision uuid.UUID `db:"revision"`
	Body     []byte    `db:"body"`
}

const schema = `
CREATE TABLE IF NOT EXISTS infrastructure_documents (
	name       TEXT NOT NULL,
	revision   UUID NOT NULL,
	body       BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (name, revision)
)`

// Store is a Postgres-backed opaque document store.
type Store struct {
	db *sqlx.DB
}

// Open connects to Postgres and ensures the document table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to migrate document store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a new revision of a named document, never overwriting a
// prior revision.
func (s *Store) Put(ctx context.Context, name string, body []byte) (uuid.UUID, error) {
	revision := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO infrastructure_documents (name, revision, body) VALUES ($1, $2, $3)`,
		name, revision, body)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to store document %q: %w", name, err)
	}
	return revision, nil
}

// Get returns the body of a specific revision of a named document.
func (s *Store) Get(ctx context.Context, name string, revision uuid.UUID) ([]byte, error) {
	var doc Document
	err := s.db.GetContext(ctx, &doc,
		`SELECT name, revision, body FROM infrastructure_documents WHERE name = $1 AND revision = $2`,
		name, revision)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document %q revision %s not found", name, revision)
		}
		return nil, fmt.Errorf("failed to load document %q: %w", name, err)
	}
	return doc.Body, nil
}

// Latest returns the most recently stored revision (name, revision id
// and body) of a named document.
func (s *Store) Latest(ctx context.Context, name string) (*Document, error) {
	var doc Document
	err := s.db.GetContext(ctx, &doc,
		`SELECT name, revision, body FROM infrastructure_documents
		 WHERE name = $1 ORDER BY created_at DESC LIMIT 1`,
		name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no stored document named %q", name)
		}
		return nil, fmt.Errorf("failed to load latest document %q: %w", name, err)
	}
	return &doc, nil
}

// Revisions lists every stored revision id for a named document, most
// recent first.
func (s *Store) Revisions(ctx context.Context, name string) ([]uuid.UUID, error) {
	var revisions []uuid.UUID
	err := s.db.SelectContext(ctx, &revisions,
		`SELECT revision FROM infrastructure_documents WHERE name = $1 ORDER BY created_at DESC`,
		name)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions for %q: %w", name, err)
	}
	return revisions, nil
}
