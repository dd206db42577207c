// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists the declarations of one document in SQLite so they
// can be queried and exported without regenerating.
package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/mdtypes/internal/normalize"
	"github.com/pdiddy/mdtypes/pkg/types"
)

const dbFile = "catalog.db"

// Entry is one cataloged declaration.
type Entry struct {
	Position   int        `json:"position" yaml:"position"`
	Name       string     `json:"name" yaml:"name"`
	Kind       types.Kind `json:"kind" yaml:"kind"`
	Line       int        `json:"line" yaml:"line"`
	Path       string     `json:"path" yaml:"path"`
	Code       string     `json:"code" yaml:"code"`
	References []string   `json:"references" yaml:"references"`
}

// NewEntries pairs unique declarations with their rendered files. Both slices
// are in first-seen order and have the same length.
func NewEntries(decls []types.ExtractedType, files []types.TypeFile) ([]Entry, error) {
	if len(decls) != len(files) {
		return nil, errors.Newf("catalog: %d declarations but %d files", len(decls), len(files))
	}
	entries := make([]Entry, len(decls))
	for i, d := range decls {
		code := normalize.Code(d.Code)
		entries[i] = Entry{
			Position:   i,
			Name:       d.Name,
			Kind:       types.KindOf(code),
			Line:       d.Line,
			Path:       files[i].Path,
			Code:       code,
			References: files[i].References,
		}
	}
	return entries, nil
}

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	log        *zap.Logger
}

// NewStore opens or creates the catalog at cfg.Dir/catalog.db and creates the
// schema if it does not exist.
func NewStore(cfg types.CatalogConfig, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultCatalogDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating catalog directory")
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults, log: log}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS declarations (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			kind TEXT,
			line INTEGER,
			path TEXT NOT NULL,
			code TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS refs (
			from_name TEXT NOT NULL REFERENCES declarations(name) ON DELETE CASCADE,
			to_name TEXT NOT NULL,
			ord INTEGER NOT NULL,
			PRIMARY KEY (from_name, to_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_to_name ON refs(to_name)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// IngestSummary holds counts from a catalog rebuild.
type IngestSummary struct {
	Declarations int
	References   int
}

// Ingest replaces the catalog contents with entries in one transaction.
// source is recorded as the document the entries came from.
func (s *Store) Ingest(ctx context.Context, source string, entries []Entry) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM refs`, `DELETE FROM declarations`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return IngestSummary{}, errors.Wrap(err, "clearing catalog")
		}
	}

	declStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO declarations (name, position, kind, line, path, code) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, errors.Wrap(err, "preparing declaration insert")
	}
	defer declStmt.Close()

	refStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO refs (from_name, to_name, ord) VALUES (?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, errors.Wrap(err, "preparing reference insert")
	}
	defer refStmt.Close()

	var summary IngestSummary
	for _, e := range entries {
		if _, err := declStmt.ExecContext(ctx, e.Name, e.Position, string(e.Kind), e.Line, e.Path, e.Code); err != nil {
			return IngestSummary{}, errors.Wrapf(err, "inserting declaration %s", e.Name)
		}
		summary.Declarations++
	}
	// References go in after every declaration so forward references satisfy
	// the foreign key.
	for _, e := range entries {
		for i, ref := range e.References {
			if _, err := refStmt.ExecContext(ctx, e.Name, ref, i); err != nil {
				return IngestSummary{}, errors.Wrapf(err, "inserting reference %s -> %s", e.Name, ref)
			}
			summary.References++
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('source', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, source,
	); err != nil {
		return IngestSummary{}, errors.Wrap(err, "recording source")
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, errors.Wrap(err, "committing catalog")
	}

	s.log.Info("catalog updated",
		zap.String("source", source),
		zap.Int("declarations", summary.Declarations),
		zap.Int("references", summary.References),
	)
	return summary, nil
}

// Source returns the document recorded by the last Ingest, or "" if none.
func (s *Store) Source(ctx context.Context) (string, error) {
	var source string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'source'`).Scan(&source)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "reading catalog source")
	}
	return source, nil
}
