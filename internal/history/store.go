// Package history persists audit-run summaries to SQLite so repeated audits
// of an evolving IVR estate can be compared over time.
package history

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// Run is one persisted audit run.
type Run struct {
	ID        string
	Source    string // file or directory audited
	CreatedAt time.Time
	Summary   ivr.Summary
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL,
	scripts_attempted INTEGER NOT NULL,
	scripts_succeeded INTEGER NOT NULL,
	scripts_failed INTEGER NOT NULL,
	unique_call_variables INTEGER NOT NULL,
	unique_local_variables INTEGER NOT NULL,
	unique_skills INTEGER NOT NULL,
	unique_prompts INTEGER NOT NULL
)`

const createFailuresTable = `
CREATE TABLE IF NOT EXISTS run_failures (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	script_name TEXT NOT NULL,
	error TEXT NOT NULL,
	byte_offset INTEGER NOT NULL
)`

func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	if _, err := tx.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	for _, ddl := range []string{createRunsTable, createFailuresTable} {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create history schema: %w", err)
		}
	}
	return tx.Commit()
}

// SaveRun stores a run summary plus its failure rows and returns the new
// run's ID.
func (s *Store) SaveRun(source string, result *ivr.BatchResult) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = sq.Insert("runs").
		Columns(
			"id", "source", "created_at",
			"scripts_attempted", "scripts_succeeded", "scripts_failed",
			"unique_call_variables", "unique_local_variables", "unique_skills", "unique_prompts",
		).
		Values(
			runID,
			source,
			time.Now().UTC().Format(time.RFC3339),
			result.Summary.ScriptsAttempted,
			result.Summary.ScriptsSucceeded,
			result.Summary.ScriptsFailed,
			result.Summary.UniqueCallVariables,
			result.Summary.UniqueLocalVariables,
			result.Summary.UniqueSkills,
			result.Summary.UniquePrompts,
		).
		RunWith(tx).
		Exec()
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, f := range result.Failures {
		_, err = sq.Insert("run_failures").
			Columns("run_id", "script_name", "error", "byte_offset").
			Values(runID, f.ScriptName, f.Error, f.Offset).
			RunWith(tx).
			Exec()
		if err != nil {
			return "", fmt.Errorf("failed to insert failure row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := sq.Select(
		"id", "source", "created_at",
		"scripts_attempted", "scripts_succeeded", "scripts_failed",
		"unique_call_variables", "unique_local_variables", "unique_skills", "unique_prompts",
	).
		From("runs").
		OrderBy("created_at DESC, id").
		Limit(uint64(limit)).
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(
			&run.ID, &run.Source, &createdAt,
			&run.Summary.ScriptsAttempted, &run.Summary.ScriptsSucceeded, &run.Summary.ScriptsFailed,
			&run.Summary.UniqueCallVariables, &run.Summary.UniqueLocalVariables,
			&run.Summary.UniqueSkills, &run.Summary.UniquePrompts,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunFailures returns the failure rows stored for one run.
func (s *Store) RunFailures(runID string) ([]ivr.FailureRecord, error) {
	rows, err := sq.Select("script_name", "error", "byte_offset").
		From("run_failures").
		Where(sq.Eq{"run_id": runID}).
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	var failures []ivr.FailureRecord
	for rows.Next() {
		var f ivr.FailureRecord
		if err := rows.Scan(&f.ScriptName, &f.Error, &f.Offset); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}
