package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/ykvlv/lesson-reminder/internal/domain"
)

// SQLiteJournal implements Journal using an embedded SQLite database.
type SQLiteJournal struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies PRAGMAs, runs SQL migrations, and returns a journal.
func OpenSQLite(ctx context.Context, path string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Record appends one delivery row.
func (j *SQLiteJournal) Record(ctx context.Context, d domain.Delivery) error {
	at := d.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO deliveries (job_id, chat_id, kind, status, error, at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		toNullString(d.JobID), d.ChatID, string(d.Kind), d.Status, d.Error, at.UTC().UnixMilli(),
	)
	return err
}

// List returns up to limit most recent deliveries, newest first.
func (j *SQLiteJournal) List(ctx context.Context, limit int) ([]domain.Delivery, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT job_id, chat_id, kind, status, error, at
		FROM deliveries
		ORDER BY at DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Delivery
	for rows.Next() {
		var (
			jobNS  sql.NullString
			chatID int64
			kind   string
			status string
			errMsg string
			atMs   int64
		)
		if err := rows.Scan(&jobNS, &chatID, &kind, &status, &errMsg, &atMs); err != nil {
			return nil, err
		}
		res = append(res, domain.Delivery{
			JobID:  fromNullString(jobNS),
			ChatID: chatID,
			Kind:   domain.DeliveryKind(kind),
			Status: status,
			Error:  errMsg,
			At:     time.UnixMilli(atMs).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
