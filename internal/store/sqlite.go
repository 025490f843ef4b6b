package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// RunRecord is one finished run in the history table.
type RunRecord struct {
	ID        string    `json:"id"`
	Seed      string    `json:"seed"`
	Years     int       `json:"years"`
	Ending    string    `json:"ending"`
	NetWorth  float64   `json:"netWorth"`
	CreatedAt time.Time `json:"createdAt"`
}

// RunRepo keeps the history of finished runs in SQLite.
type RunRepo struct {
	db *sql.DB
}

// OpenRunRepo opens (creating if needed) the run history database.
func OpenRunRepo(dbPath string) (*RunRepo, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed TEXT NOT NULL,
		years INTEGER NOT NULL,
		ending TEXT NOT NULL,
		net_worth REAL NOT NULL,
		created_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &RunRepo{db: db}, nil
}

// Add records one finished run.
func (r *RunRepo) Add(ctx context.Context, rec RunRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, seed, years, ending, net_worth, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.Years, rec.Ending, rec.NetWorth, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (r *RunRepo) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seed, years, ending, net_worth, created_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	out := []RunRecord{}
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.Years, &rec.Ending, &rec.NetWorth, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (r *RunRepo) Close() error {
	return r.db.Close()
}
