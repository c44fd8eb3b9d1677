// Package storage persists the history of match runs.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tripletmatch/internal/models"
)

// Storage handles persistence of match runs and their emitted groups
type Storage struct {
	db     *sql.DB
	dbPath string
}

// NewStorage creates a new Storage
func NewStorage(dbPath string) (*Storage, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Storage{db: db, dbPath: dbPath}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// init creates the database schema
func (s *Storage) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS match_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_dir TEXT NOT NULL,
		folder1 TEXT NOT NULL,
		folder2 TEXT NOT NULL,
		dest_dir TEXT NOT NULL,
		matched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_sources INTEGER NOT NULL,
		total_matches INTEGER NOT NULL,
		total_skipped INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS match_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES match_runs(id),
		group_index INTEGER NOT NULL,
		identifier TEXT NOT NULL,
		source_path TEXT NOT NULL,
		folder1_path TEXT NOT NULL,
		folder2_path TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_match_groups_run_id ON match_groups(run_id);
	CREATE INDEX IF NOT EXISTS idx_match_groups_identifier ON match_groups(identifier);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.db.Exec(`INSERT OR REPLACE INTO schema_version (version) VALUES (1)`)

	return nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// RecordRun stores a completed match run and its groups, returning the run ID.
func (s *Storage) RecordRun(rec *models.RunRecord, groups []*models.MatchGroup) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO match_runs (source_dir, folder1, folder2, dest_dir, total_sources, total_matches, total_skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.SourceDir, rec.Folder1, rec.Folder2, rec.DestDir, rec.TotalSources, rec.TotalMatches, rec.TotalSkipped)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO match_groups (run_id, group_index, identifier, source_path, folder1_path, folder2_path)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, g := range groups {
		if _, err := stmt.Exec(runID, g.Index, g.Identifier, g.SourcePath, g.Folder1Path, g.Folder2Path); err != nil {
			return 0, fmt.Errorf("failed to insert group %d: %w", g.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return runID, nil
}

// ListRuns returns all recorded runs, newest first.
func (s *Storage) ListRuns() ([]*models.RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, source_dir, folder1, folder2, dest_dir, matched_at, total_sources, total_matches, total_skipped
		FROM match_runs
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunRecord
	for rows.Next() {
		rec := &models.RunRecord{}
		var matchedAt string
		err := rows.Scan(
			&rec.ID,
			&rec.SourceDir,
			&rec.Folder1,
			&rec.Folder2,
			&rec.DestDir,
			&matchedAt,
			&rec.TotalSources,
			&rec.TotalMatches,
			&rec.TotalSkipped,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec.MatchedAt, _ = time.Parse("2006-01-02 15:04:05", matchedAt)
		runs = append(runs, rec)
	}

	return runs, nil
}

// GroupsForRun returns the groups emitted by one run, in group order.
func (s *Storage) GroupsForRun(runID int64) ([]*models.MatchGroup, error) {
	rows, err := s.db.Query(`
		SELECT group_index, identifier, source_path, folder1_path, folder2_path
		FROM match_groups
		WHERE run_id = ?
		ORDER BY group_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.MatchGroup
	for rows.Next() {
		g := &models.MatchGroup{}
		err := rows.Scan(&g.Index, &g.Identifier, &g.SourcePath, &g.Folder1Path, &g.Folder2Path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, nil
}
