// Package storage persists compliance reports in a SQLite database.
package storage

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"github.com/citelint/citelint/internal/report"
)

// ErrNotFound is returned when a report ID does not exist in the store.
var ErrNotFound = errors.New("report not found")

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Saved is a stored report with its persistence metadata. Report is
// populated by Get and Save; List returns summaries without it.
type Saved struct {
	ID                string         `json:"id"`
	Document          string         `json:"document"`
	Fingerprint       string         `json:"fingerprint"`
	CreatedAt         time.Time      `json:"created_at"`
	Status            string         `json:"status"`
	TotalCitations    int            `json:"total_citations"`
	TotalReferences   int            `json:"total_references"`
	MatchedCount      int            `json:"matched_count"`
	UnmatchedCount    int            `json:"unmatched_count"`
	YearMismatchCount int            `json:"year_mismatch_count"`
	MatchRate         float64        `json:"match_rate"`
	Report            *report.Report `json:"report,omitempty"`
}

// OpenDB opens or creates the report store at the given path.
func OpenDB(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL,
			document TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			status TEXT NOT NULL,
			total_citations INTEGER NOT NULL,
			total_references INTEGER NOT NULL,
			matched_count INTEGER NOT NULL,
			unmatched_count INTEGER NOT NULL,
			year_mismatch_count INTEGER NOT NULL,
			match_rate REAL NOT NULL,
			report_json TEXT NOT NULL
		);

		-- Index for duplicate-analysis lookups by document content
		CREATE INDEX IF NOT EXISTS idx_reports_fingerprint ON reports(fingerprint);
	`
	_, err := db.Exec(schema)
	return err
}

// Fingerprint returns the hex BLAKE2b-256 digest of the document text,
// used to recognize repeat analyses of identical content.
func Fingerprint(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Save stores a report for the given document and returns its metadata.
// The report ID combines the content fingerprint with the save time.
func (d *DB) Save(document, text string, rep *report.Report) (*Saved, error) {
	data, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	now := time.Now().UTC()
	fp := Fingerprint(text)
	// Nanosecond resolution keeps IDs unique for rapid repeat saves of
	// identical content.
	s := &Saved{
		ID:                fmt.Sprintf("%s-%d", fp[:12], now.UnixNano()),
		Document:          document,
		Fingerprint:       fp,
		CreatedAt:         now,
		Status:            string(rep.Status),
		TotalCitations:    rep.TotalCitations,
		TotalReferences:   rep.TotalReferences,
		MatchedCount:      rep.MatchedCount,
		UnmatchedCount:    rep.UnmatchedCount,
		YearMismatchCount: rep.YearMismatchCount,
		MatchRate:         rep.MatchRate,
		Report:            rep,
	}

	_, err = d.db.Exec(`
		INSERT INTO reports (
			id, fingerprint, document, created_at, status,
			total_citations, total_references, matched_count,
			unmatched_count, year_mismatch_count, match_rate, report_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Fingerprint, s.Document, s.CreatedAt.Unix(), s.Status,
		s.TotalCitations, s.TotalReferences, s.MatchedCount,
		s.UnmatchedCount, s.YearMismatchCount, s.MatchRate, string(data))
	if err != nil {
		return nil, fmt.Errorf("inserting report: %w", err)
	}

	return s, nil
}

const selectReportFields = `id, fingerprint, document, created_at, status,
	total_citations, total_references, matched_count,
	unmatched_count, year_mismatch_count, match_rate`

// Get retrieves a stored report, including its full body.
func (d *DB) Get(id string) (*Saved, error) {
	row := d.db.QueryRow(
		`SELECT `+selectReportFields+`, report_json FROM reports WHERE id = ?`, id)

	var s Saved
	var createdAt int64
	var body string
	err := row.Scan(&s.ID, &s.Fingerprint, &s.Document, &createdAt, &s.Status,
		&s.TotalCitations, &s.TotalReferences, &s.MatchedCount,
		&s.UnmatchedCount, &s.YearMismatchCount, &s.MatchRate, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	s.CreatedAt = time.Unix(createdAt, 0).UTC()
	var rep report.Report
	if err := json.Unmarshal([]byte(body), &rep); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", id, err)
	}
	s.Report = &rep
	return &s, nil
}

// List returns report summaries, newest first, up to limit (0 = all).
func (d *DB) List(limit int) ([]Saved, error) {
	query := `SELECT ` + selectReportFields + ` FROM reports ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// FindByFingerprint returns summaries of earlier analyses of identical
// document content, newest first.
func (d *DB) FindByFingerprint(fp string) ([]Saved, error) {
	rows, err := d.db.Query(
		`SELECT `+selectReportFields+` FROM reports WHERE fingerprint = ? ORDER BY created_at DESC, id DESC`, fp)
	if err != nil {
		return nil, fmt.Errorf("searching reports: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Delete removes a stored report.
func (d *DB) Delete(id string) error {
	res, err := d.db.Exec(`DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func scanSummaries(rows *sql.Rows) ([]Saved, error) {
	var out []Saved
	for rows.Next() {
		var s Saved
		var createdAt int64
		err := rows.Scan(&s.ID, &s.Fingerprint, &s.Document, &createdAt, &s.Status,
			&s.TotalCitations, &s.TotalReferences, &s.MatchedCount,
			&s.UnmatchedCount, &s.YearMismatchCount, &s.MatchRate)
		if err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		s.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
