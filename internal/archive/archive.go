// Package archive keeps a local SQLite archive of every paper the tool
// has persisted, so past runs stay queryable offline.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/paperbatch/paperbatch/internal/paper"
)

// DefaultFileName is the archive file name inside the data directory.
const DefaultFileName = "archive.db"

const schemaDDL = `CREATE TABLE IF NOT EXISTS papers (
  ss_id TEXT PRIMARY KEY,
  arxiv_id TEXT,
  page_id TEXT,
  title TEXT NOT NULL,
  journal TEXT,
  primary_category TEXT,
  url TEXT,
  doi TEXT,
  publication_date TEXT,
  citation_count INTEGER,
  reference_count INTEGER,
  influential_citation_count INTEGER,
  summary_json TEXT,
  archived_at TEXT NOT NULL
)`

const titleIndexDDL = `CREATE INDEX IF NOT EXISTS idx_papers_title ON papers(title)`

// Archive is a SQLite-backed paper archive.
type Archive struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	for _, ddl := range []string{schemaDDL, titleIndexDDL} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing archive schema: %w", err)
		}
	}

	return &Archive{db: db}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Add records a persisted paper, replacing any previous record with
// the same identifier.
func (a *Archive) Add(p *paper.Paper) error {
	summaryJSON, err := json.Marshal(p.Summary)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	_, err = a.db.Exec(`INSERT OR REPLACE INTO papers
		(ss_id, arxiv_id, page_id, title, journal, primary_category, url, doi,
		 publication_date, citation_count, reference_count, influential_citation_count,
		 summary_json, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SSID, p.ArxivID, p.PageID, p.Title, p.Journal, p.PrimaryCategory, p.URL, p.DOI,
		p.PublicationDate.Format("2006-01-02"), p.CitationCount, p.ReferenceCount,
		p.InfluentialCitationCount, string(summaryJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("archiving paper: %w", err)
	}
	return nil
}

// Has reports whether a paper with the identifier is archived.
func (a *Archive) Has(ssID string) (bool, error) {
	var one int
	err := a.db.QueryRow("SELECT 1 FROM papers WHERE ss_id = ?", ssID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying archive: %w", err)
	}
	return true, nil
}

// Count returns the number of archived papers.
func (a *Archive) Count() (int, error) {
	var n int
	if err := a.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting archive: %w", err)
	}
	return n, nil
}

// Record is one archived paper row.
type Record struct {
	SSID            string
	ArxivID         string
	PageID          string
	Title           string
	Journal         string
	PublicationDate string
	CitationCount   int
	Summary         paper.Summary
}

// Recent returns the most recently archived papers, newest first.
func (a *Archive) Recent(limit int) ([]Record, error) {
	rows, err := a.db.Query(`SELECT ss_id, arxiv_id, page_id, title, journal,
		publication_date, citation_count, summary_json
		FROM papers ORDER BY archived_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var summaryJSON string
		if err := rows.Scan(&rec.SSID, &rec.ArxivID, &rec.PageID, &rec.Title,
			&rec.Journal, &rec.PublicationDate, &rec.CitationCount, &summaryJSON); err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		if summaryJSON != "" {
			if err := json.Unmarshal([]byte(summaryJSON), &rec.Summary); err != nil {
				return nil, fmt.Errorf("decoding archived summary: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
