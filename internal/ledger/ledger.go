// Package ledger provides the durable idempotency record of papers and
// authors already ingested into the destination store. The ledger is
// loaded once at process start, mutated in memory during a run, and
// flushed with backup-then-overwrite semantics: the previous on-disk
// snapshot is kept as a last-known-good backup and the new state is
// written via temp file + atomic rename, so a reader never observes a
// half-written file.
package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paperbatch/paperbatch/internal/paper"
)

// DefaultFileName is the ledger file name inside the cache directory.
const DefaultFileName = "ledger.json"

// PaperEntry records one processed (or failed) paper.
type PaperEntry struct {
	Title        string `json:"title"`
	ArxivID      string `json:"arxiv_id"`
	SSID         string `json:"ss_id"`
	PageID       string `json:"page_id"`
	FailedReason string `json:"failed_reason,omitempty"`
}

// AuthorEntry records one persisted author.
type AuthorEntry struct {
	Name   string `json:"name"`
	SSID   string `json:"ss_id"`
	PageID string `json:"page_id"`
}

// Ledger is the in-memory dedup state backed by a single JSON file.
type Ledger struct {
	path string

	Papers       []PaperEntry      `json:"papers"`
	FailedPapers []PaperEntry      `json:"failed_papers"`
	Authors      []AuthorEntry     `json:"authors"`
	AuthorIndex  map[string]string `json:"author_index"`
}

// New creates an empty ledger that will persist to the given path.
func New(path string) *Ledger {
	return &Ledger{
		path:        path,
		AuthorIndex: make(map[string]string),
	}
}

// Load reads the ledger from path. A missing file yields an empty
// ledger; a present but unreadable file is an error, since dedup
// correctness cannot be guaranteed without it.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(path), nil
		}
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	l := New(path)
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("parsing ledger: %w", err)
	}
	if l.AuthorIndex == nil {
		l.AuthorIndex = make(map[string]string)
	}
	l.path = path
	return l, nil
}

// Path returns the primary file path.
func (l *Ledger) Path() string {
	return l.path
}

// BackupPath returns the sibling path holding the previous snapshot.
func (l *Ledger) BackupPath() string {
	ext := filepath.Ext(l.path)
	return strings.TrimSuffix(l.path, ext) + ".org" + ext
}

// PaperEntryFor builds a ledger entry from a paper. A non-empty reason
// marks the entry as failed.
func PaperEntryFor(p *paper.Paper, reason string) PaperEntry {
	return PaperEntry{
		Title:        p.Title,
		ArxivID:      p.ArxivID,
		SSID:         p.SSID,
		PageID:       p.PageID,
		FailedReason: reason,
	}
}

// AuthorEntryFor builds a ledger entry from a persisted author.
func AuthorEntryFor(a paper.Author) AuthorEntry {
	return AuthorEntry{
		Name:   a.Name,
		SSID:   a.SSID,
		PageID: a.PageID,
	}
}

// Exists reports whether a paper with this title has already been
// processed. Matching is case-insensitive and exact; linear scan is
// fine at expected scale.
func (l *Ledger) Exists(title string) bool {
	lower := strings.ToLower(title)
	for _, entry := range l.Papers {
		if strings.ToLower(entry.Title) == lower {
			return true
		}
	}
	return false
}

// ExistsAuthor reports whether the author identifier is known.
func (l *Ledger) ExistsAuthor(ssID string) bool {
	_, ok := l.AuthorIndex[ssID]
	return ok
}

// AuthorPageID resolves an author identifier to its destination-store
// page id.
func (l *Ledger) AuthorPageID(ssID string) (string, bool) {
	pageID, ok := l.AuthorIndex[ssID]
	return pageID, ok
}

// AddPaper appends a successfully persisted paper.
func (l *Ledger) AddPaper(entry PaperEntry) {
	l.Papers = append(l.Papers, entry)
}

// AddFailedPaper appends a terminally failed paper with its reason.
func (l *Ledger) AddFailedPaper(entry PaperEntry) {
	l.FailedPapers = append(l.FailedPapers, entry)
}

// AddAuthor appends a persisted author and updates the identifier index.
func (l *Ledger) AddAuthor(entry AuthorEntry) {
	l.Authors = append(l.Authors, entry)
	l.AuthorIndex[entry.SSID] = entry.PageID
}

// Persist writes the ledger to disk. The current primary file (if any)
// is first copied to the backup path, then the new state is written to
// a temp file in the same directory and renamed over the primary.
func (l *Ledger) Persist() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	if err := copyFile(l.path, l.BackupPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("backing up ledger: %w", err)
	}

	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-ledger-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}

	success = true
	return nil
}

// copyFile copies src to dst. Returns the underlying os.IsNotExist
// error when src is missing so first runs can tolerate it.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
