package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/paperbatch/paperbatch/internal/paper"
)

func testPaper() *paper.Paper {
	return &paper.Paper{
		SSID:            "ss-1",
		ArxivID:         "2401.00001",
		PageID:          "page-1",
		Title:           "Attention Is All You Need",
		Journal:         "arXiv",
		PrimaryCategory: "cs.CL",
		URL:             "http://arxiv.org/pdf/2401.00001",
		PublicationDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		CitationCount:   10,
		Summary:         paper.Summary{Overview: "An overview."},
	}
}

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAddAndHas(t *testing.T) {
	a := openTestArchive(t)

	ok, err := a.Has("ss-1")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if ok {
		t.Error("Has = true on empty archive")
	}

	if err := a.Add(testPaper()); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ok, err = a.Has("ss-1")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !ok {
		t.Error("Has = false after Add")
	}
}

func TestAddReplaces(t *testing.T) {
	a := openTestArchive(t)

	p := testPaper()
	if err := a.Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}

	p.CitationCount = 99
	if err := a.Add(p); err != nil {
		t.Fatalf("Add (replace): %v", err)
	}

	n, err := a.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1 after replace", n)
	}

	records, err := a.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if records[0].CitationCount != 99 {
		t.Errorf("CitationCount = %d, want replaced value", records[0].CitationCount)
	}
}

func TestRecentRoundTrip(t *testing.T) {
	a := openTestArchive(t)

	if err := a.Add(testPaper()); err != nil {
		t.Fatalf("Add: %v", err)
	}

	records, err := a.Recent(5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.SSID != "ss-1" || rec.Title != "Attention Is All You Need" {
		t.Errorf("record = %+v", rec)
	}
	if rec.PublicationDate != "2024-01-02" {
		t.Errorf("PublicationDate = %q", rec.PublicationDate)
	}
	if rec.Summary.Overview != "An overview." {
		t.Errorf("Summary.Overview = %q", rec.Summary.Overview)
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "archive.db")
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	a.Close()
}
