// Package pipeline orchestrates the per-paper processing run: link,
// dedup, acquire text, extract keywords, summarize, persist. Each item
// succeeds or fails on its own; only ledger I/O aborts a run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/paperbatch/paperbatch/internal/keywords"
	"github.com/paperbatch/paperbatch/internal/ledger"
	"github.com/paperbatch/paperbatch/internal/paper"
)

const (
	// MinSections is the smallest section count worth summarizing.
	// Anything shorter is a stub or a failed extraction.
	MinSections = 4

	// MinKeywordScore is the exclusive frequency-score cutoff for
	// keywords attached to the persisted page.
	MinKeywordScore = 5
)

// Status is the outcome of processing one paper.
type Status int

const (
	// StatusPersisted means the paper reached the knowledge base.
	StatusPersisted Status = iota
	// StatusSkipped means the paper was already in the ledger.
	StatusSkipped
	// StatusFailed means a step failed; Reason says which.
	StatusFailed
)

// ErrLedgerIO marks a ledger persistence failure. Unlike step
// failures, it aborts the whole run: a ledger that cannot be written
// would make every later item unsafe to dedup.
var ErrLedgerIO = errors.New("ledger I/O failure")

// Result reports the outcome for one paper.
type Result struct {
	Title  string
	Status Status
	Reason string
}

// Linker resolves papers against the metadata sources.
type Linker interface {
	UpdateFromArxiv(ctx context.Context, p *paper.Paper, overwrite bool) error
	UpdateFromS2(ctx context.Context, p *paper.Paper, overwrite bool) error
	CollectArxivWindow(ctx context.Context, day time.Time) ([]paper.Paper, error)
}

// TextLoader acquires a paper's sectioned full text.
type TextLoader interface {
	Load(ctx context.Context, source string) ([]paper.Section, error)
}

// Summarizer produces a structured summary on the paper.
type Summarizer interface {
	Summarize(ctx context.Context, p *paper.Paper) error
}

// Archiver records persisted papers locally. Optional.
type Archiver interface {
	Add(p *paper.Paper) error
}

// Pipeline wires the processing steps together.
type Pipeline struct {
	linker     Linker
	loader     TextLoader
	summarizer Summarizer
	pages      PageService
	ledger     *ledger.Ledger
	archive    Archiver

	paperDatabaseID  string
	authorDatabaseID string

	logf func(format string, args ...any)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithArchive attaches a local archive for persisted papers.
func WithArchive(a Archiver) Option {
	return func(p *Pipeline) {
		p.archive = a
	}
}

// WithLogf redirects diagnostic output.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(p *Pipeline) {
		p.logf = logf
	}
}

// New creates a Pipeline.
func New(linker Linker, loader TextLoader, summarizer Summarizer, pages PageService,
	led *ledger.Ledger, paperDB, authorDB string, opts ...Option) *Pipeline {
	p := &Pipeline{
		linker:           linker,
		loader:           loader,
		summarizer:       summarizer,
		pages:            pages,
		ledger:           led,
		paperDatabaseID:  paperDB,
		authorDatabaseID: authorDB,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessOne processes a single paper named by title. pdfSource
// overrides the PDF location when non-empty; otherwise the linked URL
// is used. Metadata from both sources overwrites existing fields.
func (pl *Pipeline) ProcessOne(ctx context.Context, title, pdfSource string) (Result, error) {
	p := &paper.Paper{Title: title}

	// Linking is best-effort here: a paper missing from one source can
	// still be processed on the other's metadata.
	if err := pl.linker.UpdateFromS2(ctx, p, true); err != nil {
		pl.logf("WARNING: failed to collect metadata from Semantic Scholar: %v", err)
	}
	if err := pl.linker.UpdateFromArxiv(ctx, p, true); err != nil {
		pl.logf("WARNING: failed to collect metadata from arXiv: %v", err)
	}

	if pl.ledger.Exists(p.Title) {
		return Result{Title: p.Title, Status: StatusSkipped}, nil
	}

	result, err := pl.process(ctx, p, pdfSource)
	if err != nil {
		return result, err
	}
	if err := pl.ledger.Persist(); err != nil {
		return result, fmt.Errorf("%w: %v", ErrLedgerIO, err)
	}
	return result, nil
}

// RunBatch collects every paper submitted on day and processes each in
// turn. onItem, when non-nil, is called after each paper with the
// running count. The returned results hold one entry per collected
// paper. Only a ledger persistence failure stops the run early.
func (pl *Pipeline) RunBatch(ctx context.Context, day time.Time, onItem func(done, total int, res Result)) ([]Result, error) {
	papers, err := pl.linker.CollectArxivWindow(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("collecting papers: %w", err)
	}

	results := make([]Result, 0, len(papers))
	for i := range papers {
		p := &papers[i]

		var res Result
		if pl.ledger.Exists(p.Title) {
			res = Result{Title: p.Title, Status: StatusSkipped}
		} else if err := pl.linker.UpdateFromS2(ctx, p, false); err != nil {
			pl.logf("WARNING: failed to collect metadata from Semantic Scholar: %v", err)
			res = pl.fail(p, "failed to get metadata from Semantic Scholar")
		} else {
			res, err = pl.process(ctx, p, "")
			if err != nil {
				return results, err
			}
		}

		if err := pl.ledger.Persist(); err != nil {
			return results, fmt.Errorf("%w: %v", ErrLedgerIO, err)
		}

		results = append(results, res)
		if onItem != nil {
			onItem(i+1, len(papers), res)
		}
	}

	return results, nil
}

// process runs the per-paper steps after linking and dedup. The error
// return is reserved for ledger I/O; step failures come back as a
// failed Result with the ledger already updated.
func (pl *Pipeline) process(ctx context.Context, p *paper.Paper, pdfSource string) (Result, error) {
	source := pdfSource
	if source == "" {
		source = p.URL
	}
	if source == "" {
		return pl.fail(p, "no PDF source"), nil
	}

	sections, err := pl.loader.Load(ctx, source)
	if err != nil {
		pl.logf("WARNING: failed to get original text: %v", err)
		return pl.fail(p, "failed to get original text"), nil
	}
	p.SetSections(sections)

	if len(p.Sections) < MinSections {
		pl.logf("WARNING: the paper is too short: %s", p.Title)
		return pl.fail(p, "the paper is too short"), nil
	}

	p.Keywords = keywords.FilterByScore(keywords.Extract(p.KeywordText()), MinKeywordScore)

	if err := pl.summarizer.Summarize(ctx, p); err != nil {
		pl.logf("WARNING: failed to summarize the paper: %v", err)
		return pl.fail(p, "failed to summarize the paper"), nil
	}

	if err := pl.persistAuthors(ctx, p); err != nil {
		if errors.Is(err, ErrLedgerIO) {
			return Result{}, err
		}
		pl.logf("WARNING: failed to add authors: %v", err)
		return pl.fail(p, "failed to add authors"), nil
	}

	if res, err := pl.persistPaper(ctx, p); err != nil {
		pl.logf("WARNING: failed to report the paper: %v", err)
		return pl.fail(p, "failed to report the paper"), nil
	} else if res != nil {
		return *res, nil
	}

	if pl.archive != nil {
		if err := pl.archive.Add(p); err != nil {
			// The paper is already in the knowledge base; a broken
			// archive should not fail the item.
			pl.logf("WARNING: failed to archive the paper: %v", err)
		}
	}

	return Result{Title: p.Title, Status: StatusPersisted}, nil
}

// fail appends a failed ledger entry and builds the failed result.
func (pl *Pipeline) fail(p *paper.Paper, reason string) Result {
	pl.ledger.AddFailedPaper(ledger.PaperEntryFor(p, reason))
	return Result{Title: p.Title, Status: StatusFailed, Reason: reason}
}
