// Package linker resolves in-progress publication records against the
// external metadata sources and merges authoritative fields. Candidate
// selection is by case-insensitive title similarity with a hard
// acceptance threshold; merging always takes identifiers from the
// resolved record and takes descriptive fields only when the current
// value is empty or overwrite is requested.
package linker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paperbatch/paperbatch/internal/arxiv"
	"github.com/paperbatch/paperbatch/internal/paper"
	"github.com/paperbatch/paperbatch/internal/s2"
	"github.com/paperbatch/paperbatch/internal/textmatch"
)

// DefaultCategories are the arXiv categories collected in batch mode.
var DefaultCategories = []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV"}

// ArxivSource is the arXiv query surface the linker needs.
type ArxivSource interface {
	SearchByTitle(ctx context.Context, title string, maxResults int) ([]arxiv.Entry, error)
	SearchWindow(ctx context.Context, categories []string, from, to time.Time, maxResults int) ([]arxiv.Entry, error)
}

// ScholarSource is the Semantic Scholar query surface the linker needs.
type ScholarSource interface {
	SearchByTitle(ctx context.Context, title string, limit int) ([]s2.Paper, error)
}

// Linker links publication records to the metadata sources.
type Linker struct {
	arxiv   ArxivSource
	scholar ScholarSource
}

// New creates a Linker over the two metadata sources.
func New(arxivSource ArxivSource, scholarSource ScholarSource) *Linker {
	return &Linker{arxiv: arxivSource, scholar: scholarSource}
}

// meetsThreshold reports whether a similarity score clears the
// acceptance gate. The threshold itself is accepted.
func meetsThreshold(score float64) bool {
	return score >= MatchThreshold
}

// bestMatch scores every candidate title against the query and returns
// the index and score of the best. Ties keep the first occurrence.
func bestMatch(query string, titles []string) (int, float64) {
	lowerQuery := strings.ToLower(query)
	bestIdx, bestScore := -1, 0.0
	for i, title := range titles {
		score := textmatch.Similarity(lowerQuery, strings.ToLower(title))
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore
}

// UpdateFromArxiv resolves the paper against arXiv by title and merges
// the matched entry's fields.
func (l *Linker) UpdateFromArxiv(ctx context.Context, p *paper.Paper, overwrite bool) error {
	entries, err := l.arxiv.SearchByTitle(ctx, p.Title, arxiv.DefaultTitleSearchLimit)
	if err != nil {
		return fmt.Errorf("querying arXiv: %w", err)
	}

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	idx, score := bestMatch(p.Title, titles)
	if idx < 0 || !meetsThreshold(score) {
		best := ""
		if idx >= 0 {
			best = entries[idx].Title
		}
		return &NoSimilarMatchError{Query: p.Title, BestTitle: best, Score: score}
	}

	entry := entries[idx]
	p.ArxivID = entry.ID
	p.Title = strings.ReplaceAll(entry.Title, "\n", " ")
	if p.Abstract == "" || overwrite {
		p.Abstract = entry.Abstract
	}
	if p.PrimaryCategory == "" || overwrite {
		p.PrimaryCategory = entry.PrimaryCategory
	}
	if len(p.Categories) == 0 || overwrite {
		p.Categories = entry.Categories
	}
	if p.URL == "" || overwrite {
		p.URL = entry.PDFURL
	}
	if p.DOI == "" || overwrite {
		p.DOI = entry.DOI
	}
	if p.Journal == "" || overwrite {
		p.Journal = "arXiv"
	}
	if p.Publisher == "" || overwrite {
		p.Publisher = "arXiv"
	}

	return nil
}

// UpdateFromS2 resolves the paper against Semantic Scholar by title and
// merges the matched record's fields, including author detail and the
// minimal citation/reference lists.
func (l *Linker) UpdateFromS2(ctx context.Context, p *paper.Paper, overwrite bool) error {
	candidates, err := l.scholar.SearchByTitle(ctx, p.Title, s2.DefaultSearchLimit)
	if err != nil {
		return fmt.Errorf("querying Semantic Scholar: %w", err)
	}

	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.Title
	}
	idx, score := bestMatch(p.Title, titles)
	if idx < 0 || !meetsThreshold(score) {
		best := ""
		if idx >= 0 {
			best = candidates[idx].Title
		}
		return &NoSimilarMatchError{Query: p.Title, BestTitle: best, Score: score}
	}

	match := candidates[idx]
	p.SSID = match.PaperID
	p.Title = strings.ReplaceAll(match.Title, "\n", " ")
	if p.Abstract == "" || overwrite {
		p.Abstract = match.Abstract
	}
	if p.URL == "" || overwrite {
		p.URL = match.URL
	}
	if p.Journal == "" || overwrite {
		p.Journal = match.Venue
	}
	if p.PublicationDate.IsZero() || p.PublicationDate.Equal(paper.DefaultDate) || overwrite {
		p.PublicationDate = parseDate(match.PublicationDate)
	}
	if p.ReferenceCount == 0 || overwrite {
		p.ReferenceCount = match.ReferenceCount
	}
	if p.CitationCount == 0 || overwrite {
		p.CitationCount = match.CitationCount
	}
	if p.InfluentialCitationCount == 0 || overwrite {
		p.InfluentialCitationCount = match.InfluentialCitationCount
	}
	if len(p.Authors) == 0 || overwrite {
		p.Authors = mapAuthors(match.Authors)
	}
	if len(p.Citations) == 0 || overwrite {
		p.Citations = mapNested(match.Citations)
	}
	if len(p.References) == 0 || overwrite {
		p.References = mapNested(match.References)
	}

	return nil
}

// CollectArxivWindow collects every arXiv paper in the default
// categories submitted on the given day. No similarity filtering: this
// path trusts the source's own ranking.
func (l *Linker) CollectArxivWindow(ctx context.Context, day time.Time) ([]paper.Paper, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Minute)

	entries, err := l.arxiv.SearchWindow(ctx, DefaultCategories, from, to, arxiv.DefaultWindowLimit)
	if err != nil {
		return nil, fmt.Errorf("collecting arXiv window: %w", err)
	}

	papers := make([]paper.Paper, len(entries))
	for i, e := range entries {
		papers[i] = paper.Paper{
			ArxivID:         e.ID,
			Title:           strings.ReplaceAll(e.Title, "\n", " "),
			Abstract:        e.Abstract,
			PrimaryCategory: e.PrimaryCategory,
			Categories:      e.Categories,
			URL:             e.PDFURL,
			DOI:             e.DOI,
			Journal:         "arXiv",
			Publisher:       "arXiv",
			PublicationDate: parseDate(e.Published),
		}
	}
	return papers, nil
}

// mapAuthors converts source authors into domain authors.
func mapAuthors(authors []s2.Author) []paper.Author {
	result := make([]paper.Author, len(authors))
	for i, a := range authors {
		url := a.URL
		if url == "" {
			url = "-"
		}
		result[i] = paper.Author{
			SSID:          a.AuthorID,
			Name:          a.Name,
			URL:           url,
			Affiliations:  a.Affiliations,
			PaperCount:    a.PaperCount,
			CitationCount: a.CitationCount,
			HIndex:        a.HIndex,
		}
	}
	return result
}

// mapNested converts citation/reference papers into minimal nested
// records, defaulting each absent field.
func mapNested(papers []s2.Paper) []paper.Paper {
	result := make([]paper.Paper, len(papers))
	for i, sp := range papers {
		result[i] = paper.NewReference(
			sp.PaperID,
			strings.ReplaceAll(sp.Title, "\n", " "),
			sp.Abstract,
			mapAuthors(sp.Authors),
			parseDate(sp.PublicationDate),
		)
	}
	return result
}

// parseDate converts a YYYY-MM-DD date string to UTC time, falling back
// to the epoch default when missing or malformed.
func parseDate(s string) time.Time {
	if s == "" {
		return paper.DefaultDate
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return paper.DefaultDate
	}
	return t.UTC()
}
