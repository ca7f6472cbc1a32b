// Package paper defines the core domain types for the ingestion pipeline:
// publication records, authors, document sections, and structured summaries.
package paper

import (
	"fmt"
	"strings"
	"time"

	"github.com/paperbatch/paperbatch/internal/keywords"
)

// DefaultDate is used when a source omits the publication date.
var DefaultDate = time.Unix(0, 0).UTC()

// Section is one titled block of a paper's full text.
type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// Paper is the canonical publication record. It accumulates fields as it
// moves through the pipeline: linkage fills the identifiers and metadata,
// text acquisition fills Sections, enrichment fills Summary, and
// persistence fills PageID.
type Paper struct {
	// Identity
	PageID  string `json:"page_id,omitempty"` // destination-store page id
	ArxivID string `json:"arxiv_id"`
	SSID    string `json:"ss_id"`

	// Metadata
	Title           string    `json:"title"`
	Abstract        string    `json:"abstract"`
	Authors         []Author  `json:"authors"`
	PublicationDate time.Time `json:"publication_date"`
	PrimaryCategory string    `json:"primary_category"`
	Categories      []string  `json:"categories"`
	URL             string    `json:"url"`
	DOI             string    `json:"doi"`
	Journal         string    `json:"journal"`
	Publisher       string    `json:"publisher"`

	// Counters
	CitationCount            int `json:"citation_count"`
	InfluentialCitationCount int `json:"influential_citation_count"`
	ReferenceCount           int `json:"reference_count"`

	// Citation graph (minimal nested records, never merged)
	Citations  []Paper `json:"citations,omitempty"`
	References []Paper `json:"references,omitempty"`

	// Full text
	Sections     []Section          `json:"sections,omitempty"`
	SectionIndex map[string]Section `json:"-"`

	// Enrichment
	Keywords []keywords.Keyword `json:"keywords,omitempty"`
	Summary  Summary            `json:"summary"`
}

// NewReference builds a minimal nested record for citation/reference lists.
func NewReference(ssID, title, abstract string, authors []Author, published time.Time) Paper {
	return Paper{
		SSID:            ssID,
		Title:           title,
		Abstract:        abstract,
		Authors:         authors,
		PublicationDate: published,
	}
}

// Year returns the publication year.
func (p *Paper) Year() int {
	return p.PublicationDate.Year()
}

// SetSections stores the ordered full-text sections and rebuilds the
// title index.
func (p *Paper) SetSections(sections []Section) {
	p.Sections = sections
	p.SectionIndex = make(map[string]Section, len(sections))
	for _, s := range sections {
		p.SectionIndex[s.Title] = s
	}
}

// KeywordText returns the text keyword extraction runs over: title,
// abstract, and the Introduction section when present.
func (p *Paper) KeywordText() string {
	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteString("\n\n")
	b.WriteString(p.Abstract)

	if section, ok := p.SectionIndex["Introduction"]; ok {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(section.Paragraphs, "\n"))
	}

	return b.String()
}

// ContentText serializes the paper's metadata and full text as a tagged
// hierarchical block for the summarization prompt.
func (p *Paper) ContentText() string {
	var b strings.Builder
	b.WriteString("<paper>")

	b.WriteString("<metadata>")
	fmt.Fprintf(&b, "<title>%s</title>", p.Title)
	b.WriteString("<authors>")
	for _, a := range p.Authors {
		fmt.Fprintf(&b, "<author>%s</author>", a.Name)
	}
	b.WriteString("</authors>")
	b.WriteString("</metadata>")

	b.WriteString("<contents>")
	for _, section := range p.Sections {
		b.WriteString("<section>")
		fmt.Fprintf(&b, "<title>%s</title>", section.Title)
		for _, paragraph := range section.Paragraphs {
			fmt.Fprintf(&b, "<paragraph>%s</paragraph>", paragraph)
		}
		b.WriteString("</section>")
	}
	b.WriteString("</contents>")

	b.WriteString("</paper>")
	return b.String()
}

// ReferencesText serializes the backward-reference list as a tagged block.
func (p *Paper) ReferencesText() string {
	return citationList("references", "reference", p.References)
}

// CitationsText serializes the forward-citation list as a tagged block.
func (p *Paper) CitationsText() string {
	return citationList("citations", "citation", p.Citations)
}

func citationList(outer, inner string, papers []Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s>", outer)
	for _, entry := range papers {
		fmt.Fprintf(&b, "<%s>", inner)
		fmt.Fprintf(&b, "<title>%s</title>", entry.Title)
		b.WriteString("<authors>")
		for _, a := range entry.Authors {
			fmt.Fprintf(&b, "<author>%s</author>", a.Name)
		}
		b.WriteString("</authors>")
		fmt.Fprintf(&b, "<year>%d</year>", entry.Year())
		fmt.Fprintf(&b, "<abstract>%s</abstract>", entry.Abstract)
		fmt.Fprintf(&b, "</%s>", inner)
	}
	fmt.Fprintf(&b, "</%s>", outer)
	return b.String()
}
