package pipeline

import (
	"context"
	"fmt"

	"github.com/paperbatch/paperbatch/internal/ledger"
	"github.com/paperbatch/paperbatch/internal/notion"
	"github.com/paperbatch/paperbatch/internal/paper"
)

// MaxAuthorRelations caps the author relation list on a paper page.
// Notion rejects relation properties beyond 100 entries.
const MaxAuthorRelations = 100

// PageService is the knowledge-base surface the pipeline persists to.
type PageService interface {
	CreatePage(ctx context.Context, databaseID string, properties notion.Properties) (*notion.Page, error)
	AppendBlockChildren(ctx context.Context, pageID string, blocks []notion.Block) error
}

// persistAuthors creates a page for every author not yet in the
// ledger, recording each new page id eagerly so a later failure never
// loses an already-created page.
func (pl *Pipeline) persistAuthors(ctx context.Context, p *paper.Paper) error {
	for i := range p.Authors {
		author := &p.Authors[i]

		if pageID, ok := pl.ledger.AuthorPageID(author.SSID); ok {
			author.PageID = pageID
			continue
		}

		page, err := pl.pages.CreatePage(ctx, pl.authorDatabaseID, authorProperties(*author))
		if err != nil {
			return fmt.Errorf("creating author page for %s: %w", author.Name, err)
		}
		author.PageID = page.ID

		pl.ledger.AddAuthor(ledger.AuthorEntryFor(*author))
		if err := pl.ledger.Persist(); err != nil {
			return fmt.Errorf("%w: %v", ErrLedgerIO, err)
		}
	}
	return nil
}

// persistPaper creates the paper page and appends its summary blocks.
// A non-nil result means the paper was already ledgered and skipped.
func (pl *Pipeline) persistPaper(ctx context.Context, p *paper.Paper) (*Result, error) {
	if pl.ledger.Exists(p.Title) {
		return &Result{Title: p.Title, Status: StatusSkipped}, nil
	}

	page, err := pl.pages.CreatePage(ctx, pl.paperDatabaseID, pl.paperProperties(p))
	if err != nil {
		return nil, fmt.Errorf("creating paper page: %w", err)
	}
	p.PageID = page.ID

	if err := pl.pages.AppendBlockChildren(ctx, p.PageID, summaryBlocks(&p.Summary)); err != nil {
		return nil, fmt.Errorf("appending summary blocks: %w", err)
	}

	pl.ledger.AddPaper(ledger.PaperEntryFor(p, ""))
	return nil, nil
}

// authorProperties maps an author onto the author database's schema.
// The identifier is the title property so pages stay unique per
// author, with the display name as plain text.
func authorProperties(a paper.Author) notion.Properties {
	return notion.Properties{
		"SS ID":          notion.TitleProp(a.SSID),
		"Name":           notion.RichTextProp(a.Name),
		"Affiliations":   notion.MultiSelectProp(a.Affiliations),
		"Citation Count": notion.NumberProp(float64(a.CitationCount)),
		"Paper Count":    notion.NumberProp(float64(a.PaperCount)),
		"h-Index":        notion.NumberProp(float64(a.HIndex)),
		"URL":            notion.URLProp(a.URL),
	}
}

// paperProperties maps a processed paper onto the paper database's
// schema.
func (pl *Pipeline) paperProperties(p *paper.Paper) notion.Properties {
	props := notion.Properties{
		"Name":                       notion.TitleProp(displayName(p)),
		"arXiv ID":                   notion.RichTextProp(p.ArxivID),
		"SS ID":                      notion.RichTextProp(p.SSID),
		"Title":                      notion.RichTextProp(p.Title),
		"Year":                       notion.NumberProp(float64(p.Year())),
		"Abstract":                   notion.RichTextProp(p.Abstract),
		"URL":                        notion.URLProp(p.URL),
		"DOI":                        notion.RichTextProp(p.DOI),
		"Status":                     notion.StatusProp("Ready"),
		"Citation Count":             notion.NumberProp(float64(p.CitationCount)),
		"Reference Count":            notion.NumberProp(float64(p.ReferenceCount)),
		"Influential Citation Count": notion.NumberProp(float64(p.InfluentialCitationCount)),
		"Research Question":          notion.RichTextProp(p.Summary.ResearchQuestion),
		"Methodology":                notion.RichTextProp(p.Summary.ProposedMethod),
		"Results":                    notion.RichTextProp(p.Summary.Experiments),
		"Domain":                     notion.MultiSelectProp(p.Summary.DomainList()),
	}

	// Select options reject empty names.
	if p.PrimaryCategory != "" {
		props["PrimaryCategory"] = notion.SelectProp(p.PrimaryCategory)
	}
	if p.Journal != "" {
		props["Journal"] = notion.SelectProp(p.Journal)
	}
	if p.Publisher != "" {
		props["Publisher"] = notion.SelectProp(p.Publisher)
	}

	if len(p.Keywords) > 0 {
		names := make([]string, len(p.Keywords))
		for i, kw := range p.Keywords {
			names[i] = kw.Alias
		}
		props["Keywords"] = notion.MultiSelectProp(names)
	}
	if tasks := p.Summary.TaskList(); len(tasks) > 0 && tasks[0] != "" {
		props["Task"] = notion.MultiSelectProp(tasks)
	}

	authorIDs := pl.authorPageIDs(p)
	props["Author IDs"] = notion.RelationProp(authorIDs)
	if len(p.Authors) > 0 {
		if firstID, ok := pl.ledger.AuthorPageID(p.Authors[0].SSID); ok && firstID != "" {
			props["First Author ID"] = notion.RelationProp([]string{firstID})
		}
	}

	return props
}

// authorPageIDs resolves each author's ledgered page id, dropping
// unresolved authors and capping the list at MaxAuthorRelations.
func (pl *Pipeline) authorPageIDs(p *paper.Paper) []string {
	ids := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if pageID, ok := pl.ledger.AuthorPageID(a.SSID); ok && pageID != "" {
			ids = append(ids, pageID)
		}
	}
	if len(ids) > MaxAuthorRelations {
		ids = ids[:MaxAuthorRelations]
	}
	return ids
}

// displayName builds the page title "Title (FirstAuthor, Year)".
func displayName(p *paper.Paper) string {
	if len(p.Authors) == 0 {
		return fmt.Sprintf("%s (%d)", p.Title, p.Year())
	}
	return fmt.Sprintf("%s (%s, %d)", p.Title, p.Authors[0].Name, p.Year())
}

// summaryBlocks renders the summary as page content: one top heading
// and ten numbered sections.
func summaryBlocks(s *paper.Summary) []notion.Block {
	sections := []struct {
		heading string
		body    string
	}{
		{"1. Overview", s.Overview},
		{"2. Research Question", s.ResearchQuestion},
		{"3. Task", s.TaskCategory},
		{"4. Comparison with Related Works", s.ComparisonWithRelatedWorks},
		{"5. Methodology", s.ProposedMethod},
		{"6. Datasets", s.Datasets},
		{"7. Experiments", s.Experiments},
		{"8. Analysis", s.Analysis},
		{"9. Contributions", s.Contributions},
		{"10. Future Works", s.FutureWorks},
	}

	blocks := make([]notion.Block, 0, 1+2*len(sections))
	blocks = append(blocks, notion.Heading1("Summary"))
	for _, sec := range sections {
		blocks = append(blocks, notion.Heading2(sec.heading), notion.Paragraph(sec.body))
	}
	return blocks
}
