package pipeline

import (
	"context"
	"fmt"

	"github.com/paperbatch/paperbatch/internal/ledger"
	"github.com/paperbatch/paperbatch/internal/notion"
)

// DatabaseQuerier pages through knowledge-base database queries.
type DatabaseQuerier interface {
	QueryDatabase(ctx context.Context, databaseID string, filter *notion.Filter, startCursor string) (*notion.QueryResponse, error)
}

// RebuildLedger reconstructs the ledger from the knowledge base
// itself: every paper page with a Status and every author page with a
// Name. The rebuilt ledger is persisted before returning. Use it when
// the local ledger is lost or out of sync.
func RebuildLedger(ctx context.Context, q DatabaseQuerier, led *ledger.Ledger, paperDB, authorDB string) error {
	paperFilter := &notion.Filter{
		Property: "Status",
		Status:   &notion.EmptyCondition{IsNotEmpty: true},
	}
	if err := forEachPage(ctx, q, paperDB, paperFilter, func(page notion.Page) {
		led.AddPaper(ledger.PaperEntry{
			Title:   page.Properties["Title"].PlainText(),
			ArxivID: page.Properties["arXiv ID"].PlainText(),
			SSID:    page.Properties["SS ID"].PlainText(),
			PageID:  page.ID,
		})
	}); err != nil {
		return fmt.Errorf("loading papers: %w", err)
	}

	authorFilter := &notion.Filter{
		Property: "Name",
		RichText: &notion.TextCondition{IsNotEmpty: true},
	}
	if err := forEachPage(ctx, q, authorDB, authorFilter, func(page notion.Page) {
		led.AddAuthor(ledger.AuthorEntry{
			Name: page.Properties["Name"].PlainText(),
			// SS ID is the title property in the author database.
			SSID:   page.Properties["SS ID"].PlainText(),
			PageID: page.ID,
		})
	}); err != nil {
		return fmt.Errorf("loading authors: %w", err)
	}

	if err := led.Persist(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerIO, err)
	}
	return nil
}

// forEachPage walks every result page of a filtered database query.
func forEachPage(ctx context.Context, q DatabaseQuerier, databaseID string, filter *notion.Filter, visit func(notion.Page)) error {
	cursor := ""
	for {
		resp, err := q.QueryDatabase(ctx, databaseID, filter, cursor)
		if err != nil {
			return err
		}
		for _, page := range resp.Results {
			visit(page)
		}
		if !resp.HasMore {
			return nil
		}
		cursor = resp.NextCursor
	}
}
