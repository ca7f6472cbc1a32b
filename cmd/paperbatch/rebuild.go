package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperbatch/paperbatch/internal/ledger"
	"github.com/paperbatch/paperbatch/internal/notion"
	"github.com/paperbatch/paperbatch/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(rebuildLedgerCmd)
}

var rebuildLedgerCmd = &cobra.Command{
	Use:   "rebuild-ledger",
	Short: "Rebuild the local ledger from the knowledge base",
	Long: `Rebuild the ledger by paging through the Notion paper and author
databases. Use this when the ledger file is lost or out of sync with
what has actually been posted.`,
	RunE: runRebuildLedger,
}

func runRebuildLedger(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.ValidateForLedgerRebuild(); err != nil {
		return err
	}

	led := ledger.New(cfg.LedgerPath())
	pages := notion.NewClient(notion.WithToken(cfg.NotionToken))

	if err := pipeline.RebuildLedger(cmd.Context(), pages, led,
		cfg.NotionPaperDatabaseID, cfg.NotionAuthorDatabase); err != nil {
		return err
	}

	fmt.Printf("Rebuilt ledger: %d papers, %d authors -> %s\n",
		len(led.Papers), len(led.Authors), led.Path())
	return nil
}
