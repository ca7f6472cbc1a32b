package main

import (
	"fmt"
	"os"

	"github.com/paperbatch/paperbatch/internal/archive"
	"github.com/paperbatch/paperbatch/internal/arxiv"
	"github.com/paperbatch/paperbatch/internal/config"
	"github.com/paperbatch/paperbatch/internal/fulltext"
	"github.com/paperbatch/paperbatch/internal/ledger"
	"github.com/paperbatch/paperbatch/internal/linker"
	"github.com/paperbatch/paperbatch/internal/notion"
	"github.com/paperbatch/paperbatch/internal/openai"
	"github.com/paperbatch/paperbatch/internal/pipeline"
	"github.com/paperbatch/paperbatch/internal/s2"
	"github.com/paperbatch/paperbatch/internal/summarize"
)

// loadConfig loads configuration, exiting on failure.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitConfigError)
	}
	return cfg
}

// buildPipeline wires the full processing pipeline from configuration.
// The model flag overrides the configured model when non-empty. The
// returned cleanup closes the archive.
func buildPipeline(cfg *config.Config, model string) (*pipeline.Pipeline, *ledger.Ledger, func(), error) {
	if err := cfg.ValidateForPosting(); err != nil {
		return nil, nil, nil, err
	}

	led, err := ledger.Load(cfg.LedgerPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading ledger: %w", err)
	}

	if model == "" {
		model = cfg.OpenAIModel
	}
	openaiOpts := []openai.ClientOption{openai.WithAPIKey(cfg.OpenAIAPIKey)}
	if model != "" {
		openaiOpts = append(openaiOpts, openai.WithModel(model))
	}

	var s2Opts []s2.ClientOption
	if cfg.SemanticScholarAPIKey != "" {
		s2Opts = append(s2Opts, s2.WithAPIKey(cfg.SemanticScholarAPIKey))
	}

	lk := linker.New(arxiv.NewClient(), s2.NewClient(s2Opts...))
	extractor := summarize.New(openai.NewClient(openaiOpts...))
	pages := notion.NewClient(notion.WithToken(cfg.NotionToken))

	arch, err := archive.Open(cfg.ArchivePath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening archive: %w", err)
	}
	cleanup := func() { arch.Close() }

	pl := pipeline.New(lk, fulltext.NewLoader(), extractor, pages, led,
		cfg.NotionPaperDatabaseID, cfg.NotionAuthorDatabase,
		pipeline.WithArchive(arch))

	return pl, led, cleanup, nil
}
