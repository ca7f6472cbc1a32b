// Package config loads tool configuration from a YAML file with
// environment variable fallback. Components never read the environment
// themselves; everything they need arrives through Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the tool needs.
type Config struct {
	SemanticScholarAPIKey string `yaml:"semantic_scholar_api_key,omitempty"`
	OpenAIAPIKey          string `yaml:"openai_api_key,omitempty"`
	NotionToken           string `yaml:"notion_token,omitempty"`
	NotionPaperDatabaseID string `yaml:"notion_paper_database_id,omitempty"`
	NotionAuthorDatabase  string `yaml:"notion_author_database_id,omitempty"`
	OpenAIModel           string `yaml:"openai_model,omitempty"`
	DataDir               string `yaml:"data_dir,omitempty"`
}

// envVars maps environment variable names onto Config fields.
var envVars = map[string]func(*Config) *string{
	"SEMANTIC_SCHOLAR_API_KEY":  func(c *Config) *string { return &c.SemanticScholarAPIKey },
	"OPENAI_API_KEY":            func(c *Config) *string { return &c.OpenAIAPIKey },
	"NOTION_API_KEY":            func(c *Config) *string { return &c.NotionToken },
	"NOTION_PAPER_DATABASE_ID":  func(c *Config) *string { return &c.NotionPaperDatabaseID },
	"NOTION_AUTHOR_DATABASE_ID": func(c *Config) *string { return &c.NotionAuthorDatabase },
	"OPENAI_MODEL":              func(c *Config) *string { return &c.OpenAIModel },
	"PAPERBATCH_DATA_DIR":       func(c *Config) *string { return &c.DataDir },
}

// Load builds the configuration. When path is non-empty the YAML file
// there is the base; otherwise a .env file in the working directory is
// read if present. Environment variables fill any field the file left
// empty. DataDir defaults to ~/.paperbatch.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else {
		// Missing .env is fine; the environment may carry everything.
		_ = godotenv.Load()
	}

	for name, field := range envVars {
		if dst := field(cfg); *dst == "" {
			*dst = os.Getenv(name)
		}
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".paperbatch")
	}

	return cfg, nil
}

// LedgerPath returns the ledger file path inside the data directory.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.DataDir, "ledger.json")
}

// ArchivePath returns the archive database path inside the data
// directory.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.DataDir, "archive.db")
}

// Validation errors for required settings.
var (
	ErrMissingNotionToken    = errors.New("notion_token is not configured")
	ErrMissingPaperDatabase  = errors.New("notion_paper_database_id is not configured")
	ErrMissingAuthorDatabase = errors.New("notion_author_database_id is not configured")
	ErrMissingOpenAIAPIKey   = errors.New("openai_api_key is not configured")
)

// ValidateForPosting checks the settings the posting commands need.
// The Semantic Scholar key is optional (the API allows anonymous use).
func (c *Config) ValidateForPosting() error {
	switch {
	case c.NotionToken == "":
		return ErrMissingNotionToken
	case c.NotionPaperDatabaseID == "":
		return ErrMissingPaperDatabase
	case c.NotionAuthorDatabase == "":
		return ErrMissingAuthorDatabase
	case c.OpenAIAPIKey == "":
		return ErrMissingOpenAIAPIKey
	}
	return nil
}

// ValidateForLedgerRebuild checks the settings the rebuild command needs.
func (c *Config) ValidateForLedgerRebuild() error {
	switch {
	case c.NotionToken == "":
		return ErrMissingNotionToken
	case c.NotionPaperDatabaseID == "":
		return ErrMissingPaperDatabase
	case c.NotionAuthorDatabase == "":
		return ErrMissingAuthorDatabase
	}
	return nil
}
