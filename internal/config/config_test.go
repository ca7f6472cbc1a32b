package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `notion_token: secret-token
notion_paper_database_id: db-papers
notion_author_database_id: db-authors
openai_api_key: sk-test
openai_model: gpt-4o
data_dir: ` + dir + `
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.NotionToken != "secret-token" {
		t.Errorf("NotionToken = %q", cfg.NotionToken)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if got := cfg.LedgerPath(); got != filepath.Join(dir, "ledger.json") {
		t.Errorf("LedgerPath = %q", got)
	}
	if got := cfg.ArchivePath(); got != filepath.Join(dir, "archive.db") {
		t.Errorf("ArchivePath = %q", got)
	}
}

func TestLoadEnvFillsEmptyFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("notion_token: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NOTION_API_KEY", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("PAPERBATCH_DATA_DIR", dir)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.NotionToken != "from-file" {
		t.Errorf("NotionToken = %q, file value should win", cfg.NotionToken)
	}
	if cfg.OpenAIAPIKey != "sk-env" {
		t.Errorf("OpenAIAPIKey = %q, env should fill empty field", cfg.OpenAIAPIKey)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateForPosting(t *testing.T) {
	full := Config{
		NotionToken:           "t",
		NotionPaperDatabaseID: "p",
		NotionAuthorDatabase:  "a",
		OpenAIAPIKey:          "k",
	}
	if err := full.ValidateForPosting(); err != nil {
		t.Errorf("ValidateForPosting = %v on complete config", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"no notion token", func(c *Config) { c.NotionToken = "" }, ErrMissingNotionToken},
		{"no paper db", func(c *Config) { c.NotionPaperDatabaseID = "" }, ErrMissingPaperDatabase},
		{"no author db", func(c *Config) { c.NotionAuthorDatabase = "" }, ErrMissingAuthorDatabase},
		{"no openai key", func(c *Config) { c.OpenAIAPIKey = "" }, ErrMissingOpenAIAPIKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)
			if err := cfg.ValidateForPosting(); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForLedgerRebuildIgnoresOpenAI(t *testing.T) {
	cfg := Config{
		NotionToken:           "t",
		NotionPaperDatabaseID: "p",
		NotionAuthorDatabase:  "a",
	}
	if err := cfg.ValidateForLedgerRebuild(); err != nil {
		t.Errorf("ValidateForLedgerRebuild = %v", err)
	}
}
