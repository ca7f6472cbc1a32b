package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paperbatch/paperbatch/internal/pipeline"
)

var (
	postTitle string
	postPDF   string
	postModel string
)

func init() {
	postCmd.Flags().StringVar(&postTitle, "title", "", "Title of the paper")
	postCmd.Flags().StringVar(&postPDF, "pdf", "", "Path or URL of the PDF (defaults to the linked arXiv PDF)")
	postCmd.Flags().StringVar(&postModel, "model", "", "Chat model for summarization")
	postCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(postCmd)
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a single paper to the knowledge base",
	Long: `Post one paper by title. Metadata is linked against Semantic Scholar
and arXiv, the PDF is summarized, and the paper and its authors are
created in Notion. A paper already in the ledger is skipped.`,
	RunE: runPost,
}

func runPost(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	pl, _, cleanup, err := buildPipeline(cfg, postModel)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := pl.ProcessOne(cmd.Context(), postTitle, postPDF)
	if err != nil {
		return err
	}

	switch res.Status {
	case pipeline.StatusPersisted:
		fmt.Printf("Posted: %s\n", res.Title)
	case pipeline.StatusSkipped:
		fmt.Printf("Already posted, skipped: %s\n", res.Title)
	case pipeline.StatusFailed:
		fmt.Fprintf(os.Stderr, "Failed: %s (%s)\n", res.Title, res.Reason)
		os.Exit(ExitError)
	}
	return nil
}
