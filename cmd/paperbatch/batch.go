package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/paperbatch/paperbatch/internal/pipeline"
)

var (
	batchDate  string
	batchModel string
)

func init() {
	batchCmd.Flags().StringVar(&batchDate, "date", "", `Submission date to collect: "YYYY-MM-DD"`)
	batchCmd.Flags().StringVar(&batchModel, "model", "", "Chat model for summarization")
	batchCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Post every arXiv paper from a submission date",
	Long: `Collect every paper submitted to the default arXiv categories on a
given day and post each one. Papers already in the ledger are skipped;
a failed step on one paper is recorded and does not stop the rest.`,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	day, err := time.Parse("2006-01-02", batchDate)
	if err != nil {
		return fmt.Errorf("parsing --date: %w", err)
	}

	cfg := loadConfig()
	pl, led, cleanup, err := buildPipeline(cfg, batchModel)
	if err != nil {
		return err
	}
	defer cleanup()

	bar := newProgressBar(-1, "Processing papers")
	var persisted, skipped, failed int

	results, err := pl.RunBatch(cmd.Context(), day.UTC(), func(done, total int, res pipeline.Result) {
		if bar != nil {
			bar.ChangeMax(total)
			bar.Set(done)
		}
		switch res.Status {
		case pipeline.StatusPersisted:
			persisted++
		case pipeline.StatusSkipped:
			skipped++
		case pipeline.StatusFailed:
			failed++
			fmt.Fprintf(os.Stderr, "WARNING: %s: %s\n", res.Title, res.Reason)
		}
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d papers: %d posted, %d skipped, %d failed\n",
		len(results), persisted, skipped, failed)
	if failed > 0 {
		fmt.Printf("Failure reasons are recorded in %s\n", led.Path())
	}
	return nil
}
