package summarize

import "errors"

var (
	// ErrEmptyDocument indicates the paper has no extracted sections to
	// summarize from.
	ErrEmptyDocument = errors.New("paper has no text sections to summarize")

	// ErrSummarizationExhausted indicates every attempt failed.
	ErrSummarizationExhausted = errors.New("summarization failed after all attempts")
)
