package linker

import "fmt"

// MatchThreshold is the minimum title similarity for accepting a
// candidate. A candidate scoring exactly the threshold is accepted.
const MatchThreshold = 0.90

// NoSimilarMatchError reports that no candidate scored above the
// linkage threshold. It names the best candidate found so near-misses
// are diagnosable.
type NoSimilarMatchError struct {
	Query     string
	BestTitle string
	Score     float64
}

func (e *NoSimilarMatchError) Error() string {
	return fmt.Sprintf("no similar paper found: most similar to %q is %q (%.3f)", e.Query, e.BestTitle, e.Score)
}
