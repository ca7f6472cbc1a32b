// Package textmatch provides edit-distance based similarity scoring
// used for linking locally-known titles to external search results.
package textmatch

// Distance computes the Levenshtein edit distance between two strings.
// Insertions, deletions, and substitutions all cost 1. The comparison
// operates on Unicode code points, not bytes.
func Distance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	matrix := make([][]int, len(r1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(r2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(r2); j++ {
		matrix[0][j] = j
	}

	for i, c1 := range r1 {
		for j, c2 := range r2 {
			cost := 1
			if c1 == c2 {
				cost = 0
			}
			matrix[i+1][j+1] = min(
				matrix[i][j+1]+1,
				matrix[i+1][j]+1,
				matrix[i][j]+cost,
			)
		}
	}

	return matrix[len(r1)][len(r2)]
}

// NormalizedDistance divides the edit distance by the length of the
// longer string. Two identical strings score 0.
func NormalizedDistance(s1, s2 string) float64 {
	len1 := len([]rune(s1))
	len2 := len([]rune(s2))
	maxLen := max(len1, len2)
	if maxLen == 0 {
		return 0
	}
	return float64(Distance(s1, s2)) / float64(maxLen)
}

// Similarity transforms the normalized distance into a score in (0, 1].
// Identical strings score 1.0; the score falls toward 0.5 as the edit
// distance approaches the length of the longer string.
func Similarity(s1, s2 string) float64 {
	return 1.0 / (1.0 + NormalizedDistance(s1, s2))
}
