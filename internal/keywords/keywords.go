// Package keywords extracts scored keywords from paper text. Scoring is
// frequency-based over normalized tokens; the pipeline keeps only
// keywords scoring above its threshold.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// Keyword is a scored term. Alias is the display form used for tags in
// the destination store.
type Keyword struct {
	Alias string `json:"alias"`
	Score int    `json:"score"`
}

// minTokenLength filters out short tokens that are rarely meaningful terms.
const minTokenLength = 3

// stopwords are common English words excluded from keyword candidates.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "with": true, "this": true, "that": true, "these": true,
	"those": true, "from": true, "into": true, "our": true, "their": true,
	"its": true, "can": true, "has": true, "have": true, "had": true,
	"was": true, "were": true, "been": true, "such": true, "than": true,
	"more": true, "most": true, "also": true, "both": true, "each": true,
	"which": true, "where": true, "when": true, "while": true, "all": true,
	"may": true, "use": true, "used": true, "using": true, "based": true,
	"how": true, "what": true, "show": true, "shows": true, "shown": true,
	"paper": true, "propose": true, "proposed": true, "approach": true,
	"method": true, "methods": true, "results": true, "result": true,
	"work": true, "works": true, "well": true, "between": true, "over": true,
	"however": true, "other": true, "some": true, "they": true, "there": true,
	"one": true, "two": true, "via": true, "new": true, "due": true,
}

// Extract tokenizes the text and returns frequency-scored keywords,
// ordered by descending score with ties broken alphabetically.
func Extract(text string) []Keyword {
	counts := make(map[string]int)
	for _, token := range tokenize(text) {
		counts[token]++
	}

	result := make([]Keyword, 0, len(counts))
	for alias, score := range counts {
		result = append(result, Keyword{Alias: alias, Score: score})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Alias < result[j].Alias
	})

	return result
}

// FilterByScore returns the keywords strictly above the given score.
func FilterByScore(kws []Keyword, minScore int) []Keyword {
	var filtered []Keyword
	for _, k := range kws {
		if k.Score > minScore {
			filtered = append(filtered, k)
		}
	}
	return filtered
}

// tokenize lowercases the text and splits into candidate terms, dropping
// stopwords, bare numbers, and short tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	var tokens []string
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if len(f) < minTokenLength || stopwords[f] || isNumeric(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
