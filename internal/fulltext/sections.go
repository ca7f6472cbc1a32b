package fulltext

import (
	"regexp"
	"strings"

	"github.com/paperbatch/paperbatch/internal/paper"
)

// numberedHeading matches "1 Introduction", "2. Related Work",
// "3.1 Setup", "A. Appendix" style section headings. A bare capital
// letter prefix needs the period, otherwise sentences starting with
// "A" would read as headings.
var numberedHeading = regexp.MustCompile(`^(?:\d+(?:\.\d+)*\.?|[A-Z]\.)\s+([A-Z][^\n]{1,80})$`)

// namedHeadings are unnumbered headings that still open a section.
var namedHeadings = map[string]bool{
	"abstract":         true,
	"introduction":     true,
	"related work":     true,
	"background":       true,
	"method":           true,
	"methods":          true,
	"conclusion":       true,
	"conclusions":      true,
	"acknowledgments":  true,
	"acknowledgements": true,
	"references":       true,
	"appendix":         true,
}

// maxHeadingWords bounds heading length. Real headings are short;
// wrapped body lines that happen to start with a capital are not.
const maxHeadingWords = 8

// SplitSections splits extracted PDF text into titled sections. Text
// before the first recognized heading becomes a "Preamble" section.
// Paragraph breaks are taken at blank lines; a section without blank
// lines is one paragraph of its joined lines.
func SplitSections(text string) []paper.Section {
	lines := strings.Split(text, "\n")

	var sections []paper.Section
	current := paper.Section{Title: "Preamble"}
	var pending []string

	flushParagraph := func() {
		if len(pending) == 0 {
			return
		}
		current.Paragraphs = append(current.Paragraphs, strings.Join(pending, " "))
		pending = nil
	}
	flushSection := func() {
		flushParagraph()
		if len(current.Paragraphs) > 0 {
			sections = append(sections, current)
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			flushParagraph()
			continue
		}

		if title, ok := headingTitle(line); ok {
			flushSection()
			current = paper.Section{Title: title}
			continue
		}

		pending = append(pending, line)
	}
	flushSection()

	return sections
}

// headingTitle reports whether a line is a section heading and returns
// the normalized title with any numbering stripped.
func headingTitle(line string) (string, bool) {
	if len(strings.Fields(line)) > maxHeadingWords {
		return "", false
	}

	if m := numberedHeading.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	if namedHeadings[strings.ToLower(line)] {
		return normalizeTitle(line), true
	}

	return "", false
}

// normalizeTitle canonicalizes an all-caps or lowercase heading to
// title case so section lookups by name are stable.
func normalizeTitle(line string) string {
	words := strings.Fields(strings.ToLower(line))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
