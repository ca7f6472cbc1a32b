// Package s2 provides a client for the Semantic Scholar Academic Graph API.
package s2

// Paper represents a paper from the Semantic Scholar API.
type Paper struct {
	PaperID                  string   `json:"paperId"`
	Title                    string   `json:"title"`
	Abstract                 string   `json:"abstract,omitempty"`
	URL                      string   `json:"url,omitempty"`
	Venue                    string   `json:"venue,omitempty"`
	PublicationDate          string   `json:"publicationDate,omitempty"` // YYYY-MM-DD
	CitationCount            int      `json:"citationCount,omitempty"`
	InfluentialCitationCount int      `json:"influentialCitationCount,omitempty"`
	ReferenceCount           int      `json:"referenceCount,omitempty"`
	Authors                  []Author `json:"authors,omitempty"`
	Citations                []Paper  `json:"citations,omitempty"`
	References               []Paper  `json:"references,omitempty"`
}

// Author represents an author from the Semantic Scholar API.
type Author struct {
	AuthorID      string   `json:"authorId,omitempty"`
	Name          string   `json:"name"`
	URL           string   `json:"url,omitempty"`
	Affiliations  []string `json:"affiliations,omitempty"`
	PaperCount    int      `json:"paperCount,omitempty"`
	CitationCount int      `json:"citationCount,omitempty"`
	HIndex        int      `json:"hIndex,omitempty"`
}

// SearchResponse is the response from the paper search endpoint.
type SearchResponse struct {
	Total  int     `json:"total"`
	Offset int     `json:"offset"`
	Next   int     `json:"next,omitempty"`
	Data   []Paper `json:"data"`
}
