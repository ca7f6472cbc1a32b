package paper

// Author represents a paper author as known to the metadata sources.
// PageID is filled once the author has been persisted to the
// destination store.
type Author struct {
	PageID        string   `json:"page_id,omitempty"`
	SSID          string   `json:"ss_id"`
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	Affiliations  []string `json:"affiliations,omitempty"`
	PaperCount    int      `json:"paper_count"`
	CitationCount int      `json:"citation_count"`
	HIndex        int      `json:"h_index"`
}
