// Package arxiv provides a client for the arXiv Atom query API.
package arxiv

import "encoding/xml"

// Entry is one paper from an arXiv query result.
type Entry struct {
	ID              string // bare arXiv id, e.g. "1706.03762v5"
	Title           string
	Abstract        string
	PrimaryCategory string
	Categories      []string
	PDFURL          string
	DOI             string
	Published       string // YYYY-MM-DD
}

// atomFeed mirrors the Atom response document. Namespaced elements
// (arxiv:primary_category, arxiv:doi) are matched by local name.
type atomFeed struct {
	XMLName      xml.Name    `xml:"feed"`
	TotalResults int         `xml:"totalResults"`
	Entries      []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Published       string         `xml:"published"`
	DOI             string         `xml:"doi"`
	PrimaryCategory atomCategory   `xml:"primary_category"`
	Categories      []atomCategory `xml:"category"`
	Links           []atomLink     `xml:"link"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}
