// Package notion provides a client for the parts of the Notion API
// this tool uses: creating pages in a database, appending content
// blocks, and paging through database queries.
package notion

import "strings"

// RichText is a single rich text fragment.
type RichText struct {
	Type      string    `json:"type,omitempty"`
	Text      *TextSpan `json:"text,omitempty"`
	PlainText string    `json:"plain_text,omitempty"`
}

// TextSpan is the content of a text-type rich text fragment.
type TextSpan struct {
	Content string `json:"content"`
}

// NewText creates a text-type rich text fragment.
func NewText(content string) RichText {
	return RichText{Type: "text", Text: &TextSpan{Content: content}}
}

// SelectOption names a select or multi-select option.
type SelectOption struct {
	Name string `json:"name"`
}

// Relation references another page.
type Relation struct {
	ID string `json:"id"`
}

// Property is a page property value. Exactly one field is set,
// matching the property's type in the database schema.
type Property struct {
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	URL         string         `json:"url,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	Relation    []Relation     `json:"relation,omitempty"`
}

// PlainText flattens a title or rich_text property to its text.
func (p Property) PlainText() string {
	fragments := p.Title
	if len(fragments) == 0 {
		fragments = p.RichText
	}
	var b strings.Builder
	for _, f := range fragments {
		if f.PlainText != "" {
			b.WriteString(f.PlainText)
		} else if f.Text != nil {
			b.WriteString(f.Text.Content)
		}
	}
	return b.String()
}

// Properties is a page property map keyed by property name.
type Properties map[string]Property

// Parent locates a page's parent database.
type Parent struct {
	Type       string `json:"type"`
	DatabaseID string `json:"database_id"`
}

// CreatePageRequest is the request body for page creation.
type CreatePageRequest struct {
	Parent     Parent     `json:"parent"`
	Properties Properties `json:"properties"`
}

// Page is a page as returned by the API.
type Page struct {
	ID         string     `json:"id"`
	Properties Properties `json:"properties"`
}

// Block is a content block. Exactly one payload field is set.
type Block struct {
	Object    string        `json:"object"`
	Type      string        `json:"type"`
	Heading1  *BlockContent `json:"heading_1,omitempty"`
	Heading2  *BlockContent `json:"heading_2,omitempty"`
	Paragraph *BlockContent `json:"paragraph,omitempty"`
}

// BlockContent holds the rich text of a heading or paragraph block.
type BlockContent struct {
	RichText []RichText `json:"rich_text"`
}

// appendChildrenRequest is the request body for block appends.
type appendChildrenRequest struct {
	Children []Block `json:"children"`
}

// QueryRequest is the request body for database queries.
type QueryRequest struct {
	Filter      *Filter `json:"filter,omitempty"`
	StartCursor string  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
}

// Filter is a single-property database query filter.
type Filter struct {
	Property string          `json:"property"`
	RichText *TextCondition  `json:"rich_text,omitempty"`
	Title    *TextCondition  `json:"title,omitempty"`
	Status   *EmptyCondition `json:"status,omitempty"`
}

// TextCondition matches text-valued properties.
type TextCondition struct {
	Equals     string `json:"equals,omitempty"`
	IsNotEmpty bool   `json:"is_not_empty,omitempty"`
}

// EmptyCondition matches on presence only.
type EmptyCondition struct {
	IsNotEmpty bool `json:"is_not_empty,omitempty"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}
