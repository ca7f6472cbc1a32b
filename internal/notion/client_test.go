package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreatePage(t *testing.T) {
	var gotVersion, gotAuth, gotPath string
	var gotReq CreatePageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("Notion-Version")
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Write([]byte(`{"id":"page-1"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("secret"))
	props := Properties{
		"Name":   TitleProp("A Paper (First Author, 2024)"),
		"Year":   NumberProp(2024),
		"Status": StatusProp("Ready"),
	}
	page, err := client.CreatePage(context.Background(), "db-1", props)
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	if page.ID != "page-1" {
		t.Errorf("page ID = %q", page.ID)
	}
	if gotPath != "/pages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotVersion != APIVersion {
		t.Errorf("Notion-Version = %q", gotVersion)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Parent.Type != "database_id" || gotReq.Parent.DatabaseID != "db-1" {
		t.Errorf("parent = %+v", gotReq.Parent)
	}
	if got := gotReq.Properties["Name"].PlainText(); got != "A Paper (First Author, 2024)" {
		t.Errorf("Name = %q", got)
	}
	if n := gotReq.Properties["Year"].Number; n == nil || *n != 2024 {
		t.Errorf("Year = %v", n)
	}
	if s := gotReq.Properties["Status"].Status; s == nil || s.Name != "Ready" {
		t.Errorf("Status = %v", s)
	}
}

func TestAppendBlockChildren(t *testing.T) {
	var gotPath, gotMethod string
	var gotReq appendChildrenRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	blocks := []Block{
		Heading1("Summary"),
		Heading2("1. Overview"),
		Paragraph("An overview."),
	}
	if err := client.AppendBlockChildren(context.Background(), "page-1", blocks); err != nil {
		t.Fatalf("AppendBlockChildren: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q", gotMethod)
	}
	if gotPath != "/blocks/page-1/children" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotReq.Children) != 3 {
		t.Fatalf("children = %d", len(gotReq.Children))
	}
	if gotReq.Children[0].Type != "heading_1" || gotReq.Children[0].Heading1 == nil {
		t.Errorf("first block = %+v", gotReq.Children[0])
	}
	if gotReq.Children[2].Paragraph.RichText[0].Text.Content != "An overview." {
		t.Errorf("paragraph = %+v", gotReq.Children[2].Paragraph)
	}
}

func TestQueryDatabasePagination(t *testing.T) {
	var cursors []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		json.NewDecoder(r.Body).Decode(&req)
		cursors = append(cursors, req.StartCursor)
		if req.StartCursor == "" {
			w.Write([]byte(`{
				"results":[{"id":"page-1","properties":{"Title":{"rich_text":[{"plain_text":"First"}]}}}],
				"has_more":true,"next_cursor":"cursor-2"}`))
			return
		}
		w.Write([]byte(`{
			"results":[{"id":"page-2","properties":{"Title":{"rich_text":[{"plain_text":"Second"}]}}}],
			"has_more":false}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	filter := &Filter{Property: "Status", Status: &EmptyCondition{IsNotEmpty: true}}

	first, err := client.QueryDatabase(context.Background(), "db-1", filter, "")
	if err != nil {
		t.Fatalf("QueryDatabase: %v", err)
	}
	if !first.HasMore || first.NextCursor != "cursor-2" {
		t.Fatalf("first page = %+v", first)
	}
	if got := first.Results[0].Properties["Title"].PlainText(); got != "First" {
		t.Errorf("first title = %q", got)
	}

	second, err := client.QueryDatabase(context.Background(), "db-1", filter, first.NextCursor)
	if err != nil {
		t.Fatalf("QueryDatabase: %v", err)
	}
	if second.HasMore {
		t.Errorf("second page HasMore = true")
	}
	if cursors[1] != "cursor-2" {
		t.Errorf("cursors = %v", cursors)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuthError},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(WithBaseURL(server.URL))
			_, err := client.CreatePage(context.Background(), "db-1", Properties{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlainTextPrefersPlainText(t *testing.T) {
	p := Property{RichText: []RichText{
		{PlainText: "from api"},
		{Text: &TextSpan{Content: " and built"}},
	}}
	if got := p.PlainText(); got != "from api and built" {
		t.Errorf("PlainText = %q", got)
	}
}
