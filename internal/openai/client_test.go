package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionBody(content string) string {
	resp := ChatResponse{
		ID:    "chatcmpl-1",
		Model: "gpt-4o-mini",
		Choices: []Choice{
			{Index: 0, Message: Message{Role: "assistant", Content: content}, FinishReason: "stop"},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestChat(t *testing.T) {
	var gotReq ChatRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody(`{"overview":"hello"}`)))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithAPIKey("sk-test"), WithModel("gpt-4o"))
	content, err := client.Chat(context.Background(), ChatRequest{
		Messages:    []Message{{Role: "user", Content: "summarize"}},
		Temperature: 1.0,
		ResponseFormat: &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchema{
				Name:   "summary",
				Strict: true,
				Schema: Schema{
					Type: "object",
					Properties: map[string]SchemaProperty{
						"overview": {Type: "string"},
					},
					Required: []string{"overview"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if content != `{"overview":"hello"}` {
		t.Errorf("content = %q", content)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o" {
		t.Errorf("model = %q, want client default applied", gotReq.Model)
	}
	if gotReq.Temperature != 1.0 {
		t.Errorf("temperature = %v", gotReq.Temperature)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_schema" {
		t.Errorf("response_format = %+v", gotReq.ResponseFormat)
	}
	if gotReq.ResponseFormat.JSONSchema.Name != "summary" {
		t.Errorf("schema name = %q", gotReq.ResponseFormat.JSONSchema.Name)
	}
}

func TestChatExplicitModelWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "gpt-4-turbo" {
			t.Errorf("model = %q, want explicit request model", req.Model)
		}
		w.Write([]byte(completionBody("ok")))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithModel("gpt-4o-mini"))
	if _, err := client.Chat(context.Background(), ChatRequest{Model: "gpt-4-turbo"}); err != nil {
		t.Fatalf("Chat: %v", err)
	}
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuthError},
		{"forbidden", http.StatusForbidden, ErrAuthError},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(WithBaseURL(server.URL))
			_, err := client.Chat(context.Background(), ChatRequest{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChatServerErrorIsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Chat(context.Background(), ChatRequest{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
}

func TestChatNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"chatcmpl-1","choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Chat(context.Background(), ChatRequest{})
	if !errors.Is(err, ErrNoChoices) {
		t.Errorf("err = %v, want ErrNoChoices", err)
	}
}

func TestChatInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Chat(context.Background(), ChatRequest{})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}
