package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/paperbatch/paperbatch/internal/openai"
	"github.com/paperbatch/paperbatch/internal/paper"
)

type fakeChat struct {
	failures int // fail this many calls before succeeding
	content  string
	err      error

	calls    int
	requests []openai.ChatRequest
}

func (f *fakeChat) Chat(ctx context.Context, req openai.ChatRequest) (string, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.calls <= f.failures {
		return "", f.err
	}
	return f.content, nil
}

func sectionedPaper() *paper.Paper {
	p := &paper.Paper{Title: "Attention Is All You Need"}
	p.SetSections([]paper.Section{
		{Title: "Introduction", Paragraphs: []string{"Sequence models dominate."}},
		{Title: "Method", Paragraphs: []string{"We propose the Transformer."}},
	})
	return p
}

func validSummaryJSON(t *testing.T) string {
	t.Helper()
	b, err := json.Marshal(paper.Summary{
		IsSurvey:       false,
		Overview:       "A new architecture.",
		ProposedMethod: "Self-attention only.",
		TaskWords:      "translation,parsing",
		DomainWords:    "nlp",
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestSummarizeSuccess(t *testing.T) {
	chat := &fakeChat{content: validSummaryJSON(t)}
	e := New(chat, WithRetryDelay(0))

	p := sectionedPaper()
	if err := e.Summarize(context.Background(), p); err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if p.Summary.Overview != "A new architecture." {
		t.Errorf("Overview = %q", p.Summary.Overview)
	}
	if chat.calls != 1 {
		t.Errorf("calls = %d, want 1", chat.calls)
	}

	req := chat.requests[0]
	if req.Temperature != 1.0 {
		t.Errorf("temperature = %v", req.Temperature)
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_schema" {
		t.Fatalf("response_format = %+v", req.ResponseFormat)
	}
	if got := len(req.ResponseFormat.JSONSchema.Schema.Properties); got != 13 {
		t.Errorf("schema properties = %d, want 13", got)
	}
	if got := len(req.ResponseFormat.JSONSchema.Schema.Required); got != 13 {
		t.Errorf("schema required = %d, want 13", got)
	}
	if len(req.Messages) != 5 {
		t.Fatalf("messages = %d, want 5", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Errorf("first message role = %q", req.Messages[0].Role)
	}
	if !strings.Contains(req.Messages[1].Content, p.Title) {
		t.Errorf("title framing missing: %q", req.Messages[1].Content)
	}
	if !strings.Contains(req.Messages[3].Content, "<paper>") {
		t.Errorf("paper body not serialized: %.80q", req.Messages[3].Content)
	}
}

func TestSummarySchemaRequiredOrder(t *testing.T) {
	// The required array must follow the field declaration order on
	// every call, not map iteration order.
	want := []string{
		"is_survey", "overview", "research_question", "task_category",
		"task_as_words", "comparison_with_related_works", "proposed_method",
		"datasets", "domain_as_words", "experiments", "analysis",
		"contributions", "future_works",
	}

	for i := 0; i < 5; i++ {
		got := summarySchema().Required
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("required = %v, want %v", got, want)
		}
	}
}

func TestSummarizeEmptyDocument(t *testing.T) {
	chat := &fakeChat{content: validSummaryJSON(t)}
	e := New(chat, WithRetryDelay(0))

	err := e.Summarize(context.Background(), &paper.Paper{Title: "No Text"})
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("err = %v, want ErrEmptyDocument", err)
	}
	if chat.calls != 0 {
		t.Errorf("chat called %d times on empty document", chat.calls)
	}
}

func TestSummarizeRetriesThenSucceeds(t *testing.T) {
	chat := &fakeChat{
		failures: 4,
		err:      openai.ErrNetworkError,
		content:  validSummaryJSON(t),
	}
	e := New(chat, WithRetryDelay(0))

	p := sectionedPaper()
	if err := e.Summarize(context.Background(), p); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if chat.calls != 5 {
		t.Errorf("calls = %d, want 5", chat.calls)
	}
	if p.Summary.Overview != "A new architecture." {
		t.Errorf("Overview = %q", p.Summary.Overview)
	}

	// Each failed attempt appends two corrective turns.
	last := chat.requests[len(chat.requests)-1]
	if want := 5 + 2*4; len(last.Messages) != want {
		t.Errorf("final conversation = %d messages, want %d", len(last.Messages), want)
	}
	if got := last.Messages[len(last.Messages)-2].Content; got != "Respond in JSON format." {
		t.Errorf("corrective system turn = %q", got)
	}
}

func TestSummarizeExhaustsAttempts(t *testing.T) {
	chat := &fakeChat{failures: 10, err: openai.ErrNetworkError}
	e := New(chat, WithRetryDelay(0))

	p := sectionedPaper()
	err := e.Summarize(context.Background(), p)
	if !errors.Is(err, ErrSummarizationExhausted) {
		t.Fatalf("err = %v, want ErrSummarizationExhausted", err)
	}
	if chat.calls != MaxAttempts {
		t.Errorf("calls = %d, want %d", chat.calls, MaxAttempts)
	}
	if p.Summary.Overview != "" {
		t.Errorf("summary mutated on failure: %+v", p.Summary)
	}
}

// A malformed payload after a successful completion is a hard error,
// not a retried one.
func TestSummarizeBadPayloadNotRetried(t *testing.T) {
	chat := &fakeChat{content: "not json"}
	e := New(chat, WithRetryDelay(0))

	p := sectionedPaper()
	err := e.Summarize(context.Background(), p)
	if err == nil || errors.Is(err, ErrSummarizationExhausted) {
		t.Fatalf("err = %v, want immediate decode error", err)
	}
	if chat.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on decode failure)", chat.calls)
	}
	if p.Summary.Overview != "" {
		t.Errorf("summary mutated on failure: %+v", p.Summary)
	}
}

func TestSummarizeContextCancelled(t *testing.T) {
	chat := &fakeChat{failures: 10, err: openai.ErrNetworkError}
	e := New(chat) // default delay so cancellation is observed in the wait

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Summarize(ctx, sectionedPaper())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
