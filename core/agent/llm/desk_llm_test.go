package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
)

// fakeCompleter returns a canned response or error.
type fakeCompleter struct {
	response   string
	err        error
	lastPrompt string
	lastSystem string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeCompleter) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastPrompt = userPrompt
	return f.response, f.err
}

type fakeRetriever struct {
	match string
}

func (f *fakeRetriever) TopMatch(ctx context.Context, query string) string {
	return f.match
}

func TestExtractTicketInfoValidJSON(t *testing.T) {
	llm := &fakeCompleter{response: `{"customer_name":"Jane Doe","request_summary":"Cannot log in since yesterday.","sentiment":"negative","priority":"urgent","contact_details":"jane@example.com"}`}
	e := NewExtractor(llm, zerolog.Nop())

	info := e.ExtractTicketInfo(context.Background(), "I cannot log in!")

	if info.CustomerName != "Jane Doe" {
		t.Errorf("expected customer name 'Jane Doe', got %q", info.CustomerName)
	}
	if info.Sentiment != domain.SentimentNegative {
		t.Errorf("expected negative sentiment, got %q", info.Sentiment)
	}
	if info.Priority != domain.PriorityUrgent {
		t.Errorf("expected urgent priority, got %q", info.Priority)
	}
	if !strings.Contains(llm.lastPrompt, "I cannot log in!") {
		t.Error("expected prompt to contain the email body")
	}
}

func TestExtractTicketInfoJSONEmbeddedInProse(t *testing.T) {
	llm := &fakeCompleter{response: "Here you go: {\"customer_name\":\"Bob\",\"request_summary\":\"Billing error.\",\"sentiment\":\"neutral\",\"priority\":\"not urgent\",\"contact_details\":\"N/A\"} thanks"}
	e := NewExtractor(llm, zerolog.Nop())

	info := e.ExtractTicketInfo(context.Background(), "billing question")

	if info.CustomerName != "Bob" {
		t.Errorf("expected embedded JSON to parse, got customer name %q", info.CustomerName)
	}
	if info.Priority != domain.PriorityNotUrgent {
		t.Errorf("expected 'not urgent', got %q", info.Priority)
	}
}

func TestExtractTicketInfoMarkdownFencedJSON(t *testing.T) {
	llm := &fakeCompleter{response: "```json\n{\"customer_name\":\"Eve\",\"request_summary\":\"API question.\",\"sentiment\":\"positive\",\"priority\":\"not urgent\",\"contact_details\":\"eve@startup.io\"}\n```"}
	e := NewExtractor(llm, zerolog.Nop())

	info := e.ExtractTicketInfo(context.Background(), "api question")

	if info.CustomerName != "Eve" {
		t.Errorf("expected fenced JSON to parse, got customer name %q", info.CustomerName)
	}
}

func TestExtractTicketInfoFallback(t *testing.T) {
	fallback := domain.FallbackExtractedInfo()

	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "not JSON at all", response: "Sorry, I can't help."},
		{name: "call error", err: errors.New("connection refused")},
		{name: "malformed JSON", response: `{"customer_name": "Bob",`},
		{name: "missing field", response: `{"customer_name":"Bob","sentiment":"neutral","priority":"not urgent","contact_details":"N/A"}`},
		{name: "invalid sentiment", response: `{"customer_name":"Bob","request_summary":"x","sentiment":"angry","priority":"not urgent","contact_details":"N/A"}`},
		{name: "invalid priority", response: `{"customer_name":"Bob","request_summary":"x","sentiment":"neutral","priority":"high","contact_details":"N/A"}`},
		{name: "mistyped field", response: `{"customer_name":42,"request_summary":"x","sentiment":"neutral","priority":"not urgent","contact_details":"N/A"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&fakeCompleter{response: tt.response, err: tt.err}, zerolog.Nop())
			info := e.ExtractTicketInfo(context.Background(), "some email body")
			if info != fallback {
				t.Errorf("expected fallback record, got %+v", info)
			}
		})
	}
}

func TestDraftResponseIncludesContext(t *testing.T) {
	llm := &fakeCompleter{response: "Dear customer, please reset your password."}
	r := NewResponder(llm, &fakeRetriever{match: "For password reset issues, use the forgot password link."}, zerolog.Nop())

	draft := r.DraftResponse(context.Background(), "I can't reset my password", domain.SentimentNegative)

	if draft != "Dear customer, please reset your password." {
		t.Errorf("unexpected draft: %q", draft)
	}
	if !strings.Contains(llm.lastPrompt, "forgot password link") {
		t.Error("expected retrieved passage in the prompt")
	}
	if !strings.Contains(llm.lastPrompt, string(domain.SentimentNegative)) {
		t.Error("expected sentiment in the prompt")
	}
}

func TestDraftResponseFallback(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "call error", err: errors.New("timeout")},
		{name: "empty output", response: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResponder(&fakeCompleter{response: tt.response, err: tt.err}, &fakeRetriever{}, zerolog.Nop())
			draft := r.DraftResponse(context.Background(), "body", domain.SentimentNeutral)
			if draft != ResponderFallback {
				t.Errorf("expected fallback sentence, got %q", draft)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short", input: "hello", maxLen: 10, expected: "hello"},
		{name: "exact", input: "hello", maxLen: 5, expected: "hello"},
		{name: "truncated", input: "hello world", maxLen: 5, expected: "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
