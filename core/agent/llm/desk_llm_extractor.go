package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
)

// Completer is the slice of Client the extractor and responder need.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// extractionCache memoizes extraction results keyed by body hash.
// Satisfied by cache.RedisCache.
type extractionCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Extractor turns a raw email body into structured ticket fields.
type Extractor struct {
	llm      Completer
	cache    extractionCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewExtractor(llm Completer, log zerolog.Logger) *Extractor {
	return &Extractor{
		llm: llm,
		log: log.With().Str("component", "extractor").Logger(),
	}
}

// WithCache enables memoization of extraction results.
func (e *Extractor) WithCache(c extractionCache, ttl time.Duration) *Extractor {
	e.cache = c
	e.cacheTTL = ttl
	return e
}

const extractionPromptFormat = `Analyze the following customer support email and extract key information into a JSON object.
Provide a concise, 1-2 sentence summary of the customer's request.
Determine the sentiment and priority of the email.

Strictly follow this JSON structure:
{
  "customer_name": "string (customer's name, e.g., Jane Doe, or 'Unknown')",
  "request_summary": "a short summary of the customer's issue or request",
  "sentiment": "positive" | "negative" | "neutral",
  "priority": "urgent" | "not urgent" (based on keywords like 'immediately', 'critical', 'cannot access'),
  "contact_details": "string or 'N/A' if not found"
}

Email: %s

Your entire response MUST be the JSON object. Do not include any other text, markdown, or explanation.`

// ExtractTicketInfo runs the extraction prompt over an email body.
//
// It never returns an error: any failure, whether the call itself, locating
// a JSON object in the output, parsing it, or validating its fields, yields
// domain.FallbackExtractedInfo. Callers treat the fallback as a normal
// degraded result, not an error signal.
func (e *Extractor) ExtractTicketInfo(ctx context.Context, emailBody string) domain.ExtractedInfo {
	cacheKey := extractionCacheKey(emailBody)
	if e.cache != nil {
		var cached domain.ExtractedInfo
		if hit, err := e.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached
		}
	}

	prompt := fmt.Sprintf(extractionPromptFormat, emailBody)

	resp, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		e.log.Warn().Err(err).Msg("extraction call failed, using fallback")
		return domain.FallbackExtractedInfo()
	}

	info, ok := parseExtractedInfo(resp)
	if !ok {
		e.log.Warn().Str("raw_output", truncate(resp, 200)).Msg("no valid JSON object in model output, using fallback")
		return domain.FallbackExtractedInfo()
	}

	if e.cache != nil {
		if err := e.cache.SetJSON(ctx, cacheKey, info, e.cacheTTL); err != nil {
			e.log.Debug().Err(err).Msg("failed to cache extraction result")
		}
	}

	return info
}

// parseExtractedInfo locates the first brace-delimited JSON object in the
// model output (greedy, spanning lines, tolerating surrounding prose or
// markdown fences), parses it, and validates every field against the schema.
func parseExtractedInfo(raw string) (domain.ExtractedInfo, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return domain.ExtractedInfo{}, false
	}

	var parsed struct {
		CustomerName   string `json:"customer_name"`
		RequestSummary string `json:"request_summary"`
		Sentiment      string `json:"sentiment"`
		Priority       string `json:"priority"`
		ContactDetails string `json:"contact_details"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return domain.ExtractedInfo{}, false
	}

	info := domain.ExtractedInfo{
		CustomerName:   parsed.CustomerName,
		RequestSummary: parsed.RequestSummary,
		Sentiment:      domain.Sentiment(parsed.Sentiment),
		Priority:       domain.Priority(parsed.Priority),
		ContactDetails: parsed.ContactDetails,
	}
	if info.CustomerName == "" || info.RequestSummary == "" || info.ContactDetails == "" {
		return domain.ExtractedInfo{}, false
	}
	if !info.Sentiment.IsValid() || !info.Priority.IsValid() {
		return domain.ExtractedInfo{}, false
	}

	return info, true
}

func extractionCacheKey(emailBody string) string {
	sum := sha256.Sum256([]byte(emailBody))
	return "extract:" + hex.EncodeToString(sum[:])
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
