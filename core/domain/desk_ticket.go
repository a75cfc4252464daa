package domain

import "time"

// =============================================================================
// Ticket Status
// =============================================================================

// TicketStatus is the lifecycle state of a support ticket.
// Transitions are monotonic: pending -> resolved, never back.
type TicketStatus string

const (
	StatusPending  TicketStatus = "pending"
	StatusResolved TicketStatus = "resolved"
)

// =============================================================================
// Extracted Info
// =============================================================================

// Sentiment of the customer email as judged by the language model.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// IsValid reports whether s is one of the three known sentiment values.
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Priority of the customer request as judged by the language model.
type Priority string

const (
	PriorityUrgent    Priority = "urgent"
	PriorityNotUrgent Priority = "not urgent"
)

// IsValid reports whether p is one of the two known priority values.
func (p Priority) IsValid() bool {
	return p == PriorityUrgent || p == PriorityNotUrgent
}

// Score maps a priority to its inbox ranking weight.
// Unrecognized or missing priorities sort below "not urgent".
func (p Priority) Score() int {
	switch p {
	case PriorityUrgent:
		return 2
	case PriorityNotUrgent:
		return 1
	default:
		return 0
	}
}

// ExtractedInfo holds the structured fields pulled out of a raw email body.
// Every ticket carries one; extraction failure yields FallbackExtractedInfo,
// never a nil value.
type ExtractedInfo struct {
	CustomerName   string    `json:"customer_name"`
	RequestSummary string    `json:"request_summary"`
	Sentiment      Sentiment `json:"sentiment"`
	Priority       Priority  `json:"priority"`
	ContactDetails string    `json:"contact_details"`
}

// FallbackExtractedInfo is the degraded-but-valid record returned when the
// model output cannot be parsed or the call fails. Callers treat it as a
// normal result.
func FallbackExtractedInfo() ExtractedInfo {
	return ExtractedInfo{
		CustomerName:   "N/A",
		RequestSummary: "Failed to generate summary.",
		Sentiment:      SentimentNeutral,
		Priority:       PriorityNotUrgent,
		ContactDetails: "N/A",
	}
}

// =============================================================================
// Ticket
// =============================================================================

// Ticket is a processed support email with extracted metadata and the draft
// (and, once resolved, final) reply.
type Ticket struct {
	ID            string        `json:"id"`
	Sender        string        `json:"sender"`
	Subject       string        `json:"subject"`
	Body          string        `json:"body"`
	Timestamp     time.Time     `json:"timestamp"`
	Status        TicketStatus  `json:"status"`
	ExtractedInfo ExtractedInfo `json:"extractedInfo"`
	AIResponse    string        `json:"aiResponse"`
	FinalResponse string        `json:"finalResponse,omitempty"`
}

// InboundEmail is a raw message pulled from the mail server before it has
// been through the pipeline.
type InboundEmail struct {
	Sender    string
	Subject   string
	Body      string
	Timestamp time.Time
}
