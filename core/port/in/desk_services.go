// Package in defines the inbound ports of the application core.
package in

import (
	"context"

	"helpdesk_server/core/domain"
)

// TicketService is the dashboard-facing ticket surface.
type TicketService interface {
	// ListRanked returns all tickets in priority order (urgent first,
	// newer first within equal priority).
	ListRanked(ctx context.Context) ([]domain.Ticket, error)

	// GenerateResponse runs extraction (for sentiment) and response
	// synthesis over a raw email body. It never fails; degraded model
	// output yields the defined fallback draft.
	GenerateResponse(ctx context.Context, emailBody string) string

	// Resolve sends the final reply to the ticket's sender and, on a
	// confirmed send, marks the ticket resolved.
	Resolve(ctx context.Context, ticketID, finalResponse string) error

	// ProcessInbound runs a raw email through the full pipeline and
	// persists the resulting pending ticket.
	ProcessInbound(ctx context.Context, msg domain.InboundEmail) (*domain.Ticket, error)

	// SeedDemoData populates demo tickets and knowledge entries.
	// Returns apperr.Conflict when tickets already exist.
	SeedDemoData(ctx context.Context) error
}

// KnowledgeService maintains the knowledge base backing retrieval.
type KnowledgeService interface {
	// Upsert stores the entry and synchronously rebuilds the vector index.
	Upsert(ctx context.Context, id, content string) error
}
