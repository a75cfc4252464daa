// Package out defines the outbound ports of the application core.
package out

import (
	"context"

	"helpdesk_server/core/domain"
)

// TicketRepository persists processed support emails.
type TicketRepository interface {
	// Insert stores a new ticket and returns the assigned id.
	Insert(ctx context.Context, ticket *domain.Ticket) (string, error)

	// GetByID returns the ticket with the given id, or apperr.NotFound.
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)

	// ListAll returns every stored ticket in unspecified order.
	ListAll(ctx context.Context) ([]domain.Ticket, error)

	// MarkResolved atomically sets status=resolved and the final response.
	// Returns apperr.NotFound when the id does not resolve.
	MarkResolved(ctx context.Context, id, finalResponse string) error

	// Count returns the number of stored tickets.
	Count(ctx context.Context) (int64, error)
}
