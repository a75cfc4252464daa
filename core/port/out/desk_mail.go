package out

import (
	"context"

	"helpdesk_server/core/domain"
)

// MailSender delivers a reply to the customer who opened a ticket.
type MailSender interface {
	// SendReply sends body to the address embedded in sender, with the
	// original subject prefixed by a reply marker.
	SendReply(ctx context.Context, sender, subject, body string) error
}

// MailFetcher pulls unseen messages from the mail server. Fetched messages
// are marked seen as part of the fetch so they are never reprocessed,
// whether or not they later pass the subject filter.
type MailFetcher interface {
	FetchUnseen(ctx context.Context) ([]domain.InboundEmail, error)
}
