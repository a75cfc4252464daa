// Package ticket implements the inbound ticket pipeline and the
// dashboard-facing ticket operations.
package ticket

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/in"
	"helpdesk_server/core/port/out"
	"helpdesk_server/pkg/apperr"
)

// =============================================================================
// Collaborator interfaces
// =============================================================================

// InfoExtractor pulls structured fields out of a raw email body.
// Never fails: degraded model output yields the fallback record.
type InfoExtractor interface {
	ExtractTicketInfo(ctx context.Context, emailBody string) domain.ExtractedInfo
}

// ResponseDrafter synthesizes a customer-facing reply draft.
type ResponseDrafter interface {
	DraftResponse(ctx context.Context, emailBody string, sentiment domain.Sentiment) string
}

// IndexRebuilder re-embeds the knowledge base after seeding adds passages.
type IndexRebuilder interface {
	Rebuild(ctx context.Context) error
}

// =============================================================================
// Service
// =============================================================================

// Service runs raw emails through extraction and response synthesis,
// persists the resulting tickets, and serves the dashboard operations.
type Service struct {
	tickets   out.TicketRepository
	knowledge out.KnowledgeRepository
	extractor InfoExtractor
	responder ResponseDrafter
	rebuilder IndexRebuilder
	mailer    out.MailSender
	log       zerolog.Logger
}

var _ in.TicketService = (*Service)(nil)

func NewService(
	tickets out.TicketRepository,
	knowledge out.KnowledgeRepository,
	extractor InfoExtractor,
	responder ResponseDrafter,
	rebuilder IndexRebuilder,
	mailer out.MailSender,
	log zerolog.Logger,
) *Service {
	return &Service{
		tickets:   tickets,
		knowledge: knowledge,
		extractor: extractor,
		responder: responder,
		rebuilder: rebuilder,
		mailer:    mailer,
		log:       log.With().Str("component", "ticket_service").Logger(),
	}
}

// ProcessInbound runs the full pipeline over one raw email: extraction,
// response synthesis, then a single insert of the pending ticket. Model
// degradation never blocks ticket creation; only a storage failure does.
func (s *Service) ProcessInbound(ctx context.Context, msg domain.InboundEmail) (*domain.Ticket, error) {
	info := s.extractor.ExtractTicketInfo(ctx, msg.Body)
	draft := s.responder.DraftResponse(ctx, msg.Body, info.Sentiment)

	timestamp := msg.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	t := &domain.Ticket{
		Sender:        msg.Sender,
		Subject:       msg.Subject,
		Body:          msg.Body,
		Timestamp:     timestamp,
		Status:        domain.StatusPending,
		ExtractedInfo: info,
		AIResponse:    draft,
	}

	id, err := s.tickets.Insert(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id

	s.log.Info().
		Str("ticket_id", id).
		Str("sender", msg.Sender).
		Str("priority", string(info.Priority)).
		Msg("inbound email processed")

	return t, nil
}

// ListRanked returns every ticket ordered for the dashboard inbox.
func (s *Service) ListRanked(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return RankTickets(tickets), nil
}

// GenerateResponse re-runs extraction and synthesis over an arbitrary email
// body. Used by the dashboard to regenerate a draft on demand.
func (s *Service) GenerateResponse(ctx context.Context, emailBody string) string {
	info := s.extractor.ExtractTicketInfo(ctx, emailBody)
	return s.responder.DraftResponse(ctx, emailBody, info.Sentiment)
}

// Resolve sends finalResponse to the ticket's sender and marks the ticket
// resolved. The reply is sent before the status commit: a failed send
// leaves the ticket pending so the agent can retry.
func (s *Service) Resolve(ctx context.Context, ticketID, finalResponse string) error {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if t.Status == domain.StatusResolved {
		return apperr.Conflict("ticket already resolved")
	}

	if err := s.mailer.SendReply(ctx, t.Sender, t.Subject, finalResponse); err != nil {
		s.log.Error().Err(err).Str("ticket_id", ticketID).Msg("failed to send final reply")
		return apperr.ExternalError("mail", err)
	}

	if err := s.tickets.MarkResolved(ctx, ticketID, finalResponse); err != nil {
		return err
	}

	s.log.Info().Str("ticket_id", ticketID).Msg("ticket resolved")
	return nil
}

// SeedDemoData populates the demo inbox and knowledge base. Refuses to run
// against a store that already holds tickets.
func (s *Service) SeedDemoData(ctx context.Context) error {
	count, err := s.tickets.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("tickets already exist, seeding skipped")
	}

	now := time.Now().UTC()
	for _, seed := range seedEmails {
		msg := domain.InboundEmail{
			Sender:    seed.sender,
			Subject:   seed.subject,
			Body:      seed.body,
			Timestamp: now.Add(-seed.age),
		}
		if _, err := s.ProcessInbound(ctx, msg); err != nil {
			return err
		}
	}

	for _, content := range seedKnowledgePassages {
		entry := domain.KnowledgeEntry{ID: uuid.NewString(), Content: content}
		if err := s.knowledge.Upsert(ctx, entry); err != nil {
			return err
		}
	}

	if err := s.rebuilder.Rebuild(ctx); err != nil {
		return err
	}

	s.log.Info().
		Int("tickets", len(seedEmails)).
		Int("passages", len(seedKnowledgePassages)).
		Msg("demo data seeded")
	return nil
}
