// Package knowledge maintains the knowledge base backing retrieval.
package knowledge

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/in"
	"helpdesk_server/core/port/out"
	"helpdesk_server/pkg/apperr"
)

// IndexRebuilder re-embeds the full corpus after a mutation.
type IndexRebuilder interface {
	Rebuild(ctx context.Context) error
}

// Service persists knowledge entries and keeps the vector index in sync.
type Service struct {
	knowledge out.KnowledgeRepository
	rebuilder IndexRebuilder
	log       zerolog.Logger
}

var _ in.KnowledgeService = (*Service)(nil)

func NewService(knowledge out.KnowledgeRepository, rebuilder IndexRebuilder, log zerolog.Logger) *Service {
	return &Service{
		knowledge: knowledge,
		rebuilder: rebuilder,
		log:       log.With().Str("component", "knowledge_service").Logger(),
	}
}

// Upsert stores the entry and synchronously rebuilds the vector index, so
// the next retrieval already sees the new content. A missing id creates a
// new entry.
func (s *Service) Upsert(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.MissingField("content")
	}
	if id == "" {
		id = uuid.NewString()
	}

	entry := domain.KnowledgeEntry{ID: id, Content: content}
	if err := s.knowledge.Upsert(ctx, entry); err != nil {
		return err
	}

	if err := s.rebuilder.Rebuild(ctx); err != nil {
		return err
	}

	s.log.Info().Str("entry_id", id).Msg("knowledge base updated")
	return nil
}
