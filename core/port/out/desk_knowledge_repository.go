package out

import (
	"context"

	"helpdesk_server/core/domain"
)

// KnowledgeRepository persists knowledge-base passages.
type KnowledgeRepository interface {
	// Upsert creates or replaces the entry with entry.ID.
	Upsert(ctx context.Context, entry domain.KnowledgeEntry) error

	// ListAll returns the full corpus.
	ListAll(ctx context.Context) ([]domain.KnowledgeEntry, error)
}
