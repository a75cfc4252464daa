package rag

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"helpdesk_server/core/port/out"
)

// Retriever ties the knowledge repository, embedder, and index together.
// The repository owns the authoritative content; the index only holds a
// disposable embedded copy rebuilt wholesale on every corpus change.
type Retriever struct {
	knowledge out.KnowledgeRepository
	embedder  *Embedder
	index     *Index
	log       zerolog.Logger
}

func NewRetriever(knowledge out.KnowledgeRepository, embedder *Embedder, log zerolog.Logger) *Retriever {
	return &Retriever{
		knowledge: knowledge,
		embedder:  embedder,
		index:     NewIndex(),
		log:       log.With().Str("component", "rag_retriever").Logger(),
	}
}

// Rebuild loads the full corpus, embeds every entry, and atomically swaps
// the new snapshot in. Called at startup and synchronously after every
// knowledge-base mutation.
func (r *Retriever) Rebuild(ctx context.Context) error {
	entries, err := r.knowledge.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list knowledge base: %w", err)
	}

	if len(entries) == 0 {
		r.index.Replace(nil)
		r.log.Info().Msg("knowledge base empty, index cleared")
		return nil
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Content
	}

	vectors, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed knowledge base: %w", err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("embedding count mismatch: %d entries, %d vectors", len(entries), len(vectors))
	}

	indexed := make([]indexedEntry, len(entries))
	for i, entry := range entries {
		indexed[i] = indexedEntry{
			id:      entry.ID,
			content: entry.Content,
			vector:  vectors[i],
		}
	}

	r.index.Replace(indexed)
	r.log.Info().Int("entries", len(indexed)).Msg("vector index rebuilt")
	return nil
}

// TopMatch returns the content of the knowledge-base entry nearest to the
// query, or the empty string when the index is empty or the query cannot
// be embedded.
func (r *Retriever) TopMatch(ctx context.Context, query string) string {
	if r.index.Size() == 0 {
		return ""
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		r.log.Warn().Err(err).Msg("failed to embed query")
		return ""
	}
	if len(vector) == 0 {
		return ""
	}

	content, ok := r.index.Nearest(vector)
	if !ok {
		return ""
	}
	return content
}
