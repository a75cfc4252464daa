// Package rag implements retrieval over the embedded knowledge base.
package rag

import "context"

// EmbeddingClient is the slice of llm.Client the embedder needs.
type EmbeddingClient interface {
	Embedding(ctx context.Context, text string) ([]float32, error)
	EmbeddingBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Embedder embeds knowledge-base content and queries.
type Embedder struct {
	client EmbeddingClient
}

func NewEmbedder(client EmbeddingClient) *Embedder {
	return &Embedder{client: client}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.client.Embedding(ctx, text)
}

func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.client.EmbeddingBatch(ctx, texts)
}
