package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
)

// fakeEmbeddingClient maps texts to fixed vectors.
type fakeEmbeddingClient struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbeddingClient) Embedding(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func (f *fakeEmbeddingClient) EmbeddingBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = f.vectors[text]
	}
	return result, nil
}

// fakeKnowledgeRepo holds entries in memory.
type fakeKnowledgeRepo struct {
	entries []domain.KnowledgeEntry
	err     error
}

func (f *fakeKnowledgeRepo) Upsert(ctx context.Context, entry domain.KnowledgeEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeKnowledgeRepo) ListAll(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	return f.entries, f.err
}

func TestTopMatchEmptyIndex(t *testing.T) {
	r := NewRetriever(&fakeKnowledgeRepo{}, NewEmbedder(&fakeEmbeddingClient{}), zerolog.Nop())

	if got := r.TopMatch(context.Background(), "anything"); got != "" {
		t.Errorf("expected empty string on empty index, got %q", got)
	}
}

func TestTopMatchSingleEntry(t *testing.T) {
	repo := &fakeKnowledgeRepo{entries: []domain.KnowledgeEntry{
		{ID: "kb1", Content: "Password reset instructions."},
	}}
	client := &fakeEmbeddingClient{vectors: map[string][]float32{
		"Password reset instructions.": {1, 0, 0},
		"anything at all":              {0, 1, 0},
	}}
	r := NewRetriever(repo, NewEmbedder(client), zerolog.Nop())

	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	// With a single entry, any query returns its content.
	if got := r.TopMatch(context.Background(), "anything at all"); got != "Password reset instructions." {
		t.Errorf("expected the single entry's content, got %q", got)
	}
}

func TestTopMatchNearestNeighbor(t *testing.T) {
	repo := &fakeKnowledgeRepo{entries: []domain.KnowledgeEntry{
		{ID: "kb1", Content: "Billing help."},
		{ID: "kb2", Content: "Login help."},
	}}
	client := &fakeEmbeddingClient{vectors: map[string][]float32{
		"Billing help.":        {1, 0},
		"Login help.":          {0, 1},
		"I cannot log in":      {0.1, 0.9},
		"charged twice":        {0.9, 0.1},
	}}
	r := NewRetriever(repo, NewEmbedder(client), zerolog.Nop())

	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	if got := r.TopMatch(context.Background(), "I cannot log in"); got != "Login help." {
		t.Errorf("expected login passage, got %q", got)
	}
	if got := r.TopMatch(context.Background(), "charged twice"); got != "Billing help." {
		t.Errorf("expected billing passage, got %q", got)
	}
}

func TestRebuildReplacesPriorContents(t *testing.T) {
	repo := &fakeKnowledgeRepo{entries: []domain.KnowledgeEntry{
		{ID: "kb1", Content: "Old passage."},
	}}
	client := &fakeEmbeddingClient{vectors: map[string][]float32{
		"Old passage.": {1, 0},
		"New passage.": {1, 0},
		"query":        {1, 0},
	}}
	r := NewRetriever(repo, NewEmbedder(client), zerolog.Nop())

	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	repo.entries = []domain.KnowledgeEntry{{ID: "kb2", Content: "New passage."}}
	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("second rebuild failed: %v", err)
	}

	if got := r.TopMatch(context.Background(), "query"); got != "New passage." {
		t.Errorf("expected rebuilt index to discard old contents, got %q", got)
	}
}

func TestRebuildEmptyCorpusClearsIndex(t *testing.T) {
	repo := &fakeKnowledgeRepo{entries: []domain.KnowledgeEntry{
		{ID: "kb1", Content: "Passage."},
	}}
	client := &fakeEmbeddingClient{vectors: map[string][]float32{
		"Passage.": {1, 0},
		"query":    {1, 0},
	}}
	r := NewRetriever(repo, NewEmbedder(client), zerolog.Nop())

	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	repo.entries = nil
	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("empty rebuild failed: %v", err)
	}

	if got := r.TopMatch(context.Background(), "query"); got != "" {
		t.Errorf("expected empty string after clearing corpus, got %q", got)
	}
}

func TestTopMatchEmbeddingFailure(t *testing.T) {
	repo := &fakeKnowledgeRepo{entries: []domain.KnowledgeEntry{
		{ID: "kb1", Content: "Passage."},
	}}
	client := &fakeEmbeddingClient{vectors: map[string][]float32{
		"Passage.": {1, 0},
	}}
	r := NewRetriever(repo, NewEmbedder(client), zerolog.Nop())
	if err := r.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	client.err = errors.New("embedding endpoint down")
	if got := r.TopMatch(context.Background(), "query"); got != "" {
		t.Errorf("expected empty string on embedding failure, got %q", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, expected: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, expected: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, expected: -1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
