package rag

import (
	"math"
	"sync"
)

// indexedEntry is one embedded knowledge-base passage.
type indexedEntry struct {
	id      string
	content string
	vector  []float32
}

// Index is an in-memory nearest-neighbor structure over embedded
// knowledge-base entries. Rebuilds replace the whole snapshot at once:
// concurrent readers see either the old or the new index, never a
// partially populated one.
type Index struct {
	mu      sync.RWMutex
	entries []indexedEntry
}

func NewIndex() *Index {
	return &Index{}
}

// Replace swaps in a freshly built snapshot, discarding all prior contents.
func (ix *Index) Replace(entries []indexedEntry) {
	ix.mu.Lock()
	ix.entries = entries
	ix.mu.Unlock()
}

// Size returns the number of indexed entries.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Nearest returns the content of the single entry most similar to the query
// vector. ok is false when the index is empty.
func (ix *Index) Nearest(vector []float32) (content string, ok bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.entries) == 0 {
		return "", false
	}

	best := -1
	bestScore := math.Inf(-1)
	for i := range ix.entries {
		score := cosineSimilarity(ix.entries[i].vector, vector)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	return ix.entries[best].content, true
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
