package domain

// KnowledgeEntry is one free-text passage of the support knowledge base.
// The knowledge repository owns the authoritative content; the vector index
// only ever holds a disposable embedded copy.
type KnowledgeEntry struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
