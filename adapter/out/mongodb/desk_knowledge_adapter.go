// Package mongodb implements MongoDB adapters for the application.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/out"
	"helpdesk_server/pkg/apperr"
)

const collectionKnowledge = "knowledge_base"

// KnowledgeAdapter implements out.KnowledgeRepository using MongoDB.
type KnowledgeAdapter struct {
	collection *mongo.Collection
}

var _ out.KnowledgeRepository = (*KnowledgeAdapter)(nil)

// NewKnowledgeAdapter creates a new MongoDB knowledge adapter.
func NewKnowledgeAdapter(db *mongo.Database) *KnowledgeAdapter {
	return &KnowledgeAdapter{collection: db.Collection(collectionKnowledge)}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *KnowledgeAdapter) EnsureIndexes(ctx context.Context) error {
	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// knowledgeDocument represents the MongoDB document structure.
type knowledgeDocument struct {
	ID      string `bson:"id"`
	Content string `bson:"content"`
}

// Upsert stores or replaces the entry under its id.
func (a *KnowledgeAdapter) Upsert(ctx context.Context, entry domain.KnowledgeEntry) error {
	doc := knowledgeDocument{ID: entry.ID, Content: entry.Content}

	opts := options.Replace().SetUpsert(true)
	if _, err := a.collection.ReplaceOne(ctx, bson.M{"id": entry.ID}, doc, opts); err != nil {
		return apperr.DatabaseError("upsert knowledge entry", err)
	}

	return nil
}

// ListAll returns the full knowledge base.
func (a *KnowledgeAdapter) ListAll(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	cursor, err := a.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.DatabaseError("list knowledge base", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.KnowledgeEntry
	for cursor.Next(ctx) {
		var doc knowledgeDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperr.DatabaseError("decode knowledge entry", err)
		}
		entries = append(entries, domain.KnowledgeEntry{ID: doc.ID, Content: doc.Content})
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.DatabaseError("iterate knowledge base", err)
	}

	return entries, nil
}
