// Package mongodb implements MongoDB adapters for the application.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/out"
	"helpdesk_server/pkg/apperr"
)

// =============================================================================
// MongoDB Ticket Adapter
// =============================================================================

const collectionTickets = "tickets"

// TicketAdapter implements out.TicketRepository using MongoDB.
type TicketAdapter struct {
	db         *mongo.Database
	collection *mongo.Collection
}

var _ out.TicketRepository = (*TicketAdapter)(nil)

// NewTicketAdapter creates a new MongoDB ticket adapter.
func NewTicketAdapter(db *mongo.Database) *TicketAdapter {
	return &TicketAdapter{
		db:         db,
		collection: db.Collection(collectionTickets),
	}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *TicketAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// =============================================================================
// Document Model
// =============================================================================

// ticketDocument represents the MongoDB document structure.
type ticketDocument struct {
	ID        string    `bson:"id"`
	Sender    string    `bson:"sender"`
	Subject   string    `bson:"subject"`
	Body      string    `bson:"body"`
	Timestamp time.Time `bson:"timestamp"`
	Status    string    `bson:"status"`

	CustomerName   string `bson:"customer_name"`
	RequestSummary string `bson:"request_summary"`
	Sentiment      string `bson:"sentiment"`
	Priority       string `bson:"priority"`
	ContactDetails string `bson:"contact_details"`

	AIResponse    string `bson:"ai_response"`
	FinalResponse string `bson:"final_response,omitempty"`
}

func toDocument(t *domain.Ticket) ticketDocument {
	return ticketDocument{
		ID:             t.ID,
		Sender:         t.Sender,
		Subject:        t.Subject,
		Body:           t.Body,
		Timestamp:      t.Timestamp,
		Status:         string(t.Status),
		CustomerName:   t.ExtractedInfo.CustomerName,
		RequestSummary: t.ExtractedInfo.RequestSummary,
		Sentiment:      string(t.ExtractedInfo.Sentiment),
		Priority:       string(t.ExtractedInfo.Priority),
		ContactDetails: t.ExtractedInfo.ContactDetails,
		AIResponse:     t.AIResponse,
		FinalResponse:  t.FinalResponse,
	}
}

func fromDocument(doc ticketDocument) domain.Ticket {
	return domain.Ticket{
		ID:        doc.ID,
		Sender:    doc.Sender,
		Subject:   doc.Subject,
		Body:      doc.Body,
		Timestamp: doc.Timestamp,
		Status:    domain.TicketStatus(doc.Status),
		ExtractedInfo: domain.ExtractedInfo{
			CustomerName:   doc.CustomerName,
			RequestSummary: doc.RequestSummary,
			Sentiment:      domain.Sentiment(doc.Sentiment),
			Priority:       domain.Priority(doc.Priority),
			ContactDetails: doc.ContactDetails,
		},
		AIResponse:    doc.AIResponse,
		FinalResponse: doc.FinalResponse,
	}
}

// =============================================================================
// Operations
// =============================================================================

// Insert stores a new ticket and returns the assigned id.
func (a *TicketAdapter) Insert(ctx context.Context, t *domain.Ticket) (string, error) {
	doc := toDocument(t)
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if _, err := a.collection.InsertOne(ctx, doc); err != nil {
		return "", apperr.DatabaseError("insert ticket", err)
	}

	return doc.ID, nil
}

// GetByID retrieves a ticket by id.
func (a *TicketAdapter) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var doc ticketDocument

	err := a.collection.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("ticket")
		}
		return nil, apperr.DatabaseError("get ticket", err)
	}

	t := fromDocument(doc)
	return &t, nil
}

// ListAll returns every stored ticket.
func (a *TicketAdapter) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	cursor, err := a.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.DatabaseError("list tickets", err)
	}
	defer cursor.Close(ctx)

	var tickets []domain.Ticket
	for cursor.Next(ctx) {
		var doc ticketDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, apperr.DatabaseError("decode ticket", err)
		}
		tickets = append(tickets, fromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.DatabaseError("iterate tickets", err)
	}

	return tickets, nil
}

// MarkResolved atomically sets status=resolved and the final response.
func (a *TicketAdapter) MarkResolved(ctx context.Context, id, finalResponse string) error {
	update := bson.M{"$set": bson.M{
		"status":         string(domain.StatusResolved),
		"final_response": finalResponse,
	}}

	result, err := a.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return apperr.DatabaseError("resolve ticket", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("ticket")
	}

	return nil
}

// Count returns the number of stored tickets.
func (a *TicketAdapter) Count(ctx context.Context) (int64, error) {
	count, err := a.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.DatabaseError("count tickets", err)
	}
	return count, nil
}

// Ping verifies the underlying connection is alive.
func (a *TicketAdapter) Ping(ctx context.Context) error {
	if err := a.db.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}
