package contactRepo

import (
	"context"
	"fmt"

	"lawease/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ContactStore persists contact-form submissions.
type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

// MongoContactRepo implements ContactStore using MongoDB.
type MongoContactRepo struct {
	coll *mongo.Collection
}

func NewMongoContactRepo(db *mongo.Database) ContactStore {
	return &MongoContactRepo{coll: db.Collection("contact_messages")}
}

func (r *MongoContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}
