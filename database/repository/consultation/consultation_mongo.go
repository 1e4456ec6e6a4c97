package consultationRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lawease/database"
	"lawease/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConsultationRepo implements ConsultationStore using MongoDB.
type MongoConsultationRepo struct {
	consultations *mongo.Collection
	knowledge     *mongo.Collection
}

func NewMongoConsultationRepo(db *mongo.Database) ConsultationStore {
	repo := &MongoConsultationRepo{
		consultations: db.Collection("consultations"),
		knowledge:     db.Collection("knowledge_entries"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("consultation indexes: %v", err)
	}
	return repo
}

func (r *MongoConsultationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.consultations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create consultation indexes: %w", err)
	}

	_, err = r.knowledge.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "consultation_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "keywords", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create knowledge indexes: %w", err)
	}
	return nil
}

func (r *MongoConsultationRepo) Create(ctx context.Context, c *models.Consultation) error {
	if _, err := r.consultations.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

func (r *MongoConsultationRepo) GetByID(ctx context.Context, id string) (*models.Consultation, error) {
	var c models.Consultation
	err := r.consultations.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation %s: %w", id, err)
	}
	return &c, nil
}

// updateDocument sets every field, so cleared values such as a previous
// failure reason are written back as empty.
func updateDocument(c *models.Consultation) bson.M {
	return bson.M{"$set": c}
}

func (r *MongoConsultationRepo) Update(ctx context.Context, c *models.Consultation) error {
	c.UpdatedAt = time.Now()
	res, err := r.consultations.UpdateOne(ctx, bson.M{"id": c.ID}, updateDocument(c))
	if err != nil {
		return fmt.Errorf("failed to update consultation %s: %w", c.ID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoConsultationRepo) ListByUser(ctx context.Context, userID string) ([]models.Consultation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100)
	cursor, err := r.consultations.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations for %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	consultations := []models.Consultation{}
	if err := cursor.All(ctx, &consultations); err != nil {
		return nil, fmt.Errorf("failed to decode consultations: %w", err)
	}
	return consultations, nil
}

func (r *MongoConsultationRepo) CreateKnowledgeEntry(ctx context.Context, entry *models.KnowledgeEntry) error {
	if _, err := r.knowledge.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create knowledge entry: %w", err)
	}
	return nil
}
