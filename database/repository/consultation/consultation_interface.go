package consultationRepo

import (
	"context"

	"lawease/models"
)

// ConsultationStore persists AI-mentor consultations and the knowledge
// entries derived from them.
type ConsultationStore interface {
	Create(ctx context.Context, c *models.Consultation) error
	GetByID(ctx context.Context, id string) (*models.Consultation, error)
	Update(ctx context.Context, c *models.Consultation) error
	ListByUser(ctx context.Context, userID string) ([]models.Consultation, error)
	CreateKnowledgeEntry(ctx context.Context, entry *models.KnowledgeEntry) error
}
