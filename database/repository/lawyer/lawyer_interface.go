package lawyerRepo

import (
	"context"

	"lawease/models"
)

// LawyerProfileStore defines persistence for lawyer profiles and their weekly slots.
type LawyerProfileStore interface {
	// CreateWithSlots inserts the profile and its slots and promotes the owner
	// to the LAWYER role, all in one transaction.
	CreateWithSlots(ctx context.Context, profile *models.LawyerProfile) error
	// UpdateWithSlots saves profile fields and replaces every slot in one transaction.
	UpdateWithSlots(ctx context.Context, profile *models.LawyerProfile, slots []models.AvailabilitySlot) error
	GetByID(ctx context.Context, id string) (*models.LawyerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.LawyerProfile, error)
	ActiveSlots(ctx context.Context, lawyerID string, weekday int) ([]models.AvailabilitySlot, error)
	Search(ctx context.Context, criteria models.LawyerSearch) ([]models.LawyerProfile, error)
	IncrementBookings(ctx context.Context, id string) error
	RecordCompletion(ctx context.Context, id string, earnings float64) error
	UpdateRating(ctx context.Context, id string, average float64, totalReviews int) error
	SetVerified(ctx context.Context, id string, verified bool) error
}
