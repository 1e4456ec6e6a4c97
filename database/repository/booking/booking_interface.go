package bookingRepo

import (
	"context"

	"lawease/models"
)

// BookingStore defines persistence for bookings.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ExistsActive reports whether a PENDING or CONFIRMED booking occupies
	// exactly (lawyerID, date, time).
	ExistsActive(ctx context.Context, lawyerID, date, time string) (bool, error)
	Update(ctx context.Context, booking *models.Booking) error
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	ListByLawyer(ctx context.Context, lawyerID string) ([]models.Booking, error)
}
