package reviewRepo

import (
	"context"

	"lawease/models"
)

// ReviewStore defines persistence for booking reviews.
type ReviewStore interface {
	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	// RatingsForLawyer returns the rating of every review the lawyer has received.
	RatingsForLawyer(ctx context.Context, lawyerID string) ([]int, error)
	ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]models.Review, error)
}
