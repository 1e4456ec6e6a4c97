package review

import (
	"context"

	bookingRepo "lawease/database/repository/booking"
	lawyerRepo "lawease/database/repository/lawyer"
	reviewRepo "lawease/database/repository/review"
	"lawease/models"

	"go.uber.org/zap"
)

// ReviewService accepts client reviews and keeps lawyer ratings current.
type ReviewService interface {
	Submit(ctx context.Context, actor models.Actor, req models.SubmitReviewRequest) (*models.Review, error)
	ListForLawyer(ctx context.Context, lawyerID string, limit int) ([]models.Review, error)
}

type DefaultReviewService struct {
	reviews  reviewRepo.ReviewStore
	bookings bookingRepo.BookingStore
	lawyers  lawyerRepo.LawyerProfileStore
	logger   *zap.Logger
}

func NewReviewService(reviews reviewRepo.ReviewStore, bookings bookingRepo.BookingStore, lawyers lawyerRepo.LawyerProfileStore, logger *zap.Logger) *DefaultReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultReviewService{
		reviews:  reviews,
		bookings: bookings,
		lawyers:  lawyers,
		logger:   logger,
	}
}
