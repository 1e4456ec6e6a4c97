package review

import (
	"context"
	"errors"
	"strings"

	"lawease/database"
	"lawease/models"
	"lawease/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating   = utils.NewValidation("Rating must be between 1 and 5")
	ErrBookingNotFound = utils.NewNotFound("Booking not found")
	ErrNotClient       = utils.NewForbidden("Only the client of this booking can review it")
	ErrNotCompleted    = utils.NewDomain("Can only review completed bookings")
	ErrAlreadyReviewed = utils.NewDomain("Review already exists for this booking")
)

// Submit stores a review for a completed booking and recomputes the lawyer's
// average rating over every review they have received.
func (s *DefaultReviewService) Submit(ctx context.Context, actor models.Actor, req models.SubmitReviewRequest) (*models.Review, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	if req.Rating < models.MinRating || req.Rating > models.MaxRating {
		return nil, ErrInvalidRating
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, utils.NewInternal("failed to load booking", err)
	}
	if booking.ClientID != actor.UserID {
		return nil, ErrNotClient
	}
	if booking.Status != models.BookingCompleted {
		return nil, ErrNotCompleted
	}

	exists, err := s.reviews.ExistsForBooking(ctx, booking.ID)
	if err != nil {
		return nil, utils.NewInternal("failed to check existing review", err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		BookingID: booking.ID,
		LawyerID:  booking.LawyerID,
		ClientID:  actor.UserID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		// A concurrent submit for the same booking lost the race on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, utils.NewInternal("failed to save review", err)
	}

	if err := s.recomputeRating(ctx, booking.LawyerID); err != nil {
		return nil, utils.NewInternal("failed to update lawyer rating", err)
	}
	return review, nil
}

func (s *DefaultReviewService) recomputeRating(ctx context.Context, lawyerID string) error {
	ratings, err := s.reviews.RatingsForLawyer(ctx, lawyerID)
	if err != nil {
		return err
	}
	avg := Mean(ratings)
	if err := s.lawyers.UpdateRating(ctx, lawyerID, avg, len(ratings)); err != nil {
		return err
	}
	s.logger.Info("lawyer rating updated",
		zap.String("lawyerID", lawyerID),
		zap.Float64("average", avg),
		zap.Int("reviews", len(ratings)))
	return nil
}

// Mean is the unweighted average of ratings rounded to two decimals, or 0
// when there are none.
func Mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return utils.RoundMoney(float64(sum) / float64(len(ratings)))
}

func (s *DefaultReviewService) ListForLawyer(ctx context.Context, lawyerID string, limit int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	reviews, err := s.reviews.ListByLawyer(ctx, lawyerID, limit)
	if err != nil {
		return nil, utils.NewInternal("failed to list reviews", err)
	}
	return reviews, nil
}
