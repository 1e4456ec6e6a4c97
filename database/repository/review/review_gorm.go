package reviewRepo

import (
	"context"
	"fmt"

	"lawease/models"

	"gorm.io/gorm"
)

// GormReviewRepo implements ReviewStore using GORM.
type GormReviewRepo struct {
	db *gorm.DB
}

func NewGormReviewRepo(db *gorm.DB) ReviewStore {
	return &GormReviewRepo{db: db}
}

func (r *GormReviewRepo) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("booking_id = ?", bookingID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check review for booking %s: %w", bookingID, err)
	}
	return count > 0, nil
}

func (r *GormReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *GormReviewRepo) RatingsForLawyer(ctx context.Context, lawyerID string) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("lawyer_id = ?", lawyerID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for %s: %w", lawyerID, err)
	}
	return ratings, nil
}

func (r *GormReviewRepo) ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]models.Review, error) {
	var reviews []models.Review
	q := r.db.WithContext(ctx).Where("lawyer_id = ?", lawyerID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for %s: %w", lawyerID, err)
	}
	return reviews, nil
}
