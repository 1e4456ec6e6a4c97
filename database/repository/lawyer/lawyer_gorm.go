package lawyerRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lawease/database"
	"lawease/models"

	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// GormLawyerRepo implements LawyerProfileStore using GORM.
type GormLawyerRepo struct {
	db *gorm.DB
}

func NewGormLawyerRepo(db *gorm.DB) LawyerProfileStore {
	return &GormLawyerRepo{db: db}
}

func (r *GormLawyerRepo) CreateWithSlots(ctx context.Context, profile *models.LawyerProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slots := profile.Availability
		profile.Availability = nil
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create lawyer profile: %w", err)
		}
		for i := range slots {
			slots[i].LawyerID = profile.ID
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return fmt.Errorf("failed to create availability: %w", err)
			}
		}
		profile.Availability = slots

		res := tx.Model(&models.User{}).Where("id = ?", profile.UserID).Update("role", models.RoleLawyer)
		if res.Error != nil {
			return fmt.Errorf("failed to promote user %s: %w", profile.UserID, res.Error)
		}
		if res.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return nil
	})
}

func (r *GormLawyerRepo) UpdateWithSlots(ctx context.Context, profile *models.LawyerProfile, slots []models.AvailabilitySlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.LawyerProfile{}).Where("id = ?", profile.ID).
			Select("bar_number", "years_experience", "specializations", "languages", "bio",
				"city", "hourly_rate", "currency", "is_available").
			Updates(profile).Error
		if err != nil {
			return fmt.Errorf("failed to update lawyer profile %s: %w", profile.ID, err)
		}

		if err := tx.Where("lawyer_id = ?", profile.ID).Delete(&models.AvailabilitySlot{}).Error; err != nil {
			return fmt.Errorf("failed to clear availability for %s: %w", profile.ID, err)
		}
		for i := range slots {
			slots[i].ID = ""
			slots[i].LawyerID = profile.ID
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return fmt.Errorf("failed to insert availability for %s: %w", profile.ID, err)
			}
		}
		profile.Availability = slots
		return nil
	})
}

func (r *GormLawyerRepo) first(ctx context.Context, query string, arg string) (*models.LawyerProfile, error) {
	var profile models.LawyerProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Availability", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week, start_time")
		}).
		First(&profile, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lawyer profile: %w", err)
	}
	return &profile, nil
}

func (r *GormLawyerRepo) GetByID(ctx context.Context, id string) (*models.LawyerProfile, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormLawyerRepo) GetByUserID(ctx context.Context, userID string) (*models.LawyerProfile, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *GormLawyerRepo) ActiveSlots(ctx context.Context, lawyerID string, weekday int) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("lawyer_id = ? AND day_of_week = ? AND is_active = ?", lawyerID, weekday, true).
		Order("start_time").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get availability for %s: %w", lawyerID, err)
	}
	return slots, nil
}

func (r *GormLawyerRepo) Search(ctx context.Context, c models.LawyerSearch) ([]models.LawyerProfile, error) {
	q := r.db.WithContext(ctx).Model(&models.LawyerProfile{}).Preload("User")

	if c.Specialization != "" {
		q = q.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(specializations) AS s WHERE LOWER(s) = ?)",
			strings.ToLower(c.Specialization))
	}
	if c.City != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(c.City))
	}
	if c.MinRating > 0 {
		q = q.Where("average_rating >= ?", c.MinRating)
	}
	if c.MaxRate > 0 {
		q = q.Where("hourly_rate <= ?", c.MaxRate)
	}
	if c.VerifiedOnly {
		q = q.Where("is_verified = ?", true)
	}

	limit := c.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	var profiles []models.LawyerProfile
	err := q.Order("is_verified DESC, average_rating DESC, total_reviews DESC").
		Limit(limit).Offset(c.Offset).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search lawyers: %w", err)
	}
	return profiles, nil
}

func (r *GormLawyerRepo) updateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.LawyerProfile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update lawyer profile %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *GormLawyerRepo) IncrementBookings(ctx context.Context, id string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"total_bookings": gorm.Expr("total_bookings + 1"),
	})
}

func (r *GormLawyerRepo) RecordCompletion(ctx context.Context, id string, earnings float64) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"completed_bookings": gorm.Expr("completed_bookings + 1"),
		"total_earnings":     gorm.Expr("total_earnings + ?", earnings),
	})
}

func (r *GormLawyerRepo) UpdateRating(ctx context.Context, id string, average float64, totalReviews int) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"average_rating": average,
		"total_reviews":  totalReviews,
	})
}

func (r *GormLawyerRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"is_verified": verified})
}
