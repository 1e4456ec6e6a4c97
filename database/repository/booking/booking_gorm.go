package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"lawease/database"
	"lawease/models"

	"gorm.io/gorm"
)

// GormBookingRepo implements BookingStore using GORM.
type GormBookingRepo struct {
	db *gorm.DB
}

func NewGormBookingRepo(db *gorm.DB) BookingStore {
	return &GormBookingRepo{db: db}
}

func (r *GormBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *GormBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *GormBookingRepo) ExistsActive(ctx context.Context, lawyerID, date, time string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("lawyer_id = ? AND date = ? AND time = ? AND status IN ?", lawyerID, date, time, models.OccupyingStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check booking conflict: %w", err)
	}
	return count > 0, nil
}

func (r *GormBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	return nil
}

func (r *GormBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).
		Order("date DESC, time DESC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for client %s: %w", clientID, err)
	}
	return bookings, nil
}

func (r *GormBookingRepo) ListByLawyer(ctx context.Context, lawyerID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).Where("lawyer_id = ?", lawyerID).
		Order("date DESC, time DESC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for lawyer %s: %w", lawyerID, err)
	}
	return bookings, nil
}
