package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is the client's rating of a completed booking.
type Review struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID string    `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	LawyerID  string    `gorm:"type:uuid;index;not null" json:"lawyer_id"`
	ClientID  string    `gorm:"type:uuid;index;not null" json:"client_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type SubmitReviewRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"max=2000"`
}
