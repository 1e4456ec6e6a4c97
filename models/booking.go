package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Occupying statuses block the (lawyer, date, time) slot.
var OccupyingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultDurationMinutes = 60
)

// Booking is one scheduled consultation between a client and a lawyer.
type Booking struct {
	ID                 string         `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID           string         `gorm:"type:uuid;index;not null" json:"client_id"`
	LawyerID           string         `gorm:"type:uuid;index:idx_booking_slot;not null" json:"lawyer_id"`
	Date               string         `gorm:"type:varchar(10);index:idx_booking_slot;not null" json:"date"` // "YYYY-MM-DD"
	Time               string         `gorm:"type:varchar(5);index:idx_booking_slot;not null" json:"time"`  // "HH:MM"
	DurationMinutes    int            `gorm:"not null;default:60" json:"duration_minutes"`
	Status             BookingStatus  `gorm:"type:varchar(16);index;not null" json:"status"`
	HourlyRate         float64        `gorm:"not null" json:"hourly_rate"`
	BaseAmount         float64        `gorm:"not null" json:"base_amount"`
	PlatformFee        float64        `gorm:"not null" json:"platform_fee"`
	TotalAmount        float64        `gorm:"not null" json:"total_amount"`
	Currency           string         `gorm:"type:varchar(8);not null" json:"currency"`
	ClientMessage      string         `gorm:"type:text" json:"client_message,omitempty"`
	LawyerNote         string         `gorm:"type:text" json:"lawyer_note,omitempty"`
	CancellationReason string         `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledBy        string         `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	PaymentIntentID    string         `json:"payment_intent_id,omitempty"`
	ConfirmedAt        *time.Time     `json:"confirmed_at,omitempty"`
	CompletedAt        *time.Time     `json:"completed_at,omitempty"`
	CancelledAt        *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// StartsAt combines the stored date and time in loc.
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, b.Date+" "+b.Time, loc)
}

// Terminal reports whether no further transitions are expected.
func (b *Booking) Terminal() bool {
	switch b.Status {
	case BookingCompleted, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

type CreateBookingRequest struct {
	LawyerID        string `json:"lawyer_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	ClientMessage   string `json:"client_message" binding:"max=2000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
	Note   string        `json:"note" binding:"max=2000"`
}

// PaymentIntent is what the client needs to confirm payment in the browser.
type PaymentIntent struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"client_secret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// ReminderPayload is the queued body of a booking reminder.
type ReminderPayload struct {
	BookingID string `json:"booking_id"`
	FireDate  string `json:"fire_date"`
}
