package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is stored as a JSONB array.
type StringList []string

// Value implements driver.Valuer for JSONB
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, (*[]string)(s))
}

// Contains reports whether tag is present, ignoring case.
func (s StringList) Contains(tag string) bool {
	for _, v := range s {
		if strings.EqualFold(v, tag) {
			return true
		}
	}
	return false
}

// LawyerProfile is the marketplace listing owned by a lawyer user.
type LawyerProfile struct {
	ID                string             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string             `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User              *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BarNumber         string             `gorm:"uniqueIndex;not null" json:"bar_number"`
	YearsExperience   int                `json:"years_experience"`
	Specializations   StringList         `gorm:"type:jsonb" json:"specializations"`
	Languages         StringList         `gorm:"type:jsonb" json:"languages"`
	Bio               string             `gorm:"type:text" json:"bio"`
	City              string             `gorm:"index" json:"city"`
	HourlyRate        float64            `gorm:"not null" json:"hourly_rate"`
	Currency          string             `gorm:"type:varchar(8);not null;default:INR" json:"currency"`
	IsVerified        bool               `gorm:"not null;default:false" json:"is_verified"`
	IsAvailable       bool               `gorm:"not null;default:true" json:"is_available"`
	TotalBookings     int                `gorm:"not null;default:0" json:"total_bookings"`
	CompletedBookings int                `gorm:"not null;default:0" json:"completed_bookings"`
	AverageRating     float64            `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews      int                `gorm:"not null;default:0" json:"total_reviews"`
	TotalEarnings     float64            `gorm:"not null;default:0" json:"total_earnings"`
	Availability      []AvailabilitySlot `gorm:"foreignKey:LawyerID;constraint:OnDelete:CASCADE" json:"availability,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (p *LawyerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// AvailabilitySlot is a recurring weekly window, e.g. Monday 09:00-17:00.
type AvailabilitySlot struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	LawyerID  string `gorm:"type:uuid;index;not null" json:"lawyer_id"`
	DayOfWeek int    `gorm:"not null" json:"day_of_week"` // 0 = Sunday
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
}

func (s *AvailabilitySlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// DayName returns the English weekday name of the slot.
func (s AvailabilitySlot) DayName() string {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return ""
	}
	return time.Weekday(s.DayOfWeek).String()
}

// Covers reports whether the slot is active on weekday and start <= hhmm < end.
// Times are zero-padded "HH:MM", so lexical order matches chronological order.
func (s AvailabilitySlot) Covers(weekday int, hhmm string) bool {
	return s.IsActive && s.DayOfWeek == weekday && s.StartTime <= hhmm && hhmm < s.EndTime
}

type SlotInput struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsActive  *bool  `json:"is_active"`
}

// LawyerProfileInput is shared by onboarding and profile edits.
type LawyerProfileInput struct {
	BarNumber       string      `json:"bar_number" binding:"required"`
	YearsExperience int         `json:"years_experience" binding:"min=0,max=80"`
	Specializations []string    `json:"specializations" binding:"required,min=1"`
	Languages       []string    `json:"languages"`
	Bio             string      `json:"bio" binding:"max=4000"`
	City            string      `json:"city"`
	HourlyRate      float64     `json:"hourly_rate" binding:"gt=0"`
	Currency        string      `json:"currency"`
	IsAvailable     *bool       `json:"is_available"`
	Availability    []SlotInput `json:"availability"`
}

// LawyerSearch filters the public directory.
type LawyerSearch struct {
	Specialization string  `form:"specialization"`
	City           string  `form:"city"`
	MinRating      float64 `form:"minRating"`
	MaxRate        float64 `form:"maxRate"`
	VerifiedOnly   bool    `form:"verified"`
	Limit          int     `form:"limit"`
	Offset         int     `form:"offset"`
}

// CacheKey is a stable representation of the search used for Redis keys.
func (s LawyerSearch) CacheKey() string {
	return fmt.Sprintf("spec=%s|city=%s|rating=%.2f|rate=%.2f|verified=%t|limit=%d|offset=%d",
		s.Specialization, s.City, s.MinRating, s.MaxRate, s.VerifiedOnly, s.Limit, s.Offset)
}

// PublicLawyer is the directory view of a profile. It carries no contact
// details of the owning user and no earnings.
type PublicLawyer struct {
	ID                string             `json:"id"`
	User              *PublicUser        `json:"user,omitempty"`
	YearsExperience   int                `json:"years_experience"`
	Specializations   StringList         `json:"specializations"`
	Languages         StringList         `json:"languages"`
	Bio               string             `json:"bio"`
	City              string             `json:"city"`
	HourlyRate        float64            `json:"hourly_rate"`
	Currency          string             `json:"currency"`
	IsVerified        bool               `json:"is_verified"`
	IsAvailable       bool               `json:"is_available"`
	CompletedBookings int                `json:"completed_bookings"`
	AverageRating     float64            `json:"average_rating"`
	TotalReviews      int                `json:"total_reviews"`
	Availability      []AvailabilitySlot `json:"availability,omitempty"`
}

func (p *LawyerProfile) Public() PublicLawyer {
	out := PublicLawyer{
		ID:                p.ID,
		YearsExperience:   p.YearsExperience,
		Specializations:   p.Specializations,
		Languages:         p.Languages,
		Bio:               p.Bio,
		City:              p.City,
		HourlyRate:        p.HourlyRate,
		Currency:          p.Currency,
		IsVerified:        p.IsVerified,
		IsAvailable:       p.IsAvailable,
		CompletedBookings: p.CompletedBookings,
		AverageRating:     p.AverageRating,
		TotalReviews:      p.TotalReviews,
		Availability:      p.Availability,
	}
	if p.User != nil {
		u := p.User.Public()
		out.User = &u
	}
	return out
}

// PublicLawyers maps a search result onto its directory view.
func PublicLawyers(profiles []LawyerProfile) []PublicLawyer {
	out := make([]PublicLawyer, 0, len(profiles))
	for i := range profiles {
		out = append(out, profiles[i].Public())
	}
	return out
}

// LawyerDetail is a public profile with its recent reviews.
type LawyerDetail struct {
	Profile *PublicLawyer `json:"profile"`
	Reviews []Review      `json:"reviews"`
}
