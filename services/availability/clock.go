package availability

import (
	"fmt"
	"time"

	"lawease/models"
	"lawease/utils"
)

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return time.Time{}, utils.NewValidation("Date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// NormalizeTime parses a time of day and returns it zero-padded as "HH:MM",
// so "9:05" becomes "09:05".
func NormalizeTime(hhmm string) (string, error) {
	t, err := time.Parse(models.TimeLayout, hhmm)
	if err != nil {
		return "", utils.NewValidation("Time must be in HH:MM format")
	}
	return t.Format(models.TimeLayout), nil
}

// Weekday returns 0 (Sunday) to 6 (Saturday) for a "YYYY-MM-DD" date.
func Weekday(date string) (int, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}

// BuildSlots validates slot input and converts it into storable slots.
// Overlapping windows are allowed.
func BuildSlots(inputs []models.SlotInput) ([]models.AvailabilitySlot, error) {
	slots := make([]models.AvailabilitySlot, 0, len(inputs))
	for i, in := range inputs {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return nil, utils.NewValidation(fmt.Sprintf("Availability #%d: day_of_week must be between 0 and 6", i+1))
		}
		start, err := NormalizeTime(in.StartTime)
		if err != nil {
			return nil, utils.NewValidation(fmt.Sprintf("Availability #%d: invalid start time", i+1))
		}
		end, err := NormalizeTime(in.EndTime)
		if err != nil {
			return nil, utils.NewValidation(fmt.Sprintf("Availability #%d: invalid end time", i+1))
		}
		if start >= end {
			return nil, utils.NewValidation(fmt.Sprintf("Availability #%d: start time must be before end time", i+1))
		}
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		slots = append(slots, models.AvailabilitySlot{
			DayOfWeek: in.DayOfWeek,
			StartTime: start,
			EndTime:   end,
			IsActive:  active,
		})
	}
	return slots, nil
}
