package availability

import (
	"context"
	"errors"
	"fmt"

	"lawease/database"
	bookingRepo "lawease/database/repository/booking"
	lawyerRepo "lawease/database/repository/lawyer"
	"lawease/models"
	"lawease/utils"
)

var (
	ErrLawyerNotFound    = utils.NewNotFound("Lawyer not found")
	ErrNotAccepting      = utils.NewDomain("Lawyer is not accepting bookings")
	ErrSlotNotAvailable  = utils.NewDomain("This time slot is not available")
	ErrSlotAlreadyBooked = utils.NewDomain("This time slot is already booked")
)

// Checker decides whether a (lawyer, date, time) can take a new booking.
type Checker struct {
	Lawyers  lawyerRepo.LawyerProfileStore
	Bookings bookingRepo.BookingStore
}

func NewChecker(lawyers lawyerRepo.LawyerProfileStore, bookings bookingRepo.BookingStore) *Checker {
	return &Checker{Lawyers: lawyers, Bookings: bookings}
}

// Check loads the lawyer and runs CheckProfile.
func (c *Checker) Check(ctx context.Context, lawyerID, date, hhmm string) error {
	profile, err := c.Lawyers.GetByID(ctx, lawyerID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrLawyerNotFound
	}
	if err != nil {
		return utils.NewInternal("failed to load lawyer", err)
	}
	return c.CheckProfile(ctx, profile, date, hhmm)
}

// CheckProfile requires an active weekly slot covering the date's weekday and
// time, then rejects when a PENDING or CONFIRMED booking already sits at the
// exact same (lawyer, date, time). Booking durations are not compared, so a
// 90 minute booking does not block the following slot.
func (c *Checker) CheckProfile(ctx context.Context, profile *models.LawyerProfile, date, hhmm string) error {
	if !profile.IsAvailable {
		return ErrNotAccepting
	}

	weekday, err := Weekday(date)
	if err != nil {
		return err
	}
	t, err := NormalizeTime(hhmm)
	if err != nil {
		return err
	}

	slots, err := c.Lawyers.ActiveSlots(ctx, profile.ID, weekday)
	if err != nil {
		return utils.NewInternal("failed to load availability", err)
	}
	covered := false
	for _, s := range slots {
		if s.Covers(weekday, t) {
			covered = true
			break
		}
	}
	if !covered {
		return ErrSlotNotAvailable
	}

	taken, err := c.Bookings.ExistsActive(ctx, profile.ID, date, t)
	if err != nil {
		return utils.NewInternal(fmt.Sprintf("failed to check bookings for %s", profile.ID), err)
	}
	if taken {
		return ErrSlotAlreadyBooked
	}
	return nil
}
