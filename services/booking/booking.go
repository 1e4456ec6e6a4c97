package booking

import (
	"context"
	"errors"
	"strings"

	"lawease/database"
	"lawease/models"
	"lawease/services/availability"
	"lawease/utils"

	"go.uber.org/zap"
)

// Create books a consultation in PENDING state. The slot conflict check and
// the insert are separate statements, so two identical concurrent requests
// can both succeed.
func (s *DefaultBookingService) Create(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.Booking, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	if strings.TrimSpace(req.LawyerID) == "" || strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return nil, utils.NewValidation("Lawyer, date and time are required")
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = models.DefaultDurationMinutes
	}
	slotTime, err := availability.NormalizeTime(req.Time)
	if err != nil {
		return nil, err
	}
	if _, err := availability.ParseDate(req.Date); err != nil {
		return nil, err
	}

	lawyer, err := s.lawyers.GetByID(ctx, req.LawyerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, availability.ErrLawyerNotFound
	}
	if err != nil {
		return nil, utils.NewInternal("failed to load lawyer", err)
	}
	if lawyer.UserID == actor.UserID {
		return nil, ErrSelfBooking
	}

	booking := &models.Booking{
		ClientID:        actor.UserID,
		LawyerID:        lawyer.ID,
		Date:            req.Date,
		Time:            slotTime,
		DurationMinutes: duration,
		Status:          models.BookingPending,
		Currency:        lawyer.Currency,
		ClientMessage:   strings.TrimSpace(req.ClientMessage),
	}
	startsAt, err := booking.StartsAt(s.location)
	if err != nil {
		return nil, utils.NewValidation("Invalid booking date or time")
	}
	if !startsAt.After(s.now()) {
		return nil, ErrPastSlot
	}

	if err := s.checker.CheckProfile(ctx, lawyer, req.Date, slotTime); err != nil {
		return nil, err
	}

	price := Quote(lawyer.HourlyRate, duration, s.feeRate)
	booking.HourlyRate = price.HourlyRate
	booking.BaseAmount = price.BaseAmount
	booking.PlatformFee = price.PlatformFee
	booking.TotalAmount = price.TotalAmount

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, utils.NewInternal("failed to create booking", err)
	}
	if err := s.lawyers.IncrementBookings(ctx, lawyer.ID); err != nil {
		s.logger.Warn("failed to increment lawyer bookings",
			zap.String("lawyerID", lawyer.ID), zap.Error(err))
	}

	s.logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("lawyerID", lawyer.ID),
		zap.String("clientID", actor.UserID))

	s.notifier.BookingCreated(ctx, s.partiesFor(ctx, booking, lawyer))
	return booking, nil
}
