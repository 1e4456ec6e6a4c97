package booking

import (
	"context"
	"strings"

	"lawease/models"
	"lawease/utils"

	"go.uber.org/zap"
)

// Cancel cancels a booking on behalf of its client or lawyer. Finished
// bookings cannot be cancelled, and a CONFIRMED booking needs at least
// CancellationCutoff of notice. PENDING bookings can be cancelled any time.
func (s *DefaultBookingService) Cancel(ctx context.Context, actor models.Actor, id, reason string) (*models.Booking, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	booking, lawyer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.ClientID != actor.UserID && lawyer.UserID != actor.UserID {
		return nil, ErrNotParty
	}
	if booking.Terminal() {
		return nil, ErrAlreadyFinal
	}

	now := s.now()
	if booking.Status == models.BookingConfirmed {
		startsAt, err := booking.StartsAt(s.location)
		if err != nil {
			return nil, utils.NewInternal("stored booking has an invalid date", err)
		}
		if startsAt.Sub(now) < CancellationCutoff {
			return nil, ErrCancellationWindow
		}
	}

	booking.Status = models.BookingCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = actor.UserID
	booking.CancellationReason = strings.TrimSpace(reason)
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, utils.NewInternal("failed to cancel booking", err)
	}

	s.logger.Info("booking cancelled", zap.String("bookingID", booking.ID), zap.String("by", actor.UserID))
	s.notifier.BookingCancelled(ctx, s.partiesFor(ctx, booking, lawyer))
	return booking, nil
}

// UpdateStatus lets the booked lawyer move a booking to any status. Transitions
// are not validated beyond the value being a known status.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.BookingStatus, note string) (*models.Booking, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	status = models.BookingStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	booking, lawyer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if lawyer.UserID != actor.UserID {
		return nil, ErrNotBookedLawyer
	}

	previous := booking.Status
	now := s.now()
	booking.Status = status
	if note = strings.TrimSpace(note); note != "" {
		booking.LawyerNote = note
	}
	switch status {
	case models.BookingConfirmed:
		booking.ConfirmedAt = &now
	case models.BookingCompleted:
		booking.CompletedAt = &now
	case models.BookingCancelled:
		booking.CancelledAt = &now
		booking.CancelledBy = actor.UserID
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, utils.NewInternal("failed to update booking", err)
	}

	if status == models.BookingCompleted && previous != models.BookingCompleted {
		if err := s.lawyers.RecordCompletion(ctx, lawyer.ID, booking.BaseAmount); err != nil {
			s.logger.Warn("failed to record completion", zap.String("lawyerID", lawyer.ID), zap.Error(err))
		}
	}
	if status == models.BookingConfirmed && s.reminders != nil {
		if startsAt, err := booking.StartsAt(s.location); err == nil {
			if err := s.reminders.ScheduleReminder(ctx, booking, startsAt); err != nil {
				s.logger.Warn("failed to schedule reminder", zap.String("bookingID", booking.ID), zap.Error(err))
			}
		}
	}

	s.logger.Info("booking status updated",
		zap.String("bookingID", booking.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)))

	parties := s.partiesFor(ctx, booking, lawyer)
	if status == models.BookingCancelled {
		s.notifier.BookingCancelled(ctx, parties)
	} else {
		s.notifier.BookingStatusChanged(ctx, parties)
	}
	return booking, nil
}

// SendReminder emails both parties if the booking is still confirmed.
// It runs from the background worker.
func (s *DefaultBookingService) SendReminder(ctx context.Context, id string) error {
	booking, lawyer, err := s.load(ctx, id)
	if err != nil {
		if err == ErrBookingNotFound {
			return nil
		}
		return err
	}
	if booking.Status != models.BookingConfirmed {
		s.logger.Debug("skipping reminder", zap.String("bookingID", id), zap.String("status", string(booking.Status)))
		return nil
	}
	s.notifier.BookingReminder(ctx, s.partiesFor(ctx, booking, lawyer))
	return nil
}
