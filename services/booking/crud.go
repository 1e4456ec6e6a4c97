package booking

import (
	"context"
	"errors"

	"lawease/database"
	"lawease/models"
	"lawease/utils"

	"go.uber.org/zap"
)

// load fetches a booking and its lawyer profile.
func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Booking, *models.LawyerProfile, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, nil, utils.NewInternal("failed to load booking", err)
	}
	lawyer, err := s.lawyers.GetByID(ctx, booking.LawyerID)
	if err != nil {
		return nil, nil, utils.NewInternal("failed to load booking lawyer", err)
	}
	return booking, lawyer, nil
}

// partiesFor resolves the users behind a booking. Lookup failures only
// degrade the notification, so they are logged.
func (s *DefaultBookingService) partiesFor(ctx context.Context, booking *models.Booking, lawyer *models.LawyerProfile) models.BookingParties {
	p := models.BookingParties{Booking: booking, Lawyer: lawyer}

	if lawyer != nil {
		if lawyer.User != nil {
			p.LawyerUser = lawyer.User
		} else if u, err := s.users.GetByID(ctx, lawyer.UserID); err == nil {
			p.LawyerUser = u
		} else {
			s.logger.Warn("failed to load lawyer user", zap.String("userID", lawyer.UserID), zap.Error(err))
		}
	}
	if u, err := s.users.GetByID(ctx, booking.ClientID); err == nil {
		p.Client = u
	} else {
		s.logger.Warn("failed to load client", zap.String("userID", booking.ClientID), zap.Error(err))
	}
	return p
}

func (s *DefaultBookingService) Get(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	booking, lawyer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.ClientID != actor.UserID && lawyer.UserID != actor.UserID && actor.Role != models.RoleAdmin {
		return nil, ErrNotParty
	}
	return booking, nil
}

func (s *DefaultBookingService) ListForClient(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	bookings, err := s.bookings.ListByClient(ctx, actor.UserID)
	if err != nil {
		return nil, utils.NewInternal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListForLawyer(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	lawyer, err := s.lawyers.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoLawyerProfile
	}
	if err != nil {
		return nil, utils.NewInternal("failed to load lawyer profile", err)
	}
	bookings, err := s.bookings.ListByLawyer(ctx, lawyer.ID)
	if err != nil {
		return nil, utils.NewInternal("failed to list bookings", err)
	}
	return bookings, nil
}
