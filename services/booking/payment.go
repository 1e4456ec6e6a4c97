package booking

import (
	"context"

	"lawease/models"
	"lawease/utils"

	"go.uber.org/zap"
)

var errPaymentsDisabled = utils.NewDomain("Online payments are not enabled")

// CreatePaymentIntent opens a payment for the booking total. Only the client
// of a confirmed booking may pay.
func (s *DefaultBookingService) CreatePaymentIntent(ctx context.Context, actor models.Actor, id string) (*models.PaymentIntent, error) {
	if !actor.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	if s.payments == nil {
		return nil, errPaymentsDisabled
	}
	booking, _, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.ClientID != actor.UserID {
		return nil, ErrNotParty
	}
	if booking.Status != models.BookingConfirmed {
		return nil, ErrNotPayable
	}

	amount := utils.ToMinorUnits(booking.TotalAmount)
	piID, secret, err := s.payments.CreatePaymentIntent(ctx, amount, booking.Currency, map[string]string{
		"booking_id": booking.ID,
		"client_id":  booking.ClientID,
		"lawyer_id":  booking.LawyerID,
	})
	if err != nil {
		return nil, utils.NewInternal("failed to create payment intent", err)
	}

	booking.PaymentIntentID = piID
	if err := s.bookings.Update(ctx, booking); err != nil {
		s.logger.Warn("failed to store payment intent id", zap.String("bookingID", booking.ID), zap.Error(err))
	}
	return &models.PaymentIntent{
		ID:           piID,
		ClientSecret: secret,
		Amount:       booking.TotalAmount,
		Currency:     booking.Currency,
	}, nil
}
