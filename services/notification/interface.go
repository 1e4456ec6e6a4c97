package notification

import (
	"context"
	"fmt"
	"strings"

	"lawease/models"

	"go.uber.org/zap"
)

// NotificationService sends best-effort transactional emails. Delivery
// failures are logged and never returned to the caller.
type NotificationService interface {
	BookingCreated(ctx context.Context, p models.BookingParties)
	BookingCancelled(ctx context.Context, p models.BookingParties)
	BookingStatusChanged(ctx context.Context, p models.BookingParties)
	BookingReminder(ctx context.Context, p models.BookingParties)
	ContactReceived(ctx context.Context, msg *models.ContactMessage)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	dispatcher   Dispatcher
	from         string
	supportEmail string
	baseURL      string
	logger       *zap.Logger
}

func NewDefaultNotificationService(dispatcher Dispatcher, from, supportEmail, baseURL string, logger *zap.Logger) (*DefaultNotificationService, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("notification service initialization error: dispatcher is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		dispatcher:   dispatcher,
		from:         from,
		supportEmail: supportEmail,
		baseURL:      strings.TrimRight(baseURL, "/"),
		logger:       logger,
	}, nil
}

func (s *DefaultNotificationService) view(p models.BookingParties) bookingView {
	v := bookingView{
		Date:     p.Booking.Date,
		Time:     p.Booking.Time,
		Duration: p.Booking.DurationMinutes,
		Currency: p.Booking.Currency,
		Total:    p.Booking.TotalAmount,
		Message:  p.Booking.ClientMessage,
		Reason:   p.Booking.CancellationReason,
		Note:     p.Booking.LawyerNote,
		Status:   strings.ToLower(string(p.Booking.Status)),
		Link:     s.baseURL + "/bookings/" + p.Booking.ID,
	}
	if p.Client != nil {
		v.ClientName = p.Client.Name
	}
	if p.LawyerUser != nil {
		v.LawyerName = p.LawyerUser.Name
	}
	return v
}

// send renders and dispatches one email, logging any failure.
func (s *DefaultNotificationService) send(ctx context.Context, to, subject, tmpl string, data interface{}) {
	if to == "" {
		return
	}
	html, err := render(tmpl, data)
	if err != nil {
		s.logger.Error("email render failed", zap.String("template", tmpl), zap.Error(err))
		return
	}
	email := models.Email{From: s.from, To: to, Subject: subject, HTML: html}
	if err := s.dispatcher.Dispatch(ctx, email); err != nil {
		s.logger.Warn("email dispatch failed",
			zap.String("template", tmpl),
			zap.String("to", to),
			zap.Error(err))
	}
}

func (s *DefaultNotificationService) BookingCreated(ctx context.Context, p models.BookingParties) {
	v := s.view(p)
	if p.LawyerUser != nil {
		s.send(ctx, p.LawyerUser.Email, "New booking request from "+v.ClientName, "booking_request_lawyer", v)
	}
	if p.Client != nil {
		s.send(ctx, p.Client.Email, "Booking request sent to "+v.LawyerName, "booking_request_client", v)
	}
}

func (s *DefaultNotificationService) BookingCancelled(ctx context.Context, p models.BookingParties) {
	v := s.view(p)
	subject := fmt.Sprintf("Booking on %s at %s cancelled", v.Date, v.Time)
	if p.LawyerUser != nil {
		lv := v
		lv.RecipientName = p.LawyerUser.Name
		s.send(ctx, p.LawyerUser.Email, subject, "booking_cancelled", lv)
	}
	if p.Client != nil {
		cv := v
		cv.RecipientName = p.Client.Name
		s.send(ctx, p.Client.Email, subject, "booking_cancelled", cv)
	}
}

func (s *DefaultNotificationService) BookingStatusChanged(ctx context.Context, p models.BookingParties) {
	if p.Client == nil {
		return
	}
	v := s.view(p)
	s.send(ctx, p.Client.Email, "Your booking is now "+v.Status, "booking_status", v)
}

func (s *DefaultNotificationService) BookingReminder(ctx context.Context, p models.BookingParties) {
	v := s.view(p)
	subject := fmt.Sprintf("Reminder: consultation on %s at %s", v.Date, v.Time)
	if p.LawyerUser != nil {
		lv := v
		lv.RecipientName = p.LawyerUser.Name
		s.send(ctx, p.LawyerUser.Email, subject, "booking_reminder", lv)
	}
	if p.Client != nil {
		cv := v
		cv.RecipientName = p.Client.Name
		s.send(ctx, p.Client.Email, subject, "booking_reminder", cv)
	}
}

func (s *DefaultNotificationService) ContactReceived(ctx context.Context, msg *models.ContactMessage) {
	s.send(ctx, s.supportEmail, "[Contact] "+msg.Subject, "contact_received", msg)
}
