package booking

import (
	"context"
	"time"

	bookingRepo "lawease/database/repository/booking"
	lawyerRepo "lawease/database/repository/lawyer"
	userRepo "lawease/database/repository/user"
	"lawease/models"
	"lawease/services/availability"
	"lawease/services/notification"
	"lawease/services/payment"
	"lawease/services/tasks"

	"go.uber.org/zap"
)

// CancellationCutoff is the minimum notice for cancelling a confirmed booking.
const CancellationCutoff = 24 * time.Hour

// BookingService manages the lifecycle of lawyer bookings.
type BookingService interface {
	Create(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.Booking, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	ListForClient(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	ListForLawyer(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	Cancel(ctx context.Context, actor models.Actor, id, reason string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.BookingStatus, note string) (*models.Booking, error)
	CreatePaymentIntent(ctx context.Context, actor models.Actor, id string) (*models.PaymentIntent, error)
	SendReminder(ctx context.Context, id string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	bookings  bookingRepo.BookingStore
	lawyers   lawyerRepo.LawyerProfileStore
	users     userRepo.UserRepository
	checker   *availability.Checker
	notifier  notification.NotificationService
	reminders tasks.ReminderScheduler
	payments  payment.Gateway
	logger    *zap.Logger
	feeRate   float64
	location  *time.Location
	now       func() time.Time
}

// Option configures a DefaultBookingService.
type Option func(*DefaultBookingService)

func WithReminders(r tasks.ReminderScheduler) Option {
	return func(s *DefaultBookingService) { s.reminders = r }
}

func WithPayments(p payment.Gateway) Option {
	return func(s *DefaultBookingService) { s.payments = p }
}

func WithFeeRate(rate float64) Option {
	return func(s *DefaultBookingService) {
		if rate >= 0 {
			s.feeRate = rate
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(s *DefaultBookingService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *DefaultBookingService) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *DefaultBookingService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewBookingService(
	bookings bookingRepo.BookingStore,
	lawyers lawyerRepo.LawyerProfileStore,
	users userRepo.UserRepository,
	notifier notification.NotificationService,
	opts ...Option,
) *DefaultBookingService {
	s := &DefaultBookingService{
		bookings: bookings,
		lawyers:  lawyers,
		users:    users,
		checker:  availability.NewChecker(lawyers, bookings),
		notifier: notifier,
		logger:   zap.NewNop(),
		feeRate:  DefaultPlatformFeeRate,
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
