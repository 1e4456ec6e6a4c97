package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lawease/database"
	"lawease/models"
	"lawease/services/availability"
	"lawease/utils"
)

type MockBookingStore struct {
	Bookings map[string]*models.Booking
	seq      int
}

func (m *MockBookingStore) Create(ctx context.Context, b *models.Booking) error {
	m.seq++
	if b.ID == "" {
		b.ID = fmt.Sprintf("booking-%d", m.seq)
	}
	cp := *b
	m.Bookings[b.ID] = &cp
	return nil
}

func (m *MockBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := m.Bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MockBookingStore) ExistsActive(ctx context.Context, lawyerID, date, t string) (bool, error) {
	for _, b := range m.Bookings {
		if b.LawyerID == lawyerID && b.Date == date && b.Time == t &&
			(b.Status == models.BookingPending || b.Status == models.BookingConfirmed) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockBookingStore) Update(ctx context.Context, b *models.Booking) error {
	cp := *b
	m.Bookings[b.ID] = &cp
	return nil
}

func (m *MockBookingStore) ListByClient(ctx context.Context, id string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.Bookings {
		if b.ClientID == id {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *MockBookingStore) ListByLawyer(ctx context.Context, id string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.Bookings {
		if b.LawyerID == id {
			out = append(out, *b)
		}
	}
	return out, nil
}

type MockLawyerStore struct {
	Profile     *models.LawyerProfile
	Completions int
	Earnings    float64
	Bookings    int
}

func (m *MockLawyerStore) CreateWithSlots(ctx context.Context, p *models.LawyerProfile) error {
	return nil
}

func (m *MockLawyerStore) UpdateWithSlots(ctx context.Context, p *models.LawyerProfile, slots []models.AvailabilitySlot) error {
	return nil
}

func (m *MockLawyerStore) GetByID(ctx context.Context, id string) (*models.LawyerProfile, error) {
	if m.Profile == nil || m.Profile.ID != id {
		return nil, database.ErrNotFound
	}
	return m.Profile, nil
}

func (m *MockLawyerStore) GetByUserID(ctx context.Context, userID string) (*models.LawyerProfile, error) {
	if m.Profile == nil || m.Profile.UserID != userID {
		return nil, database.ErrNotFound
	}
	return m.Profile, nil
}

func (m *MockLawyerStore) ActiveSlots(ctx context.Context, lawyerID string, weekday int) ([]models.AvailabilitySlot, error) {
	var out []models.AvailabilitySlot
	for _, s := range m.Profile.Availability {
		if s.IsActive && s.DayOfWeek == weekday {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockLawyerStore) Search(ctx context.Context, c models.LawyerSearch) ([]models.LawyerProfile, error) {
	return nil, nil
}

func (m *MockLawyerStore) IncrementBookings(ctx context.Context, id string) error {
	m.Bookings++
	return nil
}

func (m *MockLawyerStore) RecordCompletion(ctx context.Context, id string, earnings float64) error {
	m.Completions++
	m.Earnings += earnings
	return nil
}

func (m *MockLawyerStore) UpdateRating(ctx context.Context, id string, avg float64, total int) error {
	return nil
}

func (m *MockLawyerStore) SetVerified(ctx context.Context, id string, verified bool) error { return nil }

type MockUserRepo struct {
	Users map[string]*models.User
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error { return nil }

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, database.ErrNotFound
}

func (m *MockUserRepo) Update(ctx context.Context, u *models.User) error { return nil }
func (m *MockUserRepo) SetTokenHash(ctx context.Context, id, hash string) error { return nil }
func (m *MockUserRepo) SetRole(ctx context.Context, id string, r models.Role) error { return nil }

type MockNotifier struct {
	Created, Cancelled, StatusChanged, Reminders int
}

func (m *MockNotifier) BookingCreated(ctx context.Context, p models.BookingParties) { m.Created++ }
func (m *MockNotifier) BookingCancelled(ctx context.Context, p models.BookingParties) { m.Cancelled++ }
func (m *MockNotifier) BookingStatusChanged(ctx context.Context, p models.BookingParties) { m.StatusChanged++ }
func (m *MockNotifier) BookingReminder(ctx context.Context, p models.BookingParties) { m.Reminders++ }
func (m *MockNotifier) ContactReceived(ctx context.Context, msg *models.ContactMessage) {}

type MockReminders struct {
	Scheduled []string
}

func (m *MockReminders) ScheduleReminder(ctx context.Context, b *models.Booking, startsAt time.Time) error {
	m.Scheduled = append(m.Scheduled, b.ID)
	return nil
}

type MockGateway struct {
	Amount   int64
	Currency string
}

func (m *MockGateway) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (string, string, error) {
	m.Amount = amountMinor
	m.Currency = currency
	return "pi_123", "pi_123_secret", nil
}

var (
	client = models.Actor{UserID: "client-1", Role: models.RoleClient}
	lawyer = models.Actor{UserID: "lawyer-user-1", Role: models.RoleLawyer}
)

// fixedNow is Tuesday 2030-01-01 09:00 UTC.
var fixedNow = time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *DefaultBookingService
	bookings  *MockBookingStore
	lawyers   *MockLawyerStore
	notifier  *MockNotifier
	reminders *MockReminders
	gateway   *MockGateway
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &MockBookingStore{Bookings: map[string]*models.Booking{}},
		lawyers: &MockLawyerStore{Profile: &models.LawyerProfile{
			ID:          "lawyer-1",
			UserID:      lawyer.UserID,
			HourlyRate:  2000,
			Currency:    "INR",
			IsAvailable: true,
			Availability: []models.AvailabilitySlot{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true},
				{DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00", IsActive: true},
			},
		}},
		notifier:  &MockNotifier{},
		reminders: &MockReminders{},
		gateway:   &MockGateway{},
	}
	users := &MockUserRepo{Users: map[string]*models.User{
		client.UserID: {ID: client.UserID, Name: "Ravi", Email: "ravi@example.com"},
		lawyer.UserID: {ID: lawyer.UserID, Name: "Asha", Email: "asha@example.com"},
	}}
	f.svc = NewBookingService(f.bookings, f.lawyers, users, f.notifier,
		WithReminders(f.reminders),
		WithPayments(f.gateway),
		WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

func (f *fixture) book(t *testing.T, date, hhmm string) *models.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), client, models.CreateBookingRequest{
		LawyerID: "lawyer-1", Date: date, Time: hhmm,
	})
	if err != nil {
		t.Fatalf("Create(%s %s) error = %v", date, hhmm, err)
	}
	return b
}

func TestCreateBooking(t *testing.T) {
	f := newFixture()
	b := f.book(t, "2030-01-07", "10:00")

	if b.Status != models.BookingPending {
		t.Errorf("Status = %s, want PENDING", b.Status)
	}
	if b.BaseAmount != 2000 || b.PlatformFee != 300 || b.TotalAmount != 2300 {
		t.Errorf("price = %v/%v/%v, want 2000/300/2300", b.BaseAmount, b.PlatformFee, b.TotalAmount)
	}
	if b.DurationMinutes != models.DefaultDurationMinutes {
		t.Errorf("DurationMinutes = %d, want default", b.DurationMinutes)
	}
	if f.notifier.Created != 1 {
		t.Errorf("BookingCreated calls = %d, want 1", f.notifier.Created)
	}
	if f.lawyers.Bookings != 1 {
		t.Errorf("IncrementBookings calls = %d, want 1", f.lawyers.Bookings)
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	f := newFixture()
	f.book(t, "2030-01-07", "10:00")

	_, err := f.svc.Create(context.Background(), client, models.CreateBookingRequest{
		LawyerID: "lawyer-1", Date: "2030-01-07", Time: "10:00",
	})
	if !errors.Is(err, availability.ErrSlotAlreadyBooked) {
		t.Errorf("second booking error = %v, want slot already booked", err)
	}

	// A different time the same day is free.
	f.book(t, "2030-01-07", "11:00")
}

func TestCreateBookingRejections(t *testing.T) {
	tests := []struct {
		name  string
		actor models.Actor
		req   models.CreateBookingRequest
		kind  utils.ErrorKind
	}{
		{"anonymous", models.Actor{}, models.CreateBookingRequest{LawyerID: "lawyer-1", Date: "2030-01-07", Time: "10:00"}, utils.KindUnauthorized},
		{"missing fields", client, models.CreateBookingRequest{LawyerID: "lawyer-1"}, utils.KindValidation},
		{"unknown lawyer", client, models.CreateBookingRequest{LawyerID: "x", Date: "2030-01-07", Time: "10:00"}, utils.KindNotFound},
		{"self booking", lawyer, models.CreateBookingRequest{LawyerID: "lawyer-1", Date: "2030-01-07", Time: "10:00"}, utils.KindValidation},
		{"in the past", client, models.CreateBookingRequest{LawyerID: "lawyer-1", Date: "2029-12-31", Time: "10:00"}, utils.KindValidation},
		{"outside availability", client, models.CreateBookingRequest{LawyerID: "lawyer-1", Date: "2030-01-08", Time: "10:00"}, utils.KindDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Create(context.Background(), tt.actor, tt.req)
			if !utils.IsKind(err, tt.kind) {
				t.Errorf("Create() error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestCancelBooking(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		status  models.BookingStatus
		wantErr error
	}{
		{"pending inside window", "2030-01-01", "08:00", models.BookingPending, nil},
		{"confirmed well ahead", "2030-01-07", "08:00", models.BookingConfirmed, nil},
		{"confirmed inside 24h", "2030-01-02", "08:00", models.BookingConfirmed, ErrCancellationWindow},
		{"confirmed exactly 24h ahead", "2030-01-02", "09:00", models.BookingConfirmed, nil},
		{"confirmed one minute short of 24h", "2030-01-02", "08:59", models.BookingConfirmed, ErrCancellationWindow},
		{"already completed", "2030-01-07", "08:00", models.BookingCompleted, ErrAlreadyFinal},
		{"already cancelled", "2030-01-07", "08:00", models.BookingCancelled, ErrAlreadyFinal},
		{"rejected", "2030-01-07", "08:00", models.BookingRejected, ErrAlreadyFinal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.bookings.Bookings["b1"] = &models.Booking{
				ID: "b1", ClientID: client.UserID, LawyerID: "lawyer-1",
				Date: tt.date, Time: tt.time, Status: tt.status,
			}

			got, err := f.svc.Cancel(context.Background(), client, "b1", "  change of plans ")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Cancel() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got.Status != models.BookingCancelled || got.CancelledBy != client.UserID {
				t.Errorf("booking = %+v, want cancelled by client", got)
			}
			if got.CancellationReason != "change of plans" {
				t.Errorf("CancellationReason = %q", got.CancellationReason)
			}
			if got.CancelledAt == nil || !got.CancelledAt.Equal(fixedNow) {
				t.Errorf("CancelledAt = %v, want %v", got.CancelledAt, fixedNow)
			}
			if f.notifier.Cancelled != 1 {
				t.Errorf("BookingCancelled calls = %d, want 1", f.notifier.Cancelled)
			}
		})
	}
}

func TestCancelBookingByStranger(t *testing.T) {
	f := newFixture()
	f.bookings.Bookings["b1"] = &models.Booking{ID: "b1", ClientID: client.UserID, LawyerID: "lawyer-1", Date: "2030-01-07", Time: "10:00", Status: models.BookingPending}

	_, err := f.svc.Cancel(context.Background(), models.Actor{UserID: "someone"}, "b1", "")
	if !errors.Is(err, ErrNotParty) {
		t.Errorf("Cancel() error = %v, want ErrNotParty", err)
	}
	if _, err := f.svc.Cancel(context.Background(), client, "missing", ""); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("Cancel(missing) error = %v, want ErrBookingNotFound", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	b := f.book(t, "2030-01-07", "10:00")

	if _, err := f.svc.UpdateStatus(context.Background(), client, b.ID, models.BookingConfirmed, ""); !errors.Is(err, ErrNotBookedLawyer) {
		t.Errorf("client UpdateStatus() error = %v, want ErrNotBookedLawyer", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), lawyer, b.ID, "ARCHIVED", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("UpdateStatus(ARCHIVED) error = %v, want ErrInvalidStatus", err)
	}

	confirmed, err := f.svc.UpdateStatus(context.Background(), lawyer, b.ID, "confirmed", "See you then")
	if err != nil {
		t.Fatalf("UpdateStatus(CONFIRMED) error = %v", err)
	}
	if confirmed.ConfirmedAt == nil || confirmed.LawyerNote != "See you then" {
		t.Errorf("confirmed booking = %+v", confirmed)
	}
	if len(f.reminders.Scheduled) != 1 {
		t.Errorf("reminders scheduled = %d, want 1", len(f.reminders.Scheduled))
	}

	for i := 0; i < 2; i++ {
		if _, err := f.svc.UpdateStatus(context.Background(), lawyer, b.ID, models.BookingCompleted, ""); err != nil {
			t.Fatalf("UpdateStatus(COMPLETED) error = %v", err)
		}
	}
	if f.lawyers.Completions != 1 || f.lawyers.Earnings != 2000 {
		t.Errorf("completions = %d earnings = %v, want 1 and 2000", f.lawyers.Completions, f.lawyers.Earnings)
	}
	if f.notifier.StatusChanged != 3 {
		t.Errorf("BookingStatusChanged calls = %d, want 3", f.notifier.StatusChanged)
	}
}

func TestSendReminder(t *testing.T) {
	f := newFixture()
	f.bookings.Bookings["b1"] = &models.Booking{ID: "b1", ClientID: client.UserID, LawyerID: "lawyer-1", Status: models.BookingConfirmed}
	f.bookings.Bookings["b2"] = &models.Booking{ID: "b2", ClientID: client.UserID, LawyerID: "lawyer-1", Status: models.BookingCancelled}

	for _, id := range []string{"b1", "b2", "missing"} {
		if err := f.svc.SendReminder(context.Background(), id); err != nil {
			t.Errorf("SendReminder(%s) error = %v", id, err)
		}
	}
	if f.notifier.Reminders != 1 {
		t.Errorf("reminders sent = %d, want 1", f.notifier.Reminders)
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	f := newFixture()
	f.bookings.Bookings["b1"] = &models.Booking{ID: "b1", ClientID: client.UserID, LawyerID: "lawyer-1", Status: models.BookingPending, TotalAmount: 2300.5, Currency: "INR"}

	if _, err := f.svc.CreatePaymentIntent(context.Background(), client, "b1"); !errors.Is(err, ErrNotPayable) {
		t.Errorf("pending CreatePaymentIntent() error = %v, want ErrNotPayable", err)
	}

	f.bookings.Bookings["b1"].Status = models.BookingConfirmed
	pi, err := f.svc.CreatePaymentIntent(context.Background(), client, "b1")
	if err != nil {
		t.Fatalf("CreatePaymentIntent() error = %v", err)
	}
	if pi.ClientSecret != "pi_123_secret" || f.gateway.Amount != 230050 {
		t.Errorf("intent = %+v amount = %d", pi, f.gateway.Amount)
	}
	if f.bookings.Bookings["b1"].PaymentIntentID != "pi_123" {
		t.Errorf("PaymentIntentID not stored")
	}
	if _, err := f.svc.CreatePaymentIntent(context.Background(), lawyer, "b1"); !errors.Is(err, ErrNotParty) {
		t.Errorf("lawyer CreatePaymentIntent() error = %v, want ErrNotParty", err)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		rate     float64
		minutes  int
		feeRate  float64
		wantBase float64
		wantFee  float64
		wantSum  float64
	}{
		{2000, 60, 0.15, 2000, 300, 2300},
		{2000, 90, 0.15, 3000, 450, 3450},
		{1500, 30, 0.15, 750, 112.5, 862.5},
		{999.99, 45, 0.15, 749.99, 112.5, 862.49},
		{1000, 60, 0, 1000, 0, 1000},
	}
	for _, tt := range tests {
		got := Quote(tt.rate, tt.minutes, tt.feeRate)
		if got.BaseAmount != tt.wantBase || got.PlatformFee != tt.wantFee || got.TotalAmount != tt.wantSum {
			t.Errorf("Quote(%v, %d, %v) = %+v, want %v/%v/%v", tt.rate, tt.minutes, tt.feeRate, got, tt.wantBase, tt.wantFee, tt.wantSum)
		}
	}
}
