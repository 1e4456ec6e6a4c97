package contact

import (
	"context"
	"errors"
	"testing"

	"lawease/models"
	"lawease/utils"
)

type MockContactStore struct {
	Saved []models.ContactMessage
	Err   error
}

func (m *MockContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Saved = append(m.Saved, *msg)
	return nil
}

type MockNotifier struct {
	Contacts int
}

func (m *MockNotifier) BookingCreated(ctx context.Context, p models.BookingParties) {}
func (m *MockNotifier) BookingCancelled(ctx context.Context, p models.BookingParties) {}
func (m *MockNotifier) BookingStatusChanged(ctx context.Context, p models.BookingParties) {}
func (m *MockNotifier) BookingReminder(ctx context.Context, p models.BookingParties) {}
func (m *MockNotifier) ContactReceived(ctx context.Context, msg *models.ContactMessage) { m.Contacts++ }

func valid() models.ContactMessage {
	return models.ContactMessage{
		Name:    "Meera",
		Email:   " Meera@Example.com ",
		Subject: "Partnership",
		Message: "We would like to list our firm on LawEase.",
	}
}

func TestSubmit(t *testing.T) {
	store := &MockContactStore{}
	notifier := &MockNotifier{}
	svc := NewContactService(store, notifier, nil)

	got, err := svc.Submit(context.Background(), valid())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got.ID == "" || got.CreatedAt.IsZero() || got.Email != "meera@example.com" {
		t.Errorf("saved = %+v", got)
	}
	if len(store.Saved) != 1 || notifier.Contacts != 1 {
		t.Errorf("saved %d, notified %d, want 1 and 1", len(store.Saved), notifier.Contacts)
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *models.ContactMessage)
		want   string
	}{
		{"missing name", func(m *models.ContactMessage) { m.Name = "  " }, "name is required"},
		{"bad email", func(m *models.ContactMessage) { m.Email = "not-an-email" }, "email must be a valid email address"},
		{"short subject", func(m *models.ContactMessage) { m.Subject = "Hi" }, "subject must be at least 3 characters"},
		{"short message", func(m *models.ContactMessage) { m.Message = "Hello" }, "message must be at least 10 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockContactStore{}
			svc := NewContactService(store, &MockNotifier{}, nil)
			msg := valid()
			tt.mutate(&msg)

			_, err := svc.Submit(context.Background(), msg)
			var appErr *utils.AppError
			if !errors.As(err, &appErr) || appErr.Kind != utils.KindValidation || appErr.Message != tt.want {
				t.Errorf("Submit() error = %v, want validation %q", err, tt.want)
			}
			if len(store.Saved) != 0 {
				t.Error("invalid message was saved")
			}
		})
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	notifier := &MockNotifier{}
	svc := NewContactService(&MockContactStore{Err: errors.New("mongo down")}, notifier, nil)

	if _, err := svc.Submit(context.Background(), valid()); !utils.IsKind(err, utils.KindInternal) {
		t.Errorf("Submit() error = %v, want internal", err)
	}
	if notifier.Contacts != 0 {
		t.Error("support notified about an unsaved message")
	}
}
