package notification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lawease/models"
)

type MockDispatcher struct {
	Sent []models.Email
	Err  error
}

func (m *MockDispatcher) Dispatch(ctx context.Context, email models.Email) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, email)
	return nil
}

func parties() models.BookingParties {
	return models.BookingParties{
		Booking: &models.Booking{
			ID: "b1", Date: "2030-01-07", Time: "10:00", DurationMinutes: 60,
			Currency: "INR", TotalAmount: 2300, Status: models.BookingConfirmed,
			ClientMessage: "Tenancy dispute",
		},
		Lawyer:     &models.LawyerProfile{ID: "l1"},
		LawyerUser: &models.User{Name: "Asha Rao", Email: "asha@example.com"},
		Client:     &models.User{Name: "Ravi Kumar", Email: "ravi@example.com"},
	}
}

func TestBookingNotifications(t *testing.T) {
	tests := []struct {
		name     string
		send     func(s *DefaultNotificationService)
		wantTo   []string
		contains string
	}{
		{
			name:     "created notifies lawyer then client",
			send:     func(s *DefaultNotificationService) { s.BookingCreated(context.Background(), parties()) },
			wantTo:   []string{"asha@example.com", "ravi@example.com"},
			contains: "Tenancy dispute",
		},
		{
			name:     "cancelled notifies both parties",
			send:     func(s *DefaultNotificationService) { s.BookingCancelled(context.Background(), parties()) },
			wantTo:   []string{"asha@example.com", "ravi@example.com"},
			contains: "cancelled",
		},
		{
			name:     "status change notifies client",
			send:     func(s *DefaultNotificationService) { s.BookingStatusChanged(context.Background(), parties()) },
			wantTo:   []string{"ravi@example.com"},
			contains: "confirmed",
		},
		{
			name:     "reminder notifies both parties",
			send:     func(s *DefaultNotificationService) { s.BookingReminder(context.Background(), parties()) },
			wantTo:   []string{"asha@example.com", "ravi@example.com"},
			contains: "24 hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &MockDispatcher{}
			svc, err := NewDefaultNotificationService(d, "noreply@lawease.app", "support@lawease.app", "https://lawease.app/", nil)
			if err != nil {
				t.Fatalf("NewDefaultNotificationService() error = %v", err)
			}
			tt.send(svc)

			if len(d.Sent) != len(tt.wantTo) {
				t.Fatalf("sent %d emails, want %d", len(d.Sent), len(tt.wantTo))
			}
			for i, to := range tt.wantTo {
				if d.Sent[i].To != to {
					t.Errorf("email %d To = %q, want %q", i, d.Sent[i].To, to)
				}
				if d.Sent[i].From != "noreply@lawease.app" {
					t.Errorf("email %d From = %q", i, d.Sent[i].From)
				}
			}
			if !strings.Contains(d.Sent[0].HTML, tt.contains) {
				t.Errorf("email body does not contain %q", tt.contains)
			}
		})
	}
}

func TestDispatchFailureIsSwallowed(t *testing.T) {
	d := &MockDispatcher{Err: errors.New("smtp down")}
	svc, _ := NewDefaultNotificationService(d, "from", "support", "", nil)

	// Must not panic or block.
	svc.BookingCreated(context.Background(), parties())
	if len(d.Sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(d.Sent))
	}
}

func TestContactReceived(t *testing.T) {
	d := &MockDispatcher{}
	svc, _ := NewDefaultNotificationService(d, "from", "support@lawease.app", "", nil)

	svc.ContactReceived(context.Background(), &models.ContactMessage{
		Name: "Meera", Email: "meera@example.com", Subject: "Partnership", Message: "<b>hello</b> there",
	})
	if len(d.Sent) != 1 || d.Sent[0].To != "support@lawease.app" {
		t.Fatalf("sent = %+v, want one email to support", d.Sent)
	}
	if strings.Contains(d.Sent[0].HTML, "<b>hello</b>") {
		t.Error("contact message body was not HTML-escaped")
	}
}

func TestNewDefaultNotificationServiceRequiresDispatcher(t *testing.T) {
	if _, err := NewDefaultNotificationService(nil, "", "", "", nil); err == nil {
		t.Error("error = nil, want error for nil dispatcher")
	}
}

func TestHTTPEmailClient(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if strings.Contains(r.URL.Path, "fail") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid from"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"em_1"}`))
	}))
	defer srv.Close()

	ok := NewHTTPEmailClient(srv.URL+"/emails", "key-1", time.Second)
	if err := ok.Send(context.Background(), models.Email{To: "a@b.c"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotAuth != "Bearer key-1" {
		t.Errorf("Authorization = %q, want Bearer key-1", gotAuth)
	}

	bad := NewHTTPEmailClient(srv.URL+"/fail", "key-1", time.Second)
	if err := bad.Send(context.Background(), models.Email{To: "a@b.c"}); err == nil {
		t.Error("Send() error = nil, want error on 422")
	}

	noKey := NewHTTPEmailClient(srv.URL+"/emails", "", time.Second)
	if err := noKey.Send(context.Background(), models.Email{To: "a@b.c"}); err == nil {
		t.Error("Send() error = nil, want error without api key")
	}
}
