package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"lawease/database"
	bookingRepo "lawease/database/repository/booking"
	lawyerRepo "lawease/database/repository/lawyer"
	"lawease/models"
	"lawease/utils"

	"gorm.io/gorm"
)

type MockReviewStore struct {
	Reviews   []models.Review
	CreateErr error
}

func (m *MockReviewStore) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	for _, r := range m.Reviews {
		if r.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockReviewStore) Create(ctx context.Context, r *models.Review) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Reviews = append(m.Reviews, *r)
	return nil
}

func (m *MockReviewStore) RatingsForLawyer(ctx context.Context, lawyerID string) ([]int, error) {
	var out []int
	for _, r := range m.Reviews {
		if r.LawyerID == lawyerID {
			out = append(out, r.Rating)
		}
	}
	return out, nil
}

func (m *MockReviewStore) ListByLawyer(ctx context.Context, lawyerID string, limit int) ([]models.Review, error) {
	return m.Reviews, nil
}

// MockBookingStore only serves GetByID; other methods panic if called.
type MockBookingStore struct {
	bookingRepo.BookingStore
	Bookings map[string]*models.Booking
}

func (m *MockBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := m.Bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return b, nil
}

type MockLawyerStore struct {
	lawyerRepo.LawyerProfileStore
	Average float64
	Total   int
}

func (m *MockLawyerStore) UpdateRating(ctx context.Context, id string, avg float64, total int) error {
	m.Average = avg
	m.Total = total
	return nil
}

var client = models.Actor{UserID: "client-1", Role: models.RoleClient}

func newFixture() (*DefaultReviewService, *MockLawyerStore) {
	reviews := &MockReviewStore{Reviews: []models.Review{
		{BookingID: "old-1", LawyerID: "lawyer-1", Rating: 5},
		{BookingID: "old-2", LawyerID: "lawyer-1", Rating: 3},
	}}
	bookings := &MockBookingStore{Bookings: map[string]*models.Booking{
		"done":    {ID: "done", ClientID: client.UserID, LawyerID: "lawyer-1", Status: models.BookingCompleted},
		"pending": {ID: "pending", ClientID: client.UserID, LawyerID: "lawyer-1", Status: models.BookingPending},
		"other":   {ID: "other", ClientID: "client-2", LawyerID: "lawyer-1", Status: models.BookingCompleted},
	}}
	lawyers := &MockLawyerStore{}
	return NewReviewService(reviews, bookings, lawyers, nil), lawyers
}

func TestSubmitRecomputesMean(t *testing.T) {
	svc, lawyers := newFixture()

	review, err := svc.Submit(context.Background(), client, models.SubmitReviewRequest{BookingID: "done", Rating: 4, Comment: " Helpful "})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if review.Comment != "Helpful" || review.LawyerID != "lawyer-1" {
		t.Errorf("review = %+v", review)
	}
	if lawyers.Average != 4.0 || lawyers.Total != 3 {
		t.Errorf("rating = %v over %d, want 4 over 3", lawyers.Average, lawyers.Total)
	}

	_, err = svc.Submit(context.Background(), client, models.SubmitReviewRequest{BookingID: "done", Rating: 2})
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("duplicate Submit() error = %v, want ErrAlreadyReviewed", err)
	}
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Review already exists for this booking" {
		t.Errorf("duplicate message = %v", err)
	}
}

func TestSubmitRejections(t *testing.T) {
	tests := []struct {
		name    string
		actor   models.Actor
		req     models.SubmitReviewRequest
		wantErr error
	}{
		{"anonymous", models.Actor{}, models.SubmitReviewRequest{BookingID: "done", Rating: 4}, utils.ErrUnauthenticated},
		{"rating too low", client, models.SubmitReviewRequest{BookingID: "done", Rating: 0}, ErrInvalidRating},
		{"rating too high", client, models.SubmitReviewRequest{BookingID: "done", Rating: 6}, ErrInvalidRating},
		{"missing booking", client, models.SubmitReviewRequest{BookingID: "nope", Rating: 4}, ErrBookingNotFound},
		{"someone else's booking", client, models.SubmitReviewRequest{BookingID: "other", Rating: 4}, ErrNotClient},
		{"not completed", client, models.SubmitReviewRequest{BookingID: "pending", Rating: 4}, ErrNotCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, lawyers := newFixture()
			if _, err := svc.Submit(context.Background(), tt.actor, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if lawyers.Total != 0 {
				t.Error("rating was updated on a rejected review")
			}
		})
	}
}

func TestSubmitConcurrentDuplicate(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		wantErr   error
		wantKind  utils.ErrorKind
	}{
		{
			name:      "unique index conflict reads as already reviewed",
			createErr: fmt.Errorf("insert review: %w", gorm.ErrDuplicatedKey),
			wantErr:   ErrAlreadyReviewed,
			wantKind:  utils.KindDomain,
		},
		{
			name:      "other insert failures stay internal",
			createErr: errors.New("connection reset"),
			wantKind:  utils.KindInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The existence check passes, as it would for the slower of two
			// simultaneous submits.
			reviews := &MockReviewStore{CreateErr: tt.createErr}
			bookings := &MockBookingStore{Bookings: map[string]*models.Booking{
				"done": {ID: "done", ClientID: client.UserID, LawyerID: "lawyer-1", Status: models.BookingCompleted},
			}}
			lawyers := &MockLawyerStore{}
			svc := NewReviewService(reviews, bookings, lawyers, nil)

			_, err := svc.Submit(context.Background(), client, models.SubmitReviewRequest{BookingID: "done", Rating: 4})
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if !utils.IsKind(err, tt.wantKind) {
				t.Errorf("Submit() error kind = %v, want %s", err, tt.wantKind)
			}
			if lawyers.Total != 0 {
				t.Error("rating was recomputed after a failed insert")
			}
		})
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		in   []int
		want float64
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{5, 3, 4}, 4},
		{[]int{5, 4, 4}, 4.33},
		{[]int{1, 2}, 1.5},
	}
	for _, tt := range tests {
		if got := Mean(tt.in); got != tt.want {
			t.Errorf("Mean(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
