package bookingRepo

import (
	"context"
	"strings"
	"testing"

	"lawease/database/dbtest"
)

func TestExistsActiveOnlyCountsOccupyingStatuses(t *testing.T) {
	db, rec, err := dbtest.NewDryRun()
	if err != nil {
		t.Fatalf("NewDryRun() error = %v", err)
	}
	repo := NewGormBookingRepo(db)

	if _, err := repo.ExistsActive(context.Background(), "lawyer-1", "2030-01-07", "10:00"); err != nil {
		t.Fatalf("ExistsActive() error = %v", err)
	}
	if len(rec.Statements) != 1 {
		t.Fatalf("statements = %v, want one count query", rec.Statements)
	}
	sql := rec.Statements[0]

	for _, want := range []string{
		`FROM "bookings"`,
		"lawyer_id = 'lawyer-1'",
		"date = '2030-01-07'",
		"time = '10:00'",
		"status IN (",
		"'PENDING'",
		"'CONFIRMED'",
		`"deleted_at" IS NULL`,
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("query lacks %s: %s", want, sql)
		}
	}
	for _, freed := range []string{"CANCELLED", "COMPLETED", "REJECTED"} {
		if strings.Contains(sql, freed) {
			t.Errorf("query treats %s bookings as occupying: %s", freed, sql)
		}
	}
}
