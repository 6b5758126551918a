package booking

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/services-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/services-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/models"
	"github.com/BruksfildServices01/services-marketplace/internal/realtime"
)

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo()
	repo.addProvider(10, 100, models.VerificationVerified)
	repo.addService(5, 10)

	rec := &recorder{}
	uc := NewCreateBooking(repo, audit.NewDispatcher(nil), rec)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:  1,
		ProviderID:  10,
		ServiceID:   5,
		BookingDate: time.Now().Add(48 * time.Hour),
		Notes:       "portão azul",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if b.Status != string(domain.StatusPending) {
		t.Fatalf("expected PENDING, got %s", b.Status)
	}

	events := rec.all()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != realtime.EventBookingNew {
		t.Fatalf("expected booking:new, got %s", ev.Type)
	}
	if len(ev.Recipients) != 1 || ev.Recipients[0] != 100 {
		t.Fatalf("booking:new must go only to the provider user, got %v", ev.Recipients)
	}
}

func TestCreateBooking_ProviderNotEligible(t *testing.T) {
	repo := newFakeRepo()
	repo.addProvider(10, 100, models.VerificationPending)
	repo.addService(5, 10)

	rec := &recorder{}
	uc := NewCreateBooking(repo, audit.NewDispatcher(nil), rec)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 1,
		ProviderID: 10,
		ServiceID:  5,
	})
	if !httperr.IsBusiness(err, "provider_not_eligible") {
		t.Fatalf("expected provider_not_eligible, got %v", err)
	}
	if len(rec.all()) != 0 {
		t.Fatal("no event should be published on rejected creation")
	}
}

func TestCreateBooking_ServiceMismatch(t *testing.T) {
	repo := newFakeRepo()
	repo.addProvider(10, 100, models.VerificationVerified)
	repo.addProvider(20, 200, models.VerificationVerified)
	repo.addService(5, 20) // serviço é do prestador 20

	uc := NewCreateBooking(repo, audit.NewDispatcher(nil), realtime.NopNotifier{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 1,
		ProviderID: 10,
		ServiceID:  5,
	})
	if !httperr.IsBusiness(err, "service_mismatch") {
		t.Fatalf("expected service_mismatch, got %v", err)
	}
}

func TestCreateBooking_ProviderNotFound(t *testing.T) {
	repo := newFakeRepo()

	uc := NewCreateBooking(repo, audit.NewDispatcher(nil), realtime.NopNotifier{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 1,
		ProviderID: 99,
		ServiceID:  5,
	})
	if !httperr.IsBusiness(err, "provider_not_found") {
		t.Fatalf("expected provider_not_found, got %v", err)
	}
}
