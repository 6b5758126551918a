package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/services-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/services-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/models"
	"github.com/BruksfildServices01/services-marketplace/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint
	ProviderID uint
	ServiceID  uint

	BookingDate time.Time
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier realtime.Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier realtime.Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Prestador verificado (checado só na criação; uma
	// des-verificação posterior não cancela agendamentos)
	// --------------------------------------------------
	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider.VerificationStatus != models.VerificationVerified {
		return nil, httperr.ErrBusiness("provider_not_eligible")
	}

	// --------------------------------------------------
	// Serviço pertence mesmo ao prestador
	// --------------------------------------------------
	if _, err := uc.repo.GetService(ctx, in.ServiceID, in.ProviderID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Criação (status inicial centralizado no domínio)
	// --------------------------------------------------
	b := &models.Booking{
		CustomerID:  in.CustomerID,
		ProviderID:  in.ProviderID,
		ServiceID:   in.ServiceID,
		BookingDate: in.BookingDate,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Auditoria + push (só o prestador recebe booking:new)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notifier.Publish(realtime.NewBookingEvent(b, provider.UserID))

	return b, nil
}
