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

type TransitionBookingInput struct {
	CallerID   uint
	CallerRole domain.Role

	BookingID uint
	Target    domain.Status
}

// ======================================================
// USE CASE
// ======================================================

type TransitionBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier realtime.Notifier
}

func NewTransitionBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier realtime.Notifier,
) *TransitionBooking {
	return &TransitionBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute valida autorização e legalidade e aplica a transição via
// compare-and-swap. Um stale_state (outro writer chegou primeiro) é
// relido e retentado uma única vez; na segunda colisão o caller
// recebe conflict.
func (uc *TransitionBooking) Execute(
	ctx context.Context,
	in TransitionBookingInput,
) (*models.Booking, error) {

	const maxAttempts = 2

	for attempt := 0; attempt < maxAttempts; attempt++ {

		b, err := uc.repo.GetBooking(ctx, in.BookingID)
		if err != nil {
			return nil, err
		}

		provider, err := uc.authorize(ctx, in, b)
		if err != nil {
			return nil, err
		}

		current := domain.Status(b.Status)

		// retry idempotente: já está no alvo, devolve sem nova transição
		if current == in.Target {
			return b, nil
		}

		if !domain.EdgeExists(current, in.Target) {
			return nil, httperr.ErrBusiness("illegal_transition")
		}
		if !domain.RoleAllowed(current, in.Target, in.CallerRole) {
			return nil, httperr.ErrBusiness("forbidden")
		}

		updated, err := uc.repo.ApplyTransition(ctx, b.ID, current, in.Target, time.Now())
		if err != nil {
			if httperr.IsBusiness(err, "stale_state") {
				continue
			}
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			UserID:   &in.CallerID,
			Action:   "booking_" + actionFor(in.Target),
			Entity:   "booking",
			EntityID: &updated.ID,
			Metadata: map[string]any{
				"from": string(current),
				"to":   string(in.Target),
			},
		})

		uc.notifier.Publish(eventFor(updated, provider))

		return updated, nil
	}

	return nil, httperr.ErrBusiness("conflict")
}

// authorize resolve a posse: admin sempre pode, cliente e prestador
// só mexem no próprio agendamento.
func (uc *TransitionBooking) authorize(
	ctx context.Context,
	in TransitionBookingInput,
	b *models.Booking,
) (*models.Provider, error) {

	switch in.CallerRole {

	case domain.RoleAdmin:
		return uc.repo.GetProviderByID(ctx, b.ProviderID)

	case domain.RoleCustomer:
		if b.CustomerID != in.CallerID {
			return nil, httperr.ErrBusiness("forbidden")
		}
		return uc.repo.GetProviderByID(ctx, b.ProviderID)

	case domain.RoleProvider:
		provider, err := uc.repo.GetProviderByUserID(ctx, in.CallerID)
		if err != nil {
			return nil, httperr.ErrBusiness("forbidden")
		}
		if provider.ID != b.ProviderID {
			return nil, httperr.ErrBusiness("forbidden")
		}
		return provider, nil
	}

	return nil, httperr.ErrBusiness("forbidden")
}

func actionFor(target domain.Status) string {
	switch target {
	case domain.StatusCancelled:
		return "cancelled"
	case domain.StatusCompleted:
		return "completed"
	case domain.StatusAccepted:
		return "accepted"
	case domain.StatusInProgress:
		return "started"
	}
	return "updated"
}

func eventFor(b *models.Booking, provider *models.Provider) realtime.Event {
	if domain.Status(b.Status) == domain.StatusCancelled {
		return realtime.CancelledEvent(b, b.CustomerID, provider.UserID)
	}
	return realtime.StatusUpdateEvent(b, b.CustomerID, provider.UserID)
}
