package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/services-marketplace/internal/models"
)

type Repository interface {
	// -------- Provider / Service (catálogo) --------
	GetProviderByID(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	GetProviderByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Provider, error)

	GetService(
		ctx context.Context,
		serviceID uint,
		providerID uint,
	) (*models.Service, error)

	// -------- Booking (create / read) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	ListByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Booking, error)

	ListByProvider(
		ctx context.Context,
		providerID uint,
	) ([]models.Booking, error)

	// -------- Booking (state change) --------
	// ApplyTransition é um compare-and-swap: só grava se o status
	// atual ainda for `expected`. Caso contrário falha com
	// httperr.ErrBusiness("stale_state") sem alterar nada.
	ApplyTransition(
		ctx context.Context,
		id uint,
		expected Status,
		next Status,
		at time.Time,
	) (*models.Booking, error)
}
