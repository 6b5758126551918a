package booking

import (
	"context"

	domain "github.com/BruksfildServices01/services-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/models"
)

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

// Execute devolve o agendamento se o caller for dono (cliente ou
// prestador) ou admin.
func (uc *GetBooking) Execute(
	ctx context.Context,
	callerID uint,
	callerRole domain.Role,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch callerRole {

	case domain.RoleAdmin:
		return b, nil

	case domain.RoleCustomer:
		if b.CustomerID != callerID {
			return nil, httperr.ErrBusiness("forbidden")
		}
		return b, nil

	case domain.RoleProvider:
		provider, err := uc.repo.GetProviderByUserID(ctx, callerID)
		if err != nil || provider.ID != b.ProviderID {
			return nil, httperr.ErrBusiness("forbidden")
		}
		return b, nil
	}

	return nil, httperr.ErrBusiness("forbidden")
}
