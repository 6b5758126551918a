package booking

import (
	"context"

	domain "github.com/BruksfildServices01/services-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute lista os agendamentos do próprio caller, no papel pedido.
// scope vazio assume o papel da credencial; pedir o escopo do outro
// papel é forbidden.
func (uc *ListBookings) Execute(
	ctx context.Context,
	callerID uint,
	callerRole domain.Role,
	scope string,
) ([]models.Booking, error) {

	if scope == "" {
		switch callerRole {
		case domain.RoleCustomer:
			scope = "customer"
		case domain.RoleProvider:
			scope = "provider"
		}
	}

	switch scope {

	case "customer":
		if callerRole != domain.RoleCustomer && callerRole != domain.RoleAdmin {
			return nil, httperr.ErrBusiness("forbidden")
		}
		return uc.repo.ListByCustomer(ctx, callerID)

	case "provider":
		if callerRole != domain.RoleProvider {
			return nil, httperr.ErrBusiness("forbidden")
		}
		provider, err := uc.repo.GetProviderByUserID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		return uc.repo.ListByProvider(ctx, provider.ID)
	}

	return nil, httperr.ErrBusiness("invalid_scope")
}
