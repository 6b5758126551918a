package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/services-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Provider / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetProviderByID(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("provider_not_found")
		}
		return nil, err
	}
	return &provider, nil
}

func (r *BookingGormRepository) GetProviderByUserID(
	ctx context.Context,
	userID uint,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&provider).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("provider_not_found")
		}
		return nil, err
	}
	return &provider, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
	providerID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", serviceID, providerID).
		First(&svc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("service_mismatch")
		}
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Booking (create / read)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&b, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListByProvider(
	ctx context.Context,
	providerID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

// ApplyTransition grava o novo status somente se o status atual ainda
// for `expected` (UPDATE ... WHERE id = ? AND status = ?). Zero linhas
// afetadas significa que outro writer chegou primeiro.
func (r *BookingGormRepository) ApplyTransition(
	ctx context.Context,
	id uint,
	expected domain.Status,
	next domain.Status,
	at time.Time,
) (*models.Booking, error) {

	fields := map[string]any{
		"status":     string(next),
		"updated_at": at,
	}
	switch next {
	case domain.StatusCancelled:
		fields["cancelled_at"] = at
	case domain.StatusCompleted:
		fields["completed_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(fields)

	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, httperr.ErrBusiness("stale_state")
	}

	return r.GetBooking(ctx, id)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
