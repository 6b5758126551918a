package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/services-marketplace/internal/domain/booking"
	"github.com/BruksfildServices01/services-marketplace/internal/httperr"
	"github.com/BruksfildServices01/services-marketplace/internal/models"
	"github.com/BruksfildServices01/services-marketplace/internal/realtime"
)

// fakeRepo é um Repository em memória com o mesmo contrato de CAS do
// repositório gorm, para exercitar o caso de uso sem banco.
type fakeRepo struct {
	mu sync.Mutex

	providers map[uint]*models.Provider
	services  map[uint]*models.Service
	bookings  map[uint]*models.Booking

	nextBookingID uint
	applied       int // transições efetivamente gravadas

	staleOnce   bool // injeta um stale_state na próxima transição
	staleAlways bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		providers:     make(map[uint]*models.Provider),
		services:      make(map[uint]*models.Service),
		bookings:      make(map[uint]*models.Booking),
		nextBookingID: 1,
	}
}

func (f *fakeRepo) addProvider(id, userID uint, status string) *models.Provider {
	p := &models.Provider{ID: id, UserID: userID, VerificationStatus: status}
	f.providers[id] = p
	return p
}

func (f *fakeRepo) addService(id, providerID uint) *models.Service {
	s := &models.Service{ID: id, ProviderID: providerID, Title: "svc", Active: true}
	f.services[id] = s
	return s
}

func (f *fakeRepo) addBooking(customerID, providerID, serviceID uint, status domain.Status) *models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := &models.Booking{
		ID:         f.nextBookingID,
		CustomerID: customerID,
		ProviderID: providerID,
		ServiceID:  serviceID,
		Status:     string(status),
		CreatedAt:  time.Now(),
	}
	f.nextBookingID++
	f.bookings[b.ID] = b
	return b
}

func copyBooking(b *models.Booking) *models.Booking {
	cp := *b
	return &cp
}

func (f *fakeRepo) GetProviderByID(_ context.Context, id uint) (*models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[id]
	if !ok {
		return nil, httperr.ErrBusiness("provider_not_found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) GetProviderByUserID(_ context.Context, userID uint) (*models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.providers {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness("provider_not_found")
}

func (f *fakeRepo) GetService(_ context.Context, serviceID, providerID uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[serviceID]
	if !ok || s.ProviderID != providerID {
		return nil, httperr.ErrBusiness("service_mismatch")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = f.nextBookingID
	f.nextBookingID++
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = copyBooking(b)
	return nil
}

func (f *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return copyBooking(b), nil
}

func (f *fakeRepo) ListByCustomer(_ context.Context, customerID uint) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByProvider(_ context.Context, providerID uint) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ApplyTransition(
	_ context.Context,
	id uint,
	expected domain.Status,
	next domain.Status,
	at time.Time,
) (*models.Booking, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.staleAlways {
		return nil, httperr.ErrBusiness("stale_state")
	}
	if f.staleOnce {
		f.staleOnce = false
		return nil, httperr.ErrBusiness("stale_state")
	}

	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if domain.Status(b.Status) != expected {
		return nil, httperr.ErrBusiness("stale_state")
	}

	b.Status = string(next)
	b.UpdatedAt = at
	f.applied++

	return copyBooking(b), nil
}

func (f *fakeRepo) appliedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied
}

var _ domain.Repository = (*fakeRepo)(nil)

// recorder captura eventos publicados.
type recorder struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (r *recorder) Publish(ev realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]realtime.Event, len(r.events))
	copy(out, r.events)
	return out
}
