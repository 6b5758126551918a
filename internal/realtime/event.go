package realtime

import (
	"fmt"

	"github.com/BruksfildServices01/services-marketplace/internal/models"
)

// ===============================
// Eventos de domínio
// ===============================

type EventType string

const (
	EventBookingNew       EventType = "booking:new"
	EventStatusUpdate     EventType = "booking:statusUpdate"
	EventBookingCancelled EventType = "booking:cancelled"
)

// Event é a mensagem empurrada para cada conexão viva do destinatário.
// Recipients são ids de usuário; resolvidos pelo caso de uso, nunca
// pelo hub (o hub só conhece userID -> conexões).
type Event struct {
	Type    EventType       `json:"type"`
	Booking *models.Booking `json:"booking"`
	Message string          `json:"message"`

	Recipients []uint `json:"-"`
}

type Notifier interface {
	Publish(ev Event)
}

// NopNotifier descarta tudo. Usado quando a camada realtime não está
// configurada, no lugar de checagens de nil espalhadas.
type NopNotifier struct{}

func (NopNotifier) Publish(Event) {}

// ===============================
// Constructors
// ===============================

func NewBookingEvent(b *models.Booking, providerUserID uint) Event {
	return Event{
		Type:       EventBookingNew,
		Booking:    b,
		Message:    "Novo agendamento recebido.",
		Recipients: []uint{providerUserID},
	}
}

func StatusUpdateEvent(b *models.Booking, customerUserID, providerUserID uint) Event {
	return Event{
		Type:       EventStatusUpdate,
		Booking:    b,
		Message:    fmt.Sprintf("Agendamento atualizado para %s.", b.Status),
		Recipients: []uint{customerUserID, providerUserID},
	}
}

func CancelledEvent(b *models.Booking, customerUserID, providerUserID uint) Event {
	return Event{
		Type:       EventBookingCancelled,
		Booking:    b,
		Message:    "Agendamento cancelado.",
		Recipients: []uint{customerUserID, providerUserID},
	}
}
