package dto

import "time"

type BookingListDTO struct {
	ID           uint      `json:"id"`
	ServiceID    uint      `json:"service_id"`
	ServiceTitle string    `json:"service_title"`
	BookingDate  time.Time `json:"booking_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
