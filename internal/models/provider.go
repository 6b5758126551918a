package models

import "time"

const (
	VerificationPending  = "PENDING"
	VerificationVerified = "VERIFIED"
	VerificationRejected = "REJECTED"
)

// Perfil de prestador, vinculado a um usuário com role PROVIDER
type Provider struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	BusinessName string `gorm:"size:100;not null" json:"business_name"`
	Bio          string `gorm:"size:255" json:"bio"`

	VerificationStatus string `gorm:"size:20;default:'PENDING'" json:"verification_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
