package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account able to sign in to the dashboard.
//
// Exactly one of the two token columns is meaningful at a time: an
// unconfirmed account keeps its confirmation token until the link is
// visited; a reset token only exists between a forgot-password request
// and its consumption or expiry. Email is stored exactly as submitted,
// without case normalisation.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Confirmed         bool       `gorm:"not null;default:false" json:"confirmed"`
	ConfirmationToken *string    `gorm:"index" json:"-"`
	ResetToken        *string    `gorm:"index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PublicUser is the minimal identity exposed to sessions and API clients.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
}

// Public projects the user onto its session-safe fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Confirmed: u.Confirmed}
}
