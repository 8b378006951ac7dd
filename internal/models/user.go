package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

const MaxUsernameLength = 150

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username exceeds 150 characters")
)

// User is the local record of an externally authenticated principal.
// Credentials live with the identity provider.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrUsernameRequired
	}

	if utf8.RuneCountInString(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	return nil
}

func (u *User) TableName() string {
	return "users"
}
