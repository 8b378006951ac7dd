package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

const (
	MaxDescriptionLength = 200

	// DateLayout is the wire and storage format of a transaction date
	DateLayout = "2006-01-02"
)

var (
	ErrDescriptionRequired = errors.New("transaction description is required")
	ErrDescriptionTooLong  = errors.New("transaction description exceeds 200 characters")
	ErrDateRequired        = errors.New("transaction date is required")
)

// Transaction is a single income or expense entry. Amount carries no sign
// convention; both incomes and expenses are stored as given.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"usuario"`
	CategoryID  *uint     `gorm:"index" json:"-"`
	Description string    `gorm:"type:varchar(200);not null" json:"descripcion"`
	Amount      float64   `gorm:"not null" json:"monto"`
	Date        time.Time `gorm:"type:date;not null" json:"fecha"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"categoria"`
}

func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}

func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrDescriptionRequired
	}

	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if t.Date.IsZero() {
		return ErrDateRequired
	}

	return nil
}

// ParseDate parses a calendar date without a time zone component.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormattedDate renders the date the way clients send it.
func (t *Transaction) FormattedDate() string {
	return t.Date.Format(DateLayout)
}

func (t *Transaction) TableName() string {
	return "transactions"
}
