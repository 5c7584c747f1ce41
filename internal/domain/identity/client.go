package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/delivery/backend/internal/domain/shared"
)

// MinClientAge is the minimum age for registering a client profile
const MinClientAge = 18

/// Belarusian mobile number format: +375 (29) XXX-XX-XX
var phoneRegex = regexp.MustCompile(`^\+375 \((29|33|44|25)\) \d{3}-\d{2}-\d{2}$`)

// Client represents a customer profile attached to a user account
type Client struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	User      *User     `gorm:"foreignKey:UserID"`
	Phone     string    `gorm:"type:varchar(30);not null"`
	BirthDate time.Time `gorm:"not null"`
	Address   string    `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client profile
func NewClient(userID uuid.UUID, phone string, birthDate time.Time) (*Client, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if err := validateBirthDate(birthDate, time.Now()); err != nil {
		return nil, err
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Phone:             phone,
		BirthDate:         birthDate,
	}, nil
}

// SetPhone updates the client's phone number
func (c *Client) SetPhone(phone string) error {
	if err := validatePhone(phone); err != nil {
		return err
	}

	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress updates the client's default delivery address
func (c *Client) SetAddress(address string) error {
	address = strings.TrimSpace(address)
	if len(address) > 300 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 300 characters")
	}

	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetBirthDate updates the client's birth date, keeping the age rule
func (c *Client) SetBirthDate(birthDate time.Time) error {
	if err := validateBirthDate(birthDate, time.Now()); err != nil {
		return err
	}

	c.BirthDate = birthDate
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Age returns the client's age in full years at the given time
func (c *Client) Age(now time.Time) int {
	age := now.Year() - c.BirthDate.Year()
	anniversary := c.BirthDate.AddDate(age, 0, 0)
	if anniversary.After(now) {
		age--
	}
	return age
}

func validatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone must match the format +375 (29) XXX-XX-XX")
	}
	return nil
}

func validateBirthDate(birthDate, now time.Time) error {
	if birthDate.After(now) {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date cannot be in the future")
	}
	age := now.Year() - birthDate.Year()
	if birthDate.AddDate(age, 0, 0).After(now) {
		age--
	}
	if age < MinClientAge {
		return shared.NewDomainError("UNDERAGE", "Clients must be at least 18 years old")
	}
	return nil
}
