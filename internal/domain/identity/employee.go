package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/delivery/backend/internal/domain/shared"
)

// Employee represents a staff profile attached to a user account.
// Employees manage orders assigned to them
type Employee struct {
	shared.BaseAggregateRoot
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	User     *User     `gorm:"foreignKey:UserID"`
	Position string    `gorm:"type:varchar(100);not null"`
	Phone    string    `gorm:"type:varchar(30)"`
	HiredAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new employee profile
func NewEmployee(userID uuid.UUID, position string, hiredAt time.Time) (*Employee, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	position = strings.TrimSpace(position)
	if position == "" {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot be empty")
	}
	if len(position) > 100 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 100 characters")
	}

	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Position:          position,
		HiredAt:           hiredAt,
	}, nil
}

// SetPosition updates the employee's position
func (e *Employee) SetPosition(position string) error {
	position = strings.TrimSpace(position)
	if position == "" {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot be empty")
	}

	e.Position = position
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetPhone updates the employee's phone number
func (e *Employee) SetPhone(phone string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	e.Phone = phone
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}
