package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/delivery/backend/internal/domain/identity"
	"github.com/delivery/backend/internal/infrastructure/auth"
)

// RegisterClientRequest represents a client self-registration
type RegisterClientRequest struct {
	Email     string    `json:"email" binding:"required,email"`
	Password  string    `json:"password" binding:"required,min=8,max=128"`
	FirstName string    `json:"first_name" binding:"max=100"`
	LastName  string    `json:"last_name" binding:"max=100"`
	Phone     string    `json:"phone" binding:"required"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
	Address   string    `json:"address" binding:"max=300"`
}

// RegisterEmployeeRequest represents staff account creation (superuser only)
type RegisterEmployeeRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Position  string `json:"position" binding:"required,min=1,max=100"`
	Phone     string `json:"phone"`
}

// ListEmployeesRequest represents a staff directory query
type ListEmployeesRequest struct {
	Search   string `form:"search" binding:"max=100"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=position hired_at created_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpdateProfileRequest represents a client editing their own profile.
// Nil fields are left unchanged
type UpdateProfileRequest struct {
	Phone     *string    `json:"phone"`
	Address   *string    `json:"address"`
	BirthDate *time.Time `json:"birth_date"`
}

// ClientProfileResponse represents a client profile in API responses
type ClientProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	BirthDate time.Time `json:"birth_date"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   UserResponse    `json:"user"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	IsSuperuser bool      `json:"is_superuser"`
}

// EmployeeResponse represents an employee profile in API responses
type EmployeeResponse struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Position string    `json:"position"`
	HiredAt  time.Time `json:"hired_at"`
}

func toEmployeeResponse(employee *identity.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:       employee.ID,
		UserID:   employee.UserID,
		Position: employee.Position,
		HiredAt:  employee.HiredAt,
	}
	if employee.User != nil {
		resp.Email = employee.User.Email
		resp.Name = employee.User.FullName()
	}
	return resp
}

func toUserResponse(user *identity.User, role identity.Role) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        string(role),
		IsSuperuser: user.IsSuperuser,
	}
}
