package identity

import (
	"github.com/google/uuid"
)

// Role is the resolved role of a request principal
type Role string

const (
	RoleSuperuser Role = "superuser"
	RoleEmployee  Role = "employee"
	RoleClient    Role = "client"
	RoleNone      Role = "none"
)

// Principal is the resolved identity of the current request,
// computed once per request and passed explicitly to the services
// that enforce visibility and mutation rules
type Principal struct {
	UserID     uuid.UUID
	Email      string
	Role       Role
	ClientID   uuid.UUID // set when Role is RoleClient
	EmployeeID uuid.UUID // set when Role is RoleEmployee
}

// NewSuperuserPrincipal builds a principal with unrestricted access
func NewSuperuserPrincipal(userID uuid.UUID, email string) Principal {
	return Principal{UserID: userID, Email: email, Role: RoleSuperuser}
}

// NewEmployeePrincipal builds a principal for a staff member
func NewEmployeePrincipal(userID uuid.UUID, email string, employeeID uuid.UUID) Principal {
	return Principal{UserID: userID, Email: email, Role: RoleEmployee, EmployeeID: employeeID}
}

// NewClientPrincipal builds a principal for a customer
func NewClientPrincipal(userID uuid.UUID, email string, clientID uuid.UUID) Principal {
	return Principal{UserID: userID, Email: email, Role: RoleClient, ClientID: clientID}
}

// NewAnonymousPrincipal builds a principal with no role profile
func NewAnonymousPrincipal() Principal {
	return Principal{Role: RoleNone}
}

// IsSuperuser reports whether the principal has unrestricted access
func (p Principal) IsSuperuser() bool {
	return p.Role == RoleSuperuser
}

// IsEmployee reports whether the principal is a non-superuser staff member
func (p Principal) IsEmployee() bool {
	return p.Role == RoleEmployee
}

// IsClient reports whether the principal is a customer
func (p Principal) IsClient() bool {
	return p.Role == RoleClient
}

// HasProfile reports whether the principal carries any role profile
func (p Principal) HasProfile() bool {
	return p.Role != RoleNone
}
