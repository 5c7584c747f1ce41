package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/delivery/backend/internal/domain/identity"
	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/infrastructure/auth"
)

// AuthService handles registration, login, and principal resolution
type AuthService struct {
	userRepo     identity.UserRepository
	clientRepo   identity.ClientRepository
	employeeRepo identity.EmployeeRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	clientRepo identity.ClientRepository,
	employeeRepo identity.EmployeeRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		clientRepo:   clientRepo,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// RegisterClient creates a user account with a client profile
func (s *AuthService) RegisterClient(ctx context.Context, req RegisterClientRequest) (*LoginResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	user.SetName(req.FirstName, req.LastName)

	client, err := identity.NewClient(user.ID, req.Phone, req.BirthDate)
	if err != nil {
		return nil, err
	}
	if req.Address != "" {
		if err := client.SetAddress(req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Tokens: tokens,
		User:   toUserResponse(user, identity.RoleClient),
	}, nil
}

// RegisterEmployee creates a user account with an employee profile.
// Callers must be superusers; the handler enforces that
func (s *AuthService) RegisterEmployee(ctx context.Context, req RegisterEmployeeRequest) (*EmployeeResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	user.SetName(req.FirstName, req.LastName)

	employee, err := identity.NewEmployee(user.ID, req.Position, time.Now())
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := employee.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	employee.User = user
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// UpdateProfile edits the principal's own client profile. Nil request
// fields are left as they are
func (s *AuthService) UpdateProfile(ctx context.Context, principal identity.Principal, req UpdateProfileRequest) (*ClientProfileResponse, error) {
	if !principal.IsClient() {
		return nil, shared.ErrForbidden
	}

	client, err := s.clientRepo.FindByID(ctx, principal.ClientID)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		if err := client.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		if err := client.SetAddress(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.BirthDate != nil {
		if err := client.SetBirthDate(*req.BirthDate); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	return &ClientProfileResponse{
		ID:        client.ID,
		UserID:    client.UserID,
		Phone:     client.Phone,
		Address:   client.Address,
		BirthDate: client.BirthDate,
	}, nil
}

// ListEmployees returns the staff directory, optionally filtered by a
// position search
func (s *AuthService) ListEmployees(ctx context.Context, req ListEmployeesRequest) ([]EmployeeResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	employees, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, toEmployeeResponse(&employees[i]))
	}
	return items, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}
	if !user.Active {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}
	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	principal, err := s.ResolvePrincipal(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Tokens: tokens,
		User:   toUserResponse(user, principal.Role),
	}, nil
}

// Refresh exchanges a refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	return s.jwtService.RefreshTokenPair(req.RefreshToken)
}

// WithTokenBlacklist enables token revocation on logout
func (s *AuthService) WithTokenBlacklist(blacklist auth.TokenBlacklist) *AuthService {
	s.blacklist = blacklist
	return s
}

// Logout revokes the presented access token by JTI. Without a
// configured blacklist the token simply expires on its own
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, jti, ttl)
}

// ResolvePrincipal resolves a user ID into a principal with a tagged
// role, computed once per request: superuser flag wins, then employee
// profile, then client profile, otherwise no role
func (s *AuthService) ResolvePrincipal(ctx context.Context, userID uuid.UUID) (identity.Principal, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return identity.NewAnonymousPrincipal(), nil
		}
		return identity.Principal{}, err
	}

	if user.IsSuperuser {
		return identity.NewSuperuserPrincipal(user.ID, user.Email), nil
	}

	employee, err := s.employeeRepo.FindByUserID(ctx, user.ID)
	if err == nil {
		return identity.NewEmployeePrincipal(user.ID, user.Email, employee.ID), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return identity.Principal{}, err
	}

	client, err := s.clientRepo.FindByUserID(ctx, user.ID)
	if err == nil {
		return identity.NewClientPrincipal(user.ID, user.Email, client.ID), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return identity.Principal{}, err
	}

	return identity.NewAnonymousPrincipal(), nil
}
