package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/delivery/backend/internal/domain/identity"
	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/infrastructure/auth"
	"github.com/delivery/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Client), args.Error(1)
}

func (m *MockClientRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *identity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *identity.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthService() (*AuthService, *MockUserRepository, *MockClientRepository, *MockEmployeeRepository) {
	userRepo := new(MockUserRepository)
	clientRepo := new(MockClientRepository)
	employeeRepo := new(MockEmployeeRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		Issuer:                 "delivery-backend",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
	})
	return NewAuthService(userRepo, clientRepo, employeeRepo, jwtService), userRepo, clientRepo, employeeRepo
}

func TestRegisterClient(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and client profile", func(t *testing.T) {
		service, userRepo, clientRepo, _ := newAuthService()
		userRepo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		clientRepo.On("Save", ctx, mock.AnythingOfType("*identity.Client")).Return(nil)

		resp, err := service.RegisterClient(ctx, RegisterClientRequest{
			Email:     "new@example.com",
			Password:  "secret1password",
			Phone:     "+375 (29) 123-45-67",
			BirthDate: time.Now().AddDate(-25, 0, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "client", resp.User.Role)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		clientRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		service, userRepo, _, _ := newAuthService()
		userRepo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil)

		_, err := service.RegisterClient(ctx, RegisterClientRequest{
			Email:     "taken@example.com",
			Password:  "secret1password",
			Phone:     "+375 (29) 123-45-67",
			BirthDate: time.Now().AddDate(-25, 0, 0),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("rejects underage registration without persisting", func(t *testing.T) {
		service, userRepo, clientRepo, _ := newAuthService()
		userRepo.On("ExistsByEmail", ctx, "kid@example.com").Return(false, nil)

		_, err := service.RegisterClient(ctx, RegisterClientRequest{
			Email:     "kid@example.com",
			Password:  "secret1password",
			Phone:     "+375 (29) 123-45-67",
			BirthDate: time.Now().AddDate(-15, 0, 0),
		})
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	existingUser := func(t *testing.T) *identity.User {
		user, err := identity.NewUser("user@example.com", "secret1password")
		require.NoError(t, err)
		return user
	}

	t.Run("successful login resolves role", func(t *testing.T) {
		service, userRepo, clientRepo, employeeRepo := newAuthService()
		user := existingUser(t)
		client, err := identity.NewClient(user.ID, "+375 (29) 123-45-67", time.Now().AddDate(-25, 0, 0))
		require.NoError(t, err)

		userRepo.On("FindByEmail", ctx, "user@example.com").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		employeeRepo.On("FindByUserID", ctx, user.ID).Return(nil, shared.ErrNotFound)
		clientRepo.On("FindByUserID", ctx, user.ID).Return(client, nil)

		resp, err := service.Login(ctx, LoginRequest{Email: "user@example.com", Password: "secret1password"})
		require.NoError(t, err)
		assert.Equal(t, "client", resp.User.Role)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		service, userRepo, _, _ := newAuthService()
		user := existingUser(t)
		userRepo.On("FindByEmail", ctx, "user@example.com").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "user@example.com", Password: "wrong1password"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("unknown email gives same error as wrong password", func(t *testing.T) {
		service, userRepo, _, _ := newAuthService()
		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("disabled account rejected", func(t *testing.T) {
		service, userRepo, _, _ := newAuthService()
		user := existingUser(t)
		user.Deactivate()
		userRepo.On("FindByEmail", ctx, "user@example.com").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "user@example.com", Password: "secret1password"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disabled")
	})
}

func TestResolvePrincipal(t *testing.T) {
	ctx := context.Background()

	t.Run("superuser wins over profiles", func(t *testing.T) {
		service, userRepo, _, _ := newAuthService()
		user, err := identity.NewSuperuser("admin@example.com", "secret1password")
		require.NoError(t, err)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		principal, err := service.ResolvePrincipal(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, principal.IsSuperuser())
	})

	t.Run("employee profile resolves before client", func(t *testing.T) {
		service, userRepo, _, employeeRepo := newAuthService()
		user, err := identity.NewUser("staff@example.com", "secret1password")
		require.NoError(t, err)
		employee, err := identity.NewEmployee(user.ID, "Courier", time.Now())
		require.NoError(t, err)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		employeeRepo.On("FindByUserID", ctx, user.ID).Return(employee, nil)

		principal, err := service.ResolvePrincipal(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, principal.IsEmployee())
		assert.Equal(t, employee.ID, principal.EmployeeID)
	})

	t.Run("no profile yields anonymous principal", func(t *testing.T) {
		service, userRepo, clientRepo, employeeRepo := newAuthService()
		user, err := identity.NewUser("limbo@example.com", "secret1password")
		require.NoError(t, err)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		employeeRepo.On("FindByUserID", ctx, user.ID).Return(nil, shared.ErrNotFound)
		clientRepo.On("FindByUserID", ctx, user.ID).Return(nil, shared.ErrNotFound)

		principal, err := service.ResolvePrincipal(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, principal.HasProfile())
	})

	t.Run("unknown user yields anonymous principal", func(t *testing.T) {
		service, userRepo, _, _ := newAuthService()
		id := uuid.New()
		userRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		principal, err := service.ResolvePrincipal(ctx, id)
		require.NoError(t, err)
		assert.False(t, principal.HasProfile())
	})
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()

	t.Run("returns directory with user details", func(t *testing.T) {
		service, _, _, employeeRepo := newAuthService()
		user, err := identity.NewUser("courier@example.com", "secret1password")
		require.NoError(t, err)
		user.SetName("Alena", "Kavaleva")
		employee, err := identity.NewEmployee(user.ID, "Courier", time.Now())
		require.NoError(t, err)
		employee.User = user

		employeeRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Search == "courier" && f.Page == 1
		})).Return([]identity.Employee{*employee}, nil)

		items, err := service.ListEmployees(ctx, ListEmployeesRequest{Search: "courier"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, employee.ID, items[0].ID)
		assert.Equal(t, "Courier", items[0].Position)
		assert.Equal(t, "courier@example.com", items[0].Email)
		assert.Equal(t, "Alena Kavaleva", items[0].Name)
	})

	t.Run("pagination and ordering pass through to the repository", func(t *testing.T) {
		service, _, _, employeeRepo := newAuthService()
		employeeRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 2 && f.PageSize == 10 && f.OrderBy == "hired_at" && f.OrderDir == "desc"
		})).Return([]identity.Employee{}, nil)

		items, err := service.ListEmployees(ctx, ListEmployeesRequest{
			Page: 2, PageSize: 10, OrderBy: "hired_at", OrderDir: "desc",
		})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	newClient := func(t *testing.T) *identity.Client {
		t.Helper()
		client, err := identity.NewClient(uuid.New(), "+375 (29) 123-45-67", time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		return client
	}
	str := func(s string) *string { return &s }

	t.Run("updates only the provided fields", func(t *testing.T) {
		service, _, clientRepo, _ := newAuthService()
		client := newClient(t)
		require.NoError(t, client.SetAddress("Minsk, Lenina 1"))
		principal := identity.NewClientPrincipal(client.UserID, "client@example.com", client.ID)

		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		clientRepo.On("Save", ctx, client).Return(nil)

		resp, err := service.UpdateProfile(ctx, principal, UpdateProfileRequest{
			Phone: str("+375 (29) 765-43-21"),
		})
		require.NoError(t, err)
		assert.Equal(t, "+375 (29) 765-43-21", resp.Phone)
		assert.Equal(t, "Minsk, Lenina 1", resp.Address)
		clientRepo.AssertExpectations(t)
	})

	t.Run("updates address and birth date", func(t *testing.T) {
		service, _, clientRepo, _ := newAuthService()
		client := newClient(t)
		principal := identity.NewClientPrincipal(client.UserID, "client@example.com", client.ID)
		birthDate := time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC)

		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		clientRepo.On("Save", ctx, client).Return(nil)

		resp, err := service.UpdateProfile(ctx, principal, UpdateProfileRequest{
			Address:   str("Grodno, Savetskaja 5"),
			BirthDate: &birthDate,
		})
		require.NoError(t, err)
		assert.Equal(t, "Grodno, Savetskaja 5", resp.Address)
		assert.True(t, resp.BirthDate.Equal(birthDate))
	})

	t.Run("rejects a malformed phone", func(t *testing.T) {
		service, _, clientRepo, _ := newAuthService()
		client := newClient(t)
		principal := identity.NewClientPrincipal(client.UserID, "client@example.com", client.ID)

		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)

		_, err := service.UpdateProfile(ctx, principal, UpdateProfileRequest{Phone: str("12345")})
		require.Error(t, err)
		clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an underage birth date", func(t *testing.T) {
		service, _, clientRepo, _ := newAuthService()
		client := newClient(t)
		principal := identity.NewClientPrincipal(client.UserID, "client@example.com", client.ID)
		tooYoung := time.Now().AddDate(-10, 0, 0)

		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)

		_, err := service.UpdateProfile(ctx, principal, UpdateProfileRequest{BirthDate: &tooYoung})
		require.Error(t, err)
		clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("staff have no client profile to edit", func(t *testing.T) {
		service, _, clientRepo, _ := newAuthService()
		principal := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", uuid.New())

		_, err := service.UpdateProfile(ctx, principal, UpdateProfileRequest{})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		clientRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
