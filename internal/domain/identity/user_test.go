package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user", func(t *testing.T) {
		user, err := NewUser("Ivan@Example.com", "secret1password")
		require.NoError(t, err)
		assert.Equal(t, "ivan@example.com", user.Email)
		assert.True(t, user.Active)
		assert.False(t, user.IsSuperuser)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret1password", user.PasswordHash)
	})

	t.Run("superuser flag", func(t *testing.T) {
		user, err := NewSuperuser("admin@example.com", "secret1password")
		require.NoError(t, err)
		assert.True(t, user.IsSuperuser)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "secret1password")
		assert.Error(t, err)
		_, err = NewUser("", "secret1password")
		assert.Error(t, err)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		_, err := NewUser("a@b.com", "short1")
		assert.Error(t, err)
		_, err = NewUser("a@b.com", "onlyletters")
		assert.Error(t, err)
		_, err = NewUser("a@b.com", "12345678")
		assert.Error(t, err)
	})
}

func TestUserPassword(t *testing.T) {
	user, err := NewUser("a@b.com", "secret1password")
	require.NoError(t, err)

	t.Run("verify", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("secret1password"))
		assert.False(t, user.VerifyPassword("wrong1password"))
	})

	t.Run("change requires current password", func(t *testing.T) {
		err := user.ChangePassword("wrong1password", "newsecret2pass")
		assert.Error(t, err)

		require.NoError(t, user.ChangePassword("secret1password", "newsecret2pass"))
		assert.True(t, user.VerifyPassword("newsecret2pass"))
	})
}

func TestUserFullName(t *testing.T) {
	user, err := NewUser("a@b.com", "secret1password")
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", user.FullName())

	user.SetName("Ivan", "Ivanov")
	assert.Equal(t, "Ivan Ivanov", user.FullName())
}

func TestNewClient(t *testing.T) {
	userID := uuid.New()
	adultBirth := time.Now().AddDate(-30, 0, 0)

	t.Run("creates client with valid data", func(t *testing.T) {
		client, err := NewClient(userID, "+375 (29) 123-45-67", adultBirth)
		require.NoError(t, err)
		assert.Equal(t, userID, client.UserID)
		assert.Equal(t, 30, client.Age(time.Now()))
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		_, err := NewClient(userID, "+375291234567", adultBirth)
		assert.Error(t, err)
		_, err = NewClient(userID, "+7 (29) 123-45-67", adultBirth)
		assert.Error(t, err)
	})

	t.Run("rejects underage client", func(t *testing.T) {
		_, err := NewClient(userID, "+375 (29) 123-45-67", time.Now().AddDate(-17, 0, 0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "18")
	})

	t.Run("rejects future birth date", func(t *testing.T) {
		_, err := NewClient(userID, "+375 (29) 123-45-67", time.Now().AddDate(1, 0, 0))
		assert.Error(t, err)
	})
}

func TestNewEmployee(t *testing.T) {
	t.Run("creates employee", func(t *testing.T) {
		employee, err := NewEmployee(uuid.New(), "Courier", time.Now())
		require.NoError(t, err)
		assert.Equal(t, "Courier", employee.Position)
	})

	t.Run("rejects empty position", func(t *testing.T) {
		_, err := NewEmployee(uuid.New(), "  ", time.Now())
		assert.Error(t, err)
	})
}

func TestPrincipal(t *testing.T) {
	t.Run("superuser", func(t *testing.T) {
		p := NewSuperuserPrincipal(uuid.New(), "admin@example.com")
		assert.True(t, p.IsSuperuser())
		assert.True(t, p.HasProfile())
	})

	t.Run("employee", func(t *testing.T) {
		p := NewEmployeePrincipal(uuid.New(), "staff@example.com", uuid.New())
		assert.True(t, p.IsEmployee())
		assert.False(t, p.IsSuperuser())
		assert.NotEqual(t, uuid.Nil, p.EmployeeID)
	})

	t.Run("client", func(t *testing.T) {
		p := NewClientPrincipal(uuid.New(), "client@example.com", uuid.New())
		assert.True(t, p.IsClient())
	})

	t.Run("anonymous has no profile", func(t *testing.T) {
		p := NewAnonymousPrincipal()
		assert.False(t, p.HasProfile())
	})
}
