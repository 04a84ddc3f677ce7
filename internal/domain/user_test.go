package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calref/user-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid input", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("test@example.com", "Test", "User", "password123")
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, "Test", user.FirstName)
		assert.Equal(t, "User", user.LastName)
		assert.Equal(t, "password123", user.Password)
		assert.True(t, user.IsActive, "new users should default to active")
		assert.Zero(t, user.ID, "ID is assigned by the store")
	})

	testCases := []struct {
		name      string
		email     string
		firstName string
		lastName  string
		password  string
		wantErr   error
	}{
		{
			name:      "empty email",
			email:     "",
			firstName: "Test",
			lastName:  "User",
			password:  "password123",
			wantErr:   domain.ErrEmptyEmail,
		},
		{
			name:      "invalid email format",
			email:     "not-an-email",
			firstName: "Test",
			lastName:  "User",
			password:  "password123",
			wantErr:   domain.ErrInvalidEmail,
		},
		{
			name:      "email without dotted domain",
			email:     "test@localhost",
			firstName: "Test",
			lastName:  "User",
			password:  "password123",
			wantErr:   domain.ErrInvalidEmail,
		},
		{
			name:      "empty first name",
			email:     "test@example.com",
			firstName: "",
			lastName:  "User",
			password:  "password123",
			wantErr:   domain.ErrEmptyFirstName,
		},
		{
			name:      "whitespace first name",
			email:     "test@example.com",
			firstName: "   ",
			lastName:  "User",
			password:  "password123",
			wantErr:   domain.ErrEmptyFirstName,
		},
		{
			name:      "empty last name",
			email:     "test@example.com",
			firstName: "Test",
			lastName:  "",
			password:  "password123",
			wantErr:   domain.ErrEmptyLastName,
		},
		{
			name:      "empty password",
			email:     "test@example.com",
			firstName: "Test",
			lastName:  "User",
			password:  "",
			wantErr:   domain.ErrEmptyPassword,
		},
		{
			name:      "password too short",
			email:     "test@example.com",
			firstName: "Test",
			lastName:  "User",
			password:  "short",
			wantErr:   domain.ErrPasswordTooShort,
		},
		{
			name:      "password too long",
			email:     "test@example.com",
			firstName: "Test",
			lastName:  "User",
			password:  strings.Repeat("a", 73),
			wantErr:   domain.ErrPasswordTooLong,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			user, err := domain.NewUser(tc.email, tc.firstName, tc.lastName, tc.password)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	t.Run("loaded row with hash and no plaintext is valid", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{
			Email:          "test@example.com",
			FirstName:      "Test",
			LastName:       "User",
			HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		}
		assert.NoError(t, user.Validate())
	})

	t.Run("neither plaintext nor hash is invalid", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{
			Email:     "test@example.com",
			FirstName: "Test",
			LastName:  "User",
		}
		assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
	})

	t.Run("password of exactly 72 bytes is valid", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{
			Email:     "test@example.com",
			FirstName: "Test",
			LastName:  "User",
			Password:  strings.Repeat("a", 72),
		}
		assert.NoError(t, user.Validate())
	})
}
