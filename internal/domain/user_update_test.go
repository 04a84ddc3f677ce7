package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calref/user-api/internal/domain"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserUpdateIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.UserUpdate{}.IsEmpty())
	assert.False(t, domain.UserUpdate{Email: strPtr("a@b.co")}.IsEmpty())
	assert.False(t, domain.UserUpdate{IsActive: boolPtr(false)}.IsEmpty())
}

func TestUserUpdateValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		update  domain.UserUpdate
		wantErr error
	}{
		{
			name:   "empty update is valid",
			update: domain.UserUpdate{},
		},
		{
			name: "all fields valid",
			update: domain.UserUpdate{
				Email:     strPtr("new@example.com"),
				FirstName: strPtr("New"),
				LastName:  strPtr("Name"),
				Password:  strPtr("newpassword123"),
				IsActive:  boolPtr(false),
			},
		},
		{
			name:    "empty email supplied",
			update:  domain.UserUpdate{Email: strPtr("")},
			wantErr: domain.ErrEmptyEmail,
		},
		{
			name:    "invalid email supplied",
			update:  domain.UserUpdate{Email: strPtr("nope")},
			wantErr: domain.ErrInvalidEmail,
		},
		{
			name:    "empty first name supplied",
			update:  domain.UserUpdate{FirstName: strPtr("")},
			wantErr: domain.ErrEmptyFirstName,
		},
		{
			name:    "empty last name supplied",
			update:  domain.UserUpdate{LastName: strPtr("")},
			wantErr: domain.ErrEmptyLastName,
		},
		{
			name:    "empty password supplied",
			update:  domain.UserUpdate{Password: strPtr("")},
			wantErr: domain.ErrEmptyPassword,
		},
		{
			name:    "short password supplied",
			update:  domain.UserUpdate{Password: strPtr("short")},
			wantErr: domain.ErrPasswordTooShort,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.update.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestUserUpdateApply(t *testing.T) {
	t.Parallel()

	base := func() *domain.User {
		return &domain.User{
			ID:             42,
			Email:          "old@example.com",
			FirstName:      "Old",
			LastName:       "Name",
			HashedPassword: "hash",
			IsActive:       true,
		}
	}

	t.Run("only supplied fields change", func(t *testing.T) {
		t.Parallel()

		user := base()
		domain.UserUpdate{FirstName: strPtr("New")}.Apply(user)

		assert.Equal(t, "New", user.FirstName)
		assert.Equal(t, "old@example.com", user.Email)
		assert.Equal(t, "Name", user.LastName)
		assert.True(t, user.IsActive)
	})

	t.Run("explicit false is applied", func(t *testing.T) {
		t.Parallel()

		user := base()
		domain.UserUpdate{IsActive: boolPtr(false)}.Apply(user)

		assert.False(t, user.IsActive)
	})

	t.Run("password lands in plaintext field for hashing", func(t *testing.T) {
		t.Parallel()

		user := base()
		domain.UserUpdate{Password: strPtr("newpassword123")}.Apply(user)

		assert.Equal(t, "newpassword123", user.Password)
		assert.Equal(t, "hash", user.HashedPassword, "Apply never writes the hash")
	})
}
