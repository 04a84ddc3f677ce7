package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/calref/user-api/internal/service/auth"
)

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	verifier := auth.NewBcryptVerifier()

	assert.NoError(t, verifier.Compare(string(hash), "password123"))
	assert.Error(t, verifier.Compare(string(hash), "wrong-password"))
	assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "password123"))
}
