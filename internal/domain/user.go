package domain

import (
	"errors"
	"strings"
	"time"
)

// Common validation errors
var (
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyFirstName      = errors.New("first name cannot be empty")
	ErrEmptyLastName       = errors.New("last name cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. The ID is assigned by the database
// on insert and never reused; CreatedAt is set once, UpdatedAt is bumped
// on every mutation.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Password       string    `json:"-"` // Plaintext, only populated between request decode and hashing
	HashedPassword string    `json:"-"` // Never expose the password hash
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User from registration input. The plaintext password is
// carried on the struct for the persistence layer to hash; it is never
// stored. ID and timestamps are assigned by the store on insert.
func NewUser(email, firstName, lastName, password string) (*User, error) {
	user := &User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  password,
		IsActive:  true,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the User's fields. A user must carry either a plaintext
// password pending hashing (new users) or an existing hash (loaded rows).
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(u.LastName) == "" {
		return ErrEmptyLastName
	}

	if u.Password != "" {
		return validatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a basic structural check: a single non-leading,
// non-trailing @ with a dotted domain part. The API layer enforces the
// stricter validator/v10 "email" rule; this guards direct store usage.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// validatePassword checks plaintext password length. The upper bound is
// bcrypt's input limit.
func validatePassword(password string) error {
	switch {
	case len(password) < 8:
		return ErrPasswordTooShort
	case len(password) > 72:
		return ErrPasswordTooLong
	}
	return nil
}
