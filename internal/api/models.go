package api

import (
	"time"

	"github.com/calref/user-api/internal/domain"
)

// CreateUserRequest is the payload for POST /users/. The plaintext
// password is hashed by the persistence layer and never stored.
type CreateUserRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	IsActive  *bool  `json:"is_active"  validate:"omitempty"`
}

// UpdateUserRequest is the payload for PUT /users/{id}. Every field is
// optional; only fields present in the JSON body are applied.
type UpdateUserRequest struct {
	Email     *string `json:"email"      validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=1"`
	Password  *string `json:"password"   validate:"omitempty,min=8,max=72"`
	IsActive  *bool   `json:"is_active"  validate:"omitempty"`
}

// ToDomain converts the request into the store's presence-aware update.
func (r UpdateUserRequest) ToDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
		IsActive:  r.IsActive,
	}
}

// UserResponse is the public user shape. The password hash is excluded
// structurally: the type has no field for it.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user to its public shape.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserListResponse maps a slice of domain users, always returning a
// non-nil slice so empty lists serialize as [] rather than null.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// WelcomeResponse is the GET / payload.
type WelcomeResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
