package mocks

import (
	"context"

	"github.com/calref/user-api/internal/domain"
	"github.com/calref/user-api/internal/store"
)

// MockUserService implements service.UserService for handler tests. It
// delegates to a MockUserStore by default so handler tests get working
// CRUD semantics without a service or database.
type MockUserService struct {
	ListUsersFn      func(ctx context.Context, skip, limit int) ([]*domain.User, error)
	GetUserFn        func(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	CreateUserFn     func(ctx context.Context, email, firstName, lastName, password string, isActive bool) (*domain.User, error)
	UpdateUserFn     func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	DeleteUserFn     func(ctx context.Context, id int64) error

	Store *MockUserStore
}

// NewMockUserService creates a service mock backed by a fresh in-memory
// store.
func NewMockUserService() *MockUserService {
	return &MockUserService{
		Store: NewMockUserStore(),
	}
}

// ListUsers implements the UserService interface.
func (m *MockUserService) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx, skip, limit)
	}
	return m.Store.List(ctx, skip, limit)
}

// GetUser implements the UserService interface.
func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return m.Store.GetByID(ctx, id)
}

// GetUserByEmail implements the UserService interface.
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetUserByEmailFn != nil {
		return m.GetUserByEmailFn(ctx, email)
	}
	return m.Store.GetByEmail(ctx, email)
}

// CreateUser implements the UserService interface.
func (m *MockUserService) CreateUser(
	ctx context.Context,
	email, firstName, lastName, password string,
	isActive bool,
) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, email, firstName, lastName, password, isActive)
	}

	user, err := domain.NewUser(email, firstName, lastName, password)
	if err != nil {
		return nil, store.ErrInvalidEntity
	}
	user.IsActive = isActive

	if err := m.Store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser implements the UserService interface.
func (m *MockUserService) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, id, update)
	}
	return m.Store.Update(ctx, id, update)
}

// DeleteUser implements the UserService interface.
func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return m.Store.Delete(ctx, id)
}
