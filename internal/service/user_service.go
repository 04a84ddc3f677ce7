package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/calref/user-api/internal/domain"
	"github.com/calref/user-api/internal/store"
)

// UserService provides user CRUD operations on top of the store layer.
type UserService interface {
	// ListUsers returns users in ascending ID order, skipping skip rows
	// and returning at most limit rows.
	ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error)

	// GetUser retrieves a user by ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address. Used by the
	// create handler to reject duplicate registrations up front.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateUser creates a new user. The password is hashed before
	// storage; the returned user carries the generated ID and timestamps
	// and never the plaintext password.
	// Returns store.ErrEmailExists if the email is already registered.
	CreateUser(ctx context.Context, email, firstName, lastName, password string, isActive bool) (*domain.User, error)

	// UpdateUser applies a partial update to the user with the given ID
	// and returns the updated row.
	// Returns store.ErrUserNotFound if the user does not exist.
	UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)

	// DeleteUser removes a user permanently.
	// Returns store.ErrUserNotFound if the user does not exist.
	DeleteUser(ctx context.Context, id int64) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore  store.UserStore
	transactor store.Transactor
	logger     *slog.Logger
}

// NewUserService creates a new UserService. Mutating operations run inside
// transactions provided by the transactor.
func NewUserService(userStore store.UserStore, transactor store.Transactor, logger *slog.Logger) UserService {
	return &UserServiceImpl{
		userStore:  userStore,
		transactor: transactor,
		logger:     logger.With("component", "user_service"),
	}
}

// ListUsers retrieves a page of users.
func (s *UserServiceImpl) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx, skip, limit)
	if err != nil {
		s.logger.Error("failed to list users",
			"error", err,
			"skip", skip,
			"limit", limit)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.logger.Debug("listed users",
		"count", len(users),
		"skip", skip,
		"limit", limit)

	return users, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", id)
		} else {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found by email", "email", email)
		} else {
			s.logger.Error("failed to retrieve user by email",
				"error", err,
				"email", email)
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	return user, nil
}

// CreateUser creates a new user inside a transaction.
func (s *UserServiceImpl) CreateUser(
	ctx context.Context,
	email, firstName, lastName, password string,
	isActive bool,
) (*domain.User, error) {
	user, err := domain.NewUser(email, firstName, lastName, password)
	if err != nil {
		s.logger.Debug("invalid user data",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	user.IsActive = isActive

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to create user with existing email",
				"email", email)
		} else {
			s.logger.Error("failed to create user",
				"error", err,
				"email", email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// UpdateUser applies a partial update inside a transaction. Only fields
// present in the update are changed.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	var updated *domain.User

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		updated, err = s.userStore.WithTx(tx).Update(ctx, id, update)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to update non-existent user", "user_id", id)
		} else {
			s.logger.Error("failed to update user",
				"error", err,
				"user_id", id)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated",
		"user_id", id,
		"email", updated.Email)

	return updated, nil
}

// DeleteUser removes a user inside a transaction.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete non-existent user", "user_id", id)
		} else {
			s.logger.Error("failed to delete user",
				"error", err,
				"user_id", id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", id)

	return nil
}
