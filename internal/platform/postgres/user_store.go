package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/calref/user-api/internal/domain"
	"github.com/calref/user-api/internal/store"
)

// userColumns is the scan order shared by every SELECT and RETURNING
// clause in this file.
const userColumns = "id, email, first_name, last_name, hashed_password, is_active, created_at, updated_at"

// UserStore implements store.UserStore using a PostgreSQL database as the
// storage backend. The users.email UNIQUE constraint is the authoritative
// duplicate guard: a violation surfaces as store.ErrEmailExists regardless
// of any pre-insert check performed by callers.
type UserStore struct {
	db         store.DBTX
	bcryptCost int
	slow       *SlowQueryLogger
}

// NewUserStore creates a PostgreSQL implementation of store.UserStore.
// The database handle is initialized and managed by the caller. Pass
// bcrypt.DefaultCost unless tests need a cheaper cost.
func NewUserStore(db store.DBTX, bcryptCost int, slow *SlowQueryLogger) *UserStore {
	return &UserStore{
		db:         db,
		bcryptCost: bcryptCost,
		slow:       slow,
	}
}

// Ensure UserStore implements store.UserStore.
var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
		slow:       s.slow,
	}
}

// List implements store.UserStore.List. Rows are ordered by ascending
// primary key, which for this table is insertion order.
func (s *UserStore) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY id ASC OFFSET $1 LIMIT $2"
	defer s.slow.Observe(ctx, "users.list")()

	rows, err := s.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to list users: %w", err))
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(fmt.Errorf("failed to iterate user rows: %w", err))
	}

	return users, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"
	defer s.slow.Observe(ctx, "users.get_by_id")()

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapUserError(err, "failed to get user by id")
	}
	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"
	defer s.slow.Observe(ctx, "users.get_by_email")()

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapUserError(err, "failed to get user by email")
	}
	return user, nil
}

// Create implements store.UserStore.Create. The plaintext password is
// hashed here and discarded; only the hash is persisted.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hash)
	user.Password = ""

	query := `INSERT INTO users (email, first_name, last_name, hashed_password, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	defer s.slow.Observe(ctx, "users.create")()

	err = s.db.QueryRowContext(ctx, query,
		user.Email, user.FirstName, user.LastName, user.HashedPassword, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapUserError(err, "failed to create user")
	}

	return nil
}

// Update implements store.UserStore.Update. Only fields present in the
// update are written; updated_at is bumped whenever at least one field is
// supplied. An empty update returns the current row untouched.
func (s *UserStore) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	if update.IsEmpty() {
		return s.GetByID(ctx, id)
	}
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if update.Email != nil {
		set = append(set, "email = "+arg(*update.Email))
	}
	if update.FirstName != nil {
		set = append(set, "first_name = "+arg(*update.FirstName))
	}
	if update.LastName != nil {
		set = append(set, "last_name = "+arg(*update.LastName))
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		set = append(set, "hashed_password = "+arg(string(hash)))
	}
	if update.IsActive != nil {
		set = append(set, "is_active = "+arg(*update.IsActive))
	}
	set = append(set, "updated_at = now()")

	query := "UPDATE users SET " + strings.Join(set, ", ") +
		" WHERE id = " + arg(id) + " RETURNING " + userColumns
	defer s.slow.Observe(ctx, "users.update")()

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapUserError(err, "failed to update user")
	}
	return user, nil
}

// Delete implements store.UserStore.Delete. The delete is permanent; there
// is no tombstone.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM users WHERE id = $1"
	defer s.slow.Observe(ctx, "users.delete")()

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapUserError(err, "failed to delete user")
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.HashedPassword,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// mapUserError narrows the generic mapped error to the user-specific
// sentinels this store hands to callers.
func mapUserError(err error, msg string) error {
	mapped := MapError(fmt.Errorf("%s: %w", msg, err))
	switch {
	case store.IsNotFoundError(mapped):
		return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
	case store.IsDuplicateError(mapped):
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	}
	return mapped
}
