package store

import (
	"context"
	"database/sql"

	"github.com/calref/user-api/internal/domain"
)

// UserStore defines the interface for user data persistence. The users
// table is owned exclusively by implementations of this interface; no
// other component mutates rows directly.
type UserStore interface {
	// List returns users ordered by ascending ID, skipping the first
	// skip rows and returning at most limit rows.
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns ErrUserNotFound if no such row exists.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their unique email address.
	// Returns ErrUserNotFound if no such row exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create persists a new user. The plaintext Password field is hashed
	// into HashedPassword before the insert and cleared afterwards; the
	// generated ID and timestamps are written back onto the user.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// Update applies only the fields present in the update to the row
	// with the given ID and bumps updated_at. Returns the updated row,
	// ErrUserNotFound if the row does not exist, or ErrEmailExists if
	// the update would duplicate another row's email.
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)

	// Delete removes a user permanently.
	// Returns ErrUserNotFound if no such row exists.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore that executes against the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through a Transactor.
	WithTx(tx *sql.Tx) UserStore
}
