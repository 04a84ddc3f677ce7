package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/calref/user-api/internal/domain"
	"github.com/calref/user-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. The default
// implementation keeps users in a map keyed by ID and assigns IDs from a
// counter; any method can be replaced through its Fn field.
type MockUserStore struct {
	// Function fields for customizable behavior
	ListFn       func(ctx context.Context, skip, limit int) ([]*domain.User, error)
	GetByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	CreateFn     func(ctx context.Context, user *domain.User) error
	UpdateFn     func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	DeleteFn     func(ctx context.Context, id int64) error

	// Data for the default implementation
	Users  map[int64]*domain.User
	NextID int64

	// Forced errors for the default implementation
	CreateError error
	ListError   error
}

// NewMockUserStore creates a mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:  make(map[int64]*domain.User),
		NextID: 1,
	}
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, skip, limit)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	ids := make([]int64, 0, len(m.Users))
	for id := range m.Users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]*domain.User, 0, limit)
	for i, id := range ids {
		if i < skip {
			continue
		}
		if len(users) >= limit {
			break
		}
		users = append(users, m.Users[id])
	}
	return users, nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	user, exists := m.Users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Create implements the UserStore interface. The default implementation
// mimics the real store: it consumes the plaintext password into a fake
// hash and assigns the ID and timestamps.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	user.ID = m.NextID
	m.NextID++
	user.HashedPassword = "hashed:" + user.Password
	user.Password = ""
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	m.Users[user.ID] = user
	return nil
}

// Update implements the UserStore interface.
func (m *MockUserStore) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	user, exists := m.Users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	if update.Email != nil {
		for otherID, other := range m.Users {
			if otherID != id && other.Email == *update.Email {
				return nil, store.ErrEmailExists
			}
		}
	}

	update.Apply(user)
	if user.Password != "" {
		user.HashedPassword = "hashed:" + user.Password
		user.Password = ""
	}
	user.UpdatedAt = time.Now().UTC()
	return user, nil
}

// Delete implements the UserStore interface.
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Users[id]; !exists {
		return store.ErrUserNotFound
	}
	delete(m.Users, id)
	return nil
}

// WithTx implements the UserStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
