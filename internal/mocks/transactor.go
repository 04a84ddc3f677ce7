package mocks

import (
	"context"
	"database/sql"

	"github.com/calref/user-api/internal/store"
)

// MockTransactor implements store.Transactor without a database. By
// default it runs the function with a nil transaction, which pairs with
// MockUserStore whose WithTx returns itself.
type MockTransactor struct {
	RunInTransactionFn func(ctx context.Context, fn store.TxFn) error

	// BeginError is returned before fn runs, simulating a failure to
	// start the transaction.
	BeginError error

	// Calls counts RunInTransaction invocations.
	Calls int
}

// NewMockTransactor creates a transactor that passes calls through.
func NewMockTransactor() *MockTransactor {
	return &MockTransactor{}
}

// RunInTransaction implements the store.Transactor interface.
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++

	if m.RunInTransactionFn != nil {
		return m.RunInTransactionFn(ctx, fn)
	}

	if m.BeginError != nil {
		return m.BeginError
	}

	var tx *sql.Tx
	return fn(ctx, tx)
}
