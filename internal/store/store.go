// Package store is the persistence collaborator: a relational mirror of the
// in-memory registry state. Accounts are inserted once; balance and history
// are overwritten in full on every sync.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPersistence marks any failure of the underlying store. Callers decide
// whether it is fatal (startup) or reportable (later syncs).
var ErrPersistence = errors.New("persistence failure")

type AccountRow struct {
	ID        string
	OwnerName string
	Balance   decimal.Decimal
	Kind      string
}

type HistoryRow struct {
	RecordID  string
	CreatedAt time.Time
	Kind      string
	Amount    string
}

type Store interface {
	// LoadAccounts returns every stored account row.
	LoadAccounts(ctx context.Context) ([]AccountRow, error)
	// LoadHistory returns one account's transaction rows in insertion order.
	LoadHistory(ctx context.Context, accountID string) ([]HistoryRow, error)
	// InsertAccount stores a newly opened account. The caller guarantees the
	// id is not already present.
	InsertAccount(ctx context.Context, row AccountRow) error
	// ReplaceAccountState overwrites the stored balance and replaces all
	// stored history rows with the given set, preserving order, atomically.
	ReplaceAccountState(ctx context.Context, row AccountRow, history []HistoryRow) error
}
