// Package ledger holds the core account model: one account's balance and its
// append-only transaction history, plus the operations that mutate them.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is one completed ledger event. Amount is the signed display string
// the operation produced ("+50.00", "-30.00"); the stored form is the display
// form, matching what the history view renders.
type Record struct {
	ID        string
	Timestamp time.Time
	Kind      string
	Amount    string
}

// Account is a single bank account. The balance is encapsulated so it can
// only change through the ledger operations, which keep it non-negative.
type Account struct {
	id      string
	owner   string
	kind    Kind
	balance decimal.Decimal
	history []Record
}

func NewAccount(id, owner string, initial decimal.Decimal, kind Kind) *Account {
	return &Account{
		id:      id,
		owner:   owner,
		kind:    kind,
		balance: initial,
	}
}

// Restore rebuilds an account from persisted state. Persisted data is
// trusted: no validation is re-run and the history is attached as stored.
func Restore(id, owner string, balance decimal.Decimal, kind Kind, history []Record) *Account {
	return &Account{
		id:      id,
		owner:   owner,
		kind:    kind,
		balance: balance,
		history: history,
	}
}

func (a *Account) ID() string    { return a.id }
func (a *Account) Owner() string { return a.owner }
func (a *Account) Kind() Kind    { return a.kind }

// Balance returns the current balance. Pure read.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// History returns the account's transaction records in insertion order.
// The returned slice is a copy; records themselves are immutable.
func (a *Account) History() []Record {
	out := make([]Record, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: cannot deposit %s", ErrInvalidAmount, amount.StringFixed(2))
	}
	a.balance = a.balance.Add(amount)
	a.record("Deposit", "+", amount)
	return nil
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: cannot withdraw %s", ErrInvalidAmount, amount.StringFixed(2))
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: current balance is %s, cannot withdraw %s",
			ErrInsufficientFunds, a.balance.StringFixed(2), amount.StringFixed(2))
	}
	a.balance = a.balance.Sub(amount)
	a.record("Withdrawal", "-", amount)
	return nil
}

// TransferTo moves amount from a to dst. Both legs are validated before
// either balance changes, so a failed transfer never leaves a half-applied
// state. A successful transfer produces exactly one record per account.
func (a *Account) TransferTo(dst *Account, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: cannot transfer %s", ErrInvalidAmount, amount.StringFixed(2))
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: current balance is %s, cannot transfer %s",
			ErrInsufficientFunds, a.balance.StringFixed(2), amount.StringFixed(2))
	}

	a.balance = a.balance.Sub(amount)
	dst.balance = dst.balance.Add(amount)
	a.record("Transfer to "+dst.id, "-", amount)
	dst.record("Transfer from "+a.id, "+", amount)
	return nil
}

// ApplyInterest credits one month of interest (annual rate / 12) according
// to the account kind and returns the amount earned. It never fails.
func (a *Account) ApplyInterest() decimal.Decimal {
	earned := a.balance.Mul(a.kind.MonthlyRate())
	a.balance = a.balance.Add(earned)
	a.record("Interest ("+a.kind.Display()+")", "+", earned)
	return earned
}

func (a *Account) record(kind, sign string, amount decimal.Decimal) {
	a.history = append(a.history, Record{
		ID:        uuid.New().String(),
		Timestamp: time.Now().Truncate(time.Second),
		Kind:      kind,
		Amount:    sign + amount.StringFixed(2),
	})
}
