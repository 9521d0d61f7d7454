// Package registry owns the id → account mapping, the single source of truth
// the presentation layer works against. Every mutation goes through here, and
// every mutated account is synced to the store afterwards.
package registry

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"minibank/internal/ledger"
	"minibank/internal/store"
	"minibank/internal/utils"
)

var (
	accountIDPattern = regexp.MustCompile(`^[0-9]{10}$`)
	ownerNamePattern = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚÑÜáéíóúñü]+( [A-Za-zÁÉÍÓÚÑÜáéíóúñü]+)+$`)
)

type Registry struct {
	store    store.Store
	accounts map[string]*ledger.Account
	order    []string
}

func New(st store.Store) *Registry {
	return &Registry{
		store:    st,
		accounts: make(map[string]*ledger.Account),
	}
}

// Open validates the caller-supplied fields, creates the account and stores
// its one-time row. The account stays registered in memory even if the
// insert fails; the error is reported, not swallowed.
func (r *Registry) Open(ctx context.Context, id, owner string, initial decimal.Decimal, kind ledger.Kind) (*ledger.Account, error) {
	utils.LogInfo("Registry", "Opening account %s (%s, %s)", id, owner, kind.Display())

	if !accountIDPattern.MatchString(id) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidAccountID, id)
	}
	if !ownerNamePattern.MatchString(owner) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidOwnerName, owner)
	}
	if initial.Sign() < 0 {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeBalance, initial.StringFixed(2))
	}
	if _, exists := r.accounts[id]; exists {
		utils.LogWarning("Registry", "Rejected duplicate account id %s", id)
		return nil, fmt.Errorf("%w: %s", ErrAccountExists, id)
	}

	account := ledger.NewAccount(id, owner, initial, kind)
	r.accounts[id] = account
	r.order = append(r.order, id)

	if err := r.store.InsertAccount(ctx, accountRow(account)); err != nil {
		utils.LogError("Registry", fmt.Sprintf("Account %s opened but not stored", id), err)
		return account, err
	}

	utils.LogSuccess("Registry", "Account %s opened with balance %s", id, initial.StringFixed(2))
	return account, nil
}

// Find looks up an account. Absence is not an error at this level.
func (r *Registry) Find(id string) (*ledger.Account, bool) {
	account, ok := r.accounts[id]
	return account, ok
}

// Accounts returns every known account in registration order.
func (r *Registry) Accounts() []*ledger.Account {
	out := make([]*ledger.Account, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.accounts[id])
	}
	return out
}

// LoadAll reconstructs the registry from the store at startup. Stored rows
// are trusted; nothing is re-validated.
func (r *Registry) LoadAll(ctx context.Context) error {
	rows, err := r.store.LoadAccounts(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		historyRows, err := r.store.LoadHistory(ctx, row.ID)
		if err != nil {
			return err
		}

		history := make([]ledger.Record, 0, len(historyRows))
		for _, h := range historyRows {
			history = append(history, ledger.Record{
				ID:        h.RecordID,
				Timestamp: h.CreatedAt,
				Kind:      h.Kind,
				Amount:    h.Amount,
			})
		}

		account := ledger.Restore(row.ID, row.OwnerName, row.Balance, ledger.Kind(row.Kind), history)
		r.accounts[row.ID] = account
		r.order = append(r.order, row.ID)
	}

	utils.LogSuccess("Registry", "Loaded %d account(s) from store", len(rows))
	return nil
}

// Sync overwrites the stored balance and history of the given accounts.
// On failure the in-memory state remains authoritative for the session.
func (r *Registry) Sync(ctx context.Context, accounts ...*ledger.Account) error {
	for _, account := range accounts {
		history := account.History()
		rows := make([]store.HistoryRow, 0, len(history))
		for _, rec := range history {
			rows = append(rows, store.HistoryRow{
				RecordID:  rec.ID,
				CreatedAt: rec.Timestamp,
				Kind:      rec.Kind,
				Amount:    rec.Amount,
			})
		}

		if err := r.store.ReplaceAccountState(ctx, accountRow(account), rows); err != nil {
			utils.LogError("Registry", fmt.Sprintf("Sync failed for account %s, in-memory state stays authoritative", account.ID()), err)
			return err
		}
	}
	return nil
}

func (r *Registry) Deposit(ctx context.Context, id string, amount decimal.Decimal) (*ledger.Account, error) {
	account, ok := r.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	if err := account.Deposit(amount); err != nil {
		return nil, err
	}

	utils.LogSuccess("Registry", "Deposit of %s into account %s, balance %s",
		amount.StringFixed(2), id, account.Balance().StringFixed(2))
	return account, r.Sync(ctx, account)
}

func (r *Registry) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*ledger.Account, error) {
	account, ok := r.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	if err := account.Withdraw(amount); err != nil {
		return nil, err
	}

	utils.LogSuccess("Registry", "Withdrawal of %s from account %s, balance %s",
		amount.StringFixed(2), id, account.Balance().StringFixed(2))
	return account, r.Sync(ctx, account)
}

func (r *Registry) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*ledger.Account, *ledger.Account, error) {
	if fromID == toID {
		return nil, nil, fmt.Errorf("%w: %s", ErrSelfTransfer, fromID)
	}

	from, ok := r.Find(fromID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrAccountNotFound, fromID)
	}
	to, ok := r.Find(toID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrAccountNotFound, toID)
	}

	if err := from.TransferTo(to, amount); err != nil {
		return nil, nil, err
	}

	utils.LogSuccess("Registry", "Transfer of %s from %s to %s, source balance %s",
		amount.StringFixed(2), fromID, toID, from.Balance().StringFixed(2))
	return from, to, r.Sync(ctx, from, to)
}

func (r *Registry) ApplyInterest(ctx context.Context, id string) (*ledger.Account, decimal.Decimal, error) {
	account, ok := r.Find(id)
	if !ok {
		return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	earned := account.ApplyInterest()

	utils.LogSuccess("Registry", "Interest of %s applied to account %s, balance %s",
		earned.StringFixed(2), id, account.Balance().StringFixed(2))
	return account, earned, r.Sync(ctx, account)
}

func accountRow(account *ledger.Account) store.AccountRow {
	return store.AccountRow{
		ID:        account.ID(),
		OwnerName: account.Owner(),
		Balance:   account.Balance(),
		Kind:      string(account.Kind()),
	}
}
