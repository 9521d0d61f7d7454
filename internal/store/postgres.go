package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"minibank/internal/utils"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate ensures the accounts and transaction_history tables exist.
// Idempotent; a failure here is fatal to startup.
func Migrate(pool *pgxpool.Pool) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%w: reading migrations: %v", ErrPersistence, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("%w: preparing migration driver: %v", ErrPersistence, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("%w: preparing migrations: %v", ErrPersistence, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: applying migrations: %v", ErrPersistence, err)
	}

	utils.LogSuccess("PostgresStore", "Schema is up to date")
	return nil
}

func (s *PostgresStore) LoadAccounts(ctx context.Context) ([]AccountRow, error) {
	query := `
		SELECT id, owner_name, balance, kind
		FROM accounts
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: loading accounts: %v", ErrPersistence, err)
	}
	defer rows.Close()

	var accounts []AccountRow
	for rows.Next() {
		var row AccountRow
		if err := rows.Scan(&row.ID, &row.OwnerName, &row.Balance, &row.Kind); err != nil {
			return nil, fmt.Errorf("%w: scanning account row: %v", ErrPersistence, err)
		}
		accounts = append(accounts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading account rows: %v", ErrPersistence, err)
	}

	return accounts, nil
}

func (s *PostgresStore) LoadHistory(ctx context.Context, accountID string) ([]HistoryRow, error) {
	query := `
		SELECT record_id, created_at, kind, amount_display
		FROM transaction_history
		WHERE account_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading history for account %s: %v", ErrPersistence, accountID, err)
	}
	defer rows.Close()

	var history []HistoryRow
	for rows.Next() {
		var row HistoryRow
		if err := rows.Scan(&row.RecordID, &row.CreatedAt, &row.Kind, &row.Amount); err != nil {
			return nil, fmt.Errorf("%w: scanning history row: %v", ErrPersistence, err)
		}
		history = append(history, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading history rows: %v", ErrPersistence, err)
	}

	return history, nil
}

func (s *PostgresStore) InsertAccount(ctx context.Context, row AccountRow) error {
	query := `
		INSERT INTO accounts (id, owner_name, balance, kind)
		VALUES ($1, $2, $3, $4)
	`

	utils.LogDB("INSERT ACCOUNT", fmt.Sprintf("Storing new account %s", row.ID))

	if _, err := s.db.Exec(ctx, query, row.ID, row.OwnerName, row.Balance, row.Kind); err != nil {
		return fmt.Errorf("%w: inserting account %s: %v", ErrPersistence, row.ID, err)
	}

	return nil
}

// ReplaceAccountState updates the stored balance and rewrites the account's
// history rows in one transaction. Write amplification is accepted for
// simplicity; histories stay small.
func (s *PostgresStore) ReplaceAccountState(ctx context.Context, row AccountRow, history []HistoryRow) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: beginning sync for account %s: %v", ErrPersistence, row.ID, err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		"UPDATE accounts SET balance = $1 WHERE id = $2",
		row.Balance, row.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating balance for account %s: %v", ErrPersistence, row.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s has no stored row", ErrPersistence, row.ID)
	}

	_, err = tx.Exec(ctx,
		"DELETE FROM transaction_history WHERE account_id = $1",
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: clearing history for account %s: %v", ErrPersistence, row.ID, err)
	}

	for _, h := range history {
		_, err = tx.Exec(ctx,
			`INSERT INTO transaction_history (account_id, record_id, created_at, kind, amount_display)
			 VALUES ($1, $2, $3, $4, $5)`,
			row.ID, h.RecordID, h.CreatedAt, h.Kind, h.Amount,
		)
		if err != nil {
			return fmt.Errorf("%w: writing history for account %s: %v", ErrPersistence, row.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: committing sync for account %s: %v", ErrPersistence, row.ID, err)
	}

	utils.LogDB("SYNC ACCOUNT", fmt.Sprintf("Account %s synced (%d history rows)", row.ID, len(history)))
	return nil
}
