// Package sqlite provides the SQLite-backed ledger store.
//
// 每個方法都是獨立的工作單位：單一 SQL 敘述，或（轉帳時）一個具備 deferred rollback 的交易。
// 餘額以 REAL 欄位保存，與舊版資料庫相容；讀出時轉回 decimal.Decimal。
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"accountledger/internal/bank"
	"accountledger/internal/storage"
	"accountledger/internal/storage/sqlite/migrations"

	"github.com/shopspring/decimal"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// DefaultBusyTimeout is used when Open receives a non-positive timeout.
const DefaultBusyTimeout = 5 * time.Second

// Store persists accounts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the SQLite file at path. Call Initialize before use.
func Open(path string, busyTimeout time.Duration) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		filepath.Clean(path), busyTimeout.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Initialize applies the embedded migrations. Safe to call on every startup.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := applyMigrations(ctx, s.sqlDB, migrations.FS); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Save inserts a new account. It never overwrites an existing owner.
func (s *Store) Save(ctx context.Context, a *bank.Account) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("account is required")
	}
	if a.CredentialHash() == "" {
		return fmt.Errorf("%w: account %s has no credential", bank.ErrInvalidCredential, a.Owner())
	}
	balance, err := realBalance(a.Owner(), a.Balance())
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO accounts (owner, balance, password) VALUES (?, ?, ?)`,
		a.Owner(), balance, a.CredentialHash(),
	)
	if err != nil {
		if isOwnerUniqueViolation(err) {
			return fmt.Errorf("%w: %s", bank.ErrDuplicateOwner, a.Owner())
		}
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// Get returns one account by owner.
func (s *Store) Get(ctx context.Context, owner string) (*bank.Account, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT owner, balance, password FROM accounts WHERE owner = ?`,
		owner,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", bank.ErrNotFound, owner)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// Exists reports whether owner has a row.
func (s *Store) Exists(ctx context.Context, owner string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE owner = ?`, owner,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("account exists: %w", err)
	}
	return count > 0, nil
}

// UpdateBalance sets the balance of owner's row.
func (s *Store) UpdateBalance(ctx context.Context, owner string, balance decimal.Decimal) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := updateBalance(ctx, s.sqlDB, owner, balance); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

// TransferUpdate writes both balances in one transaction.
func (s *Store) TransferUpdate(ctx context.Context, senderOwner string, senderBalance decimal.Decimal, receiverOwner string, receiverBalance decimal.Decimal) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := updateBalance(ctx, tx, senderOwner, senderBalance); err != nil {
		return fmt.Errorf("update sender: %w", err)
	}
	if err := updateBalance(ctx, tx, receiverOwner, receiverBalance); err != nil {
		return fmt.Errorf("update receiver: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer: %w", err)
	}
	return nil
}

// Delete removes owner's row and reports whether one existed.
func (s *Store) Delete(ctx context.Context, owner string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM accounts WHERE owner = ?`, owner)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return n > 0, nil
}

// LoadAll returns every account in storage order.
func (s *Store) LoadAll(ctx context.Context) ([]*bank.Account, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT owner, balance, password FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	defer rows.Close()

	var out []*bank.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("load accounts: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	return out, nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// updateBalance targets the row by owner only.
func updateBalance(ctx context.Context, db execer, owner string, balance decimal.Decimal) error {
	value, err := realBalance(owner, balance)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `UPDATE accounts SET balance = ? WHERE owner = ?`, value, owner)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", bank.ErrNotFound, owner)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanAccount reads balance as float64 so a corrupt row surfaces as an error.
func scanAccount(row scanner) (*bank.Account, error) {
	var (
		r       storage.Record
		balance float64
	)
	if err := row.Scan(&r.Owner, &balance, &r.Password); err != nil {
		return nil, err
	}
	if math.IsInf(balance, 0) || math.IsNaN(balance) {
		return nil, fmt.Errorf("account %s: stored balance %v is not finite", r.Owner, balance)
	}
	r.Balance = decimal.NewFromFloat(balance)
	return bank.FromRecord(r)
}

// realBalance converts balance for the REAL column, refusing values that would not read back exactly.
func realBalance(owner string, balance decimal.Decimal) (float64, error) {
	if !bank.Representable(balance) {
		return 0, fmt.Errorf("%w: balance %s of %s cannot be stored", bank.ErrInvalidAmount, balance, owner)
	}
	return balance.InexactFloat64(), nil
}

func isOwnerUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "accounts.owner")
}

var _ bank.Store = (*Store)(nil)
