// internal/bank/bank.go

// Package bank 定義核心商業邏輯：帳戶開立、驗證、存款、提款、轉帳、刪除、統計與快照匯出入。
// Bank 本身不保存任何帳戶狀態：每次操作都從 Store 取出帳戶、在記憶體中套用規則、再寫回 Store。
// 採用單一互斥鎖 (sync.Mutex) 序列化所有寫入操作，確保並發轉帳下餘額仍不會為負。
package bank

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"accountledger/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Bank 為應用層協調者 (orchestrator)：
// - mu：序列化所有寫入，讓「讀取 → 驗證 → 寫回」成為不可分割的單位。
// - store：唯一資料來源；Bank 不快取帳戶。
// - hasher：新設定密碼時使用的雜湊策略。
type Bank struct {
	mu     sync.Mutex
	store  Store
	hasher Hasher
	log    *zap.Logger
}

// Option 調整 Bank 的選用設定。
type Option func(*Bank)

// WithHasher 指定新密碼使用的雜湊策略（預設 SHA256Hasher）。
func WithHasher(h Hasher) Option {
	return func(b *Bank) {
		if h != nil {
			b.hasher = h
		}
	}
}

// WithLogger 指定 logger（預設 zap.NewNop）。
func WithLogger(l *zap.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBank 建立以 store 為資料來源的 Bank。
func NewBank(store Store, opts ...Option) *Bank {
	b := &Bank{store: store, hasher: SHA256Hasher{}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Stats 為帳戶總數與總餘額。
type Stats struct {
	Accounts int
	Total    decimal.Decimal
}

// ImportResult 列出匯入成功與因重複而略過的持有人。
type ImportResult struct {
	Imported []string
	Skipped  []string
}

// Open 開立新帳戶：設定密碼、存入初始餘額（可為 0）並寫入 Store。
func (b *Bank) Open(ctx context.Context, owner string, initial decimal.Decimal, password string) (*Account, error) {
	a, err := NewAccount(strings.TrimSpace(owner), initial)
	if err != nil {
		return nil, err
	}
	if err := a.SetCredentialWith(b.hasher, password); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	exists, err := b.store.Exists(ctx, a.Owner())
	if err != nil {
		return nil, fmt.Errorf("check owner: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateOwner, a.Owner())
	}
	if err := b.store.Save(ctx, a); err != nil {
		return nil, err
	}
	b.log.Info("account opened", zap.String("owner", a.Owner()), zap.String("balance", a.Balance().String()))
	return a, nil
}

// Get 依持有人取得帳戶目前狀態；不存在回傳 ErrNotFound。
func (b *Bank) Get(ctx context.Context, owner string) (*Account, error) {
	return b.store.Get(ctx, strings.TrimSpace(owner))
}

// List 回傳所有帳戶，依持有人名稱排序以便顯示。
func (b *Bank) List(ctx context.Context) ([]*Account, error) {
	accts, err := b.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(accts, func(x, y *Account) int { return strings.Compare(x.Owner(), y.Owner()) })
	return accts, nil
}

// Authenticate 取得帳戶並驗證密碼；密碼錯誤回傳 ErrAuthenticationFailed。
func (b *Bank) Authenticate(ctx context.Context, owner, password string) (*Account, error) {
	a, err := b.store.Get(ctx, strings.TrimSpace(owner))
	if err != nil {
		return nil, err
	}
	if !a.CheckCredential(password) {
		return nil, fmt.Errorf("%w: %s", ErrAuthenticationFailed, a.Owner())
	}
	return a, nil
}

// Deposit 存款後立即寫回 Store。存款不需密碼。
func (b *Bank) Deposit(ctx context.Context, owner string, amount decimal.Decimal) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, err := b.store.Get(ctx, strings.TrimSpace(owner))
	if err != nil {
		return nil, err
	}
	if err := a.Deposit(amount); err != nil {
		return nil, err
	}
	if err := b.store.UpdateBalance(ctx, a.Owner(), a.Balance()); err != nil {
		b.log.Error("persist deposit failed", zap.String("owner", a.Owner()), zap.Error(err))
		return nil, err
	}
	b.log.Info("deposit", zap.String("owner", a.Owner()), zap.String("amount", amount.String()))
	return a, nil
}

// Withdraw 驗證密碼後提款並寫回 Store。
func (b *Bank) Withdraw(ctx context.Context, owner, password string, amount decimal.Decimal) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, err := b.Authenticate(ctx, owner, password)
	if err != nil {
		return nil, err
	}
	if err := a.Withdraw(amount); err != nil {
		return nil, err
	}
	if err := b.store.UpdateBalance(ctx, a.Owner(), a.Balance()); err != nil {
		b.log.Error("persist withdraw failed", zap.String("owner", a.Owner()), zap.Error(err))
		return nil, err
	}
	b.log.Info("withdraw", zap.String("owner", a.Owner()), zap.String("amount", amount.String()))
	return a, nil
}

// Transfer 轉帳流程：
// 1) 驗證（金額 > 0、雙方帳戶存在、寄件人密碼正確）→ 2) 記憶體內套用 Account.Transfer
// → 3) Store.TransferUpdate 原子寫入 → 4) 回傳雙方最新狀態。
// 第 3 步失敗時 Store 已回滾，記憶體中的帳戶直接丟棄，下次讀取會從 Store 重新取得。
func (b *Bank) Transfer(ctx context.Context, from, password, to string, amount decimal.Decimal) (*Account, *Account, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == to {
		return nil, nil, ErrSameAccount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	sender, err := b.store.Get(ctx, from)
	if err != nil {
		return nil, nil, fmt.Errorf("sender: %w", err)
	}
	receiver, err := b.store.Get(ctx, to)
	if err != nil {
		return nil, nil, fmt.Errorf("receiver: %w", err)
	}
	if !sender.CheckCredential(password) {
		return nil, nil, fmt.Errorf("%w: %s", ErrAuthenticationFailed, sender.Owner())
	}

	if err := sender.Transfer(receiver, amount); err != nil {
		return nil, nil, err
	}
	if err := b.store.TransferUpdate(ctx, sender.Owner(), sender.Balance(), receiver.Owner(), receiver.Balance()); err != nil {
		b.log.Error("persist transfer failed",
			zap.String("from", sender.Owner()),
			zap.String("to", receiver.Owner()),
			zap.Error(err))
		return nil, nil, fmt.Errorf("persist transfer: %w", err)
	}
	b.log.Info("transfer",
		zap.String("from", sender.Owner()),
		zap.String("to", receiver.Owner()),
		zap.String("amount", amount.String()))
	return sender, receiver, nil
}

// Close 驗證密碼後刪除帳戶。
func (b *Bank) Close(ctx context.Context, owner, password string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, err := b.Authenticate(ctx, owner, password)
	if err != nil {
		return err
	}
	removed, err := b.store.Delete(ctx, a.Owner())
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNotFound, a.Owner())
	}
	b.log.Info("account closed", zap.String("owner", a.Owner()))
	return nil
}

// Stats 回傳帳戶總數與總餘額。
func (b *Bank) Stats(ctx context.Context) (Stats, error) {
	accts, err := b.store.LoadAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	s := Stats{Accounts: len(accts), Total: decimal.Zero}
	for _, a := range accts {
		s.Total = s.Total.Add(a.Balance())
	}
	return s, nil
}

// Export 將所有帳戶寫入 JSON 快照檔並回傳筆數。
func (b *Bank) Export(ctx context.Context, path string) (int, error) {
	accts, err := b.List(ctx)
	if err != nil {
		return 0, err
	}
	records := make([]storage.Record, 0, len(accts))
	for _, a := range accts {
		records = append(records, a.Record())
	}
	if err := storage.SaveSnapshot(path, records); err != nil {
		return 0, fmt.Errorf("export %s: %w", path, err)
	}
	b.log.Info("snapshot exported", zap.String("path", path), zap.Int("accounts", len(records)))
	return len(records), nil
}

// Import 讀取 JSON 快照並逐筆寫入 Store。
// 所有紀錄先完整檢核，任何一筆不合法就不寫入；持有人已存在的紀錄會略過並列於 Skipped。
func (b *Bank) Import(ctx context.Context, path string) (ImportResult, error) {
	records, err := storage.LoadSnapshot(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}
	accts := make([]*Account, 0, len(records))
	for i, r := range records {
		// 查詢一律以去除空白後的名稱進行，帶空白的持有人匯入後將無法再被找到。
		if r.Owner != strings.TrimSpace(r.Owner) {
			return ImportResult{}, fmt.Errorf("import %s: record %d: %w: %q has surrounding whitespace", path, i, ErrInvalidOwner, r.Owner)
		}
		a, err := FromRecord(r)
		if err != nil {
			return ImportResult{}, fmt.Errorf("import %s: record %d: %w", path, i, err)
		}
		if a.CredentialHash() == "" {
			return ImportResult{}, fmt.Errorf("import %s: record %d: %w: password hash is empty", path, i, ErrInvalidCredential)
		}
		accts = append(accts, a)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var res ImportResult
	for _, a := range accts {
		if err := b.store.Save(ctx, a); err != nil {
			if errors.Is(err, ErrDuplicateOwner) {
				res.Skipped = append(res.Skipped, a.Owner())
				continue
			}
			return res, fmt.Errorf("import %s: %w", path, err)
		}
		res.Imported = append(res.Imported, a.Owner())
	}
	b.log.Info("snapshot imported",
		zap.String("path", path),
		zap.Int("imported", len(res.Imported)),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}
