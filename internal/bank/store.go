// internal/bank/store.go

package bank

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store 為帳戶的持久化介面（Ledger Store），以 owner 為唯一鍵，是系統唯一的資料來源。
// 實作不執行任何餘額規則，只負責唯一性與多列更新的原子性。
type Store interface {
	// Initialize 確保 schema 存在，可於每次啟動時重複呼叫。
	Initialize(ctx context.Context) error
	// Save 新增帳戶；owner 重複時回傳 ErrDuplicateOwner，不做 upsert。
	Save(ctx context.Context, a *Account) error
	// Get 取得帳戶；不存在時回傳 ErrNotFound。
	Get(ctx context.Context, owner string) (*Account, error)
	Exists(ctx context.Context, owner string) (bool, error)
	// UpdateBalance 僅以 owner 定位資料列；找不到時回傳 ErrNotFound。
	UpdateBalance(ctx context.Context, owner string, balance decimal.Decimal) error
	// TransferUpdate 在單一交易內更新雙方餘額，失敗時全數回滾。
	TransferUpdate(ctx context.Context, senderOwner string, senderBalance decimal.Decimal, receiverOwner string, receiverBalance decimal.Decimal) error
	// Delete 刪除帳戶並回傳是否真的刪除了資料列。
	Delete(ctx context.Context, owner string) (bool, error)
	// LoadAll 回傳所有帳戶，不保證順序。
	LoadAll(ctx context.Context) ([]*Account, error)
}
