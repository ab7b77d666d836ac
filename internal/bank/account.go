// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account：單一帳戶的持有人、餘額與密碼雜湊，以及會改變餘額的操作。
// Account 不含任何儲存細節；每次變更後由呼叫端（Bank）寫回 Store。

package bank

import (
	"fmt"
	"strings"

	"accountledger/internal/storage"

	"github.com/shopspring/decimal"
)

// Account represents a bank account.
// 欄位不對外公開：owner 建立後不可變更，balance 只能經由 Deposit/Withdraw/Transfer 改變。
type Account struct {
	owner    string
	balance  decimal.Decimal
	password string
}

// NewAccount 以持有人與初始餘額建立帳戶，尚未設定密碼。
// 持有人不得為空，初始餘額不得為負。
func NewAccount(owner string, balance decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrInvalidOwner
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance %s is negative", ErrInvalidAmount, balance)
	}
	if err := checkBalance(owner, balance); err != nil {
		return nil, err
	}
	return &Account{owner: owner, balance: balance}, nil
}

// FromRecord 由快照或資料列還原帳戶，密碼雜湊原樣保留、不檢查格式。
func FromRecord(r storage.Record) (*Account, error) {
	a, err := NewAccount(r.Owner, r.Balance)
	if err != nil {
		return nil, err
	}
	a.password = r.Password
	return a, nil
}

// Owner 回傳持有人名稱。
func (a *Account) Owner() string { return a.owner }

// Balance 回傳目前餘額。
func (a *Account) Balance() decimal.Decimal { return a.balance }

// CredentialHash 回傳密碼雜湊；尚未設定時為空字串。
func (a *Account) CredentialHash() string { return a.password }

// Deposit 存款：金額需 > 0，且存入後的餘額仍須可被保存。
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	next := a.balance.Add(amount)
	if err := checkBalance(a.owner, next); err != nil {
		return err
	}
	a.balance = next
	return nil
}

// Withdraw 提款：金額需 > 0 且不得超過餘額；失敗時餘額不變。
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := a.canWithdraw(amount); err != nil {
		return err
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Transfer 自本帳戶轉出 amount 至 target。
// 所有檢核（金額、餘額、目標帳戶）皆在變更前完成，
// 因此任一檢核失敗時兩個帳戶都不會被修改。
func (a *Account) Transfer(target *Account, amount decimal.Decimal) error {
	if target == nil {
		return fmt.Errorf("%w: transfer target is missing", ErrNotFound)
	}
	if target == a || target.owner == a.owner {
		return ErrSameAccount
	}
	if err := a.canWithdraw(amount); err != nil {
		return err
	}
	credited := target.balance.Add(amount)
	if err := checkBalance(target.owner, credited); err != nil {
		return err
	}
	a.balance = a.balance.Sub(amount)
	target.balance = credited
	return nil
}

func (a *Account) canWithdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, FormatCurrency(a.balance), FormatCurrency(amount))
	}
	return checkBalance(a.owner, a.balance.Sub(amount))
}

// SetCredential 以預設的 SHA-256 雜湊設定密碼；空密碼回傳 ErrInvalidCredential。
func (a *Account) SetCredential(password string) error {
	return a.SetCredentialWith(SHA256Hasher{}, password)
}

// SetCredentialWith 以指定的 Hasher 設定密碼。
func (a *Account) SetCredentialWith(h Hasher, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is empty", ErrInvalidCredential)
	}
	hash, err := h.Hash(password)
	if err != nil {
		return err
	}
	a.password = hash
	return nil
}

// CheckCredential 回傳 attempt 是否與已保存的雜湊相符；未設定密碼時一律為 false。
func (a *Account) CheckCredential(attempt string) bool {
	return VerifyCredential(a.password, attempt)
}

// Record 匯出快照格式；只含雜湊，永不含明文密碼。
func (a *Account) Record() storage.Record {
	return storage.Record{Owner: a.owner, Balance: a.balance, Password: a.password}
}

// String 以 "持有人 | 餘額" 格式輸出，餘額固定兩位小數。
func (a *Account) String() string {
	return fmt.Sprintf("%s | %s", a.owner, FormatCurrency(a.balance))
}
