// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤皆屬可預期、可恢復的商業邏輯錯誤，會由上層 console 轉換成使用者可讀的訊息。
// 回傳時以 fmt.Errorf("%w: ...") 包裝細節，呼叫端一律以 errors.Is 判斷類別。

package bank

import "errors"

var (
	// ErrInvalidAmount 代表金額非法（存提款或轉帳 <= 0，或初始餘額為負）。
	ErrInvalidAmount = errors.New("amount must be > 0")

	// ErrInsufficientFunds 代表餘額不足，導致提款或轉帳失敗。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidCredential 代表密碼為空，或帳戶尚未設定密碼即被寫入儲存層。
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrDuplicateOwner 代表持有人名稱已存在（儲存層唯一鍵衝突）。
	ErrDuplicateOwner = errors.New("owner already exists")

	// ErrNotFound 代表帳戶不存在。
	ErrNotFound = errors.New("account not found")

	// ErrAuthenticationFailed 代表密碼驗證失敗；由 Bank 回傳，儲存層不會產生。
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidOwner 代表持有人名稱為空。
	ErrInvalidOwner = errors.New("owner must not be empty")

	// ErrSameAccount 代表轉帳來源與目標帳戶相同。
	ErrSameAccount = errors.New("from and to are same")
)
