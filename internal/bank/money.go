// internal/bank/money.go

package bank

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount 解析使用者輸入的金額字串（接受 "100"、"12.50"、"1,5"）。
// 只檢查格式，正負號交由 Deposit/Withdraw 判斷。
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if !Representable(d) {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range or too precise", ErrInvalidAmount, s)
	}
	return d, nil
}

// Representable 回報 d 能否存入 REAL 欄位並原值讀回：
// 轉成 float64 後不可為 ±Inf，且再轉回 decimal 必須與 d 相等。
func Representable(d decimal.Decimal) bool {
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	return decimal.NewFromFloat(f).Equal(d)
}

// checkBalance 確認變更後的餘額仍可被儲存層完整保存。
func checkBalance(owner string, balance decimal.Decimal) error {
	if !Representable(balance) {
		return fmt.Errorf("%w: balance of %s would be out of range", ErrInvalidAmount, owner)
	}
	return nil
}

// FormatCurrency 以兩位小數輸出金額，僅用於顯示，不影響內部精度。
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}
