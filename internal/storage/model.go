// internal/storage/model.go
//
// 定義「快照檔案 (snapshot file)」的資料格式。
// 快照為帳戶清單的 JSON 陣列，每個元素恰好包含 owner、balance、password 三個欄位，
// 其中 password 保存的是雜湊值而非明文。
//
// ───────────────────────────────
// 設計理念：
// - **關注分離**：此層僅定義資料結構與 I/O，不涉入商業邏輯。
// - **相容性**：欄位名稱與舊版匯出檔一致，舊檔可直接匯入。
// ───────────────────────────────
package storage

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Record 為帳戶在快照檔中的序列化格式。
// Balance 以 JSON number 輸出（而非字串），與既有匯出檔保持一致。
type Record struct {
	Owner    string          `json:"owner"`    // 帳戶持有人，同時為唯一鍵
	Balance  decimal.Decimal `json:"balance"`  // 帳戶餘額
	Password string          `json:"password"` // 密碼雜湊
}

// MarshalJSON 將 Balance 以數字（非字串）寫出。
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Owner    string      `json:"owner"`
		Balance  json.Number `json:"balance"`
		Password string      `json:"password"`
	}{
		Owner:    r.Owner,
		Balance:  json.Number(r.Balance.String()),
		Password: r.Password,
	})
}
