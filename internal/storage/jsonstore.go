// internal/storage/jsonstore.go
//
// 提供帳戶快照 (Snapshot) 的匯出與匯入。
// 採「原子寫入」策略 (atomic write)：先寫入 .tmp 檔，再以 rename() 取代原檔，
// 避免中途寫入失敗導致檔案損壞。
package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSnapshot 讀取指定路徑的 JSON 快照，回傳依檔案順序排列的帳戶紀錄。
// 快照只允許 owner、balance、password 三個欄位，出現其他欄位視為格式錯誤。
func LoadSnapshot(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return records, nil
}

// SaveSnapshot 將帳戶紀錄序列化為 JSON 陣列並以原子方式寫入 path。
// records 為 nil 時寫出空陣列 []。
func SaveSnapshot(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	// 使用縮排格式輸出，方便人工檢視
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	// 原子替換
	return os.Rename(tmp, path)
}
