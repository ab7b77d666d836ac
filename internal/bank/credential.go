// internal/bank/credential.go
//
// 密碼雜湊策略。
// 預設 SHA256Hasher：無鹽、固定演算法，輸出 64 字元小寫十六進位字串，
// 與既有資料庫及匯出檔中的雜湊值完全相容。
// BcryptHasher 為加鹽的強化選項；驗證時依雜湊格式自動分派，
// 因此切換策略後，舊的 SHA-256 雜湊仍可通過驗證。
package bank

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credential schemes accepted by NewHasher.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher 將明文密碼轉為可保存的單向雜湊。
type Hasher interface {
	Hash(password string) (string, error)
}

// SHA256Hasher 產生無鹽的 SHA-256 十六進位雜湊。
type SHA256Hasher struct{}

// Hash 回傳 hex(sha256(password))。
func (SHA256Hasher) Hash(password string) (string, error) {
	return hashSHA256(password), nil
}

// BcryptHasher 產生含隨機鹽的 bcrypt 雜湊。
type BcryptHasher struct {
	Cost int
}

// Hash 回傳 bcrypt 雜湊；密碼超過 72 bytes 時回傳 ErrInvalidCredential。
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return string(out), nil
}

// NewHasher 依設定名稱建立 Hasher。
func NewHasher(scheme string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeBcrypt:
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return BcryptHasher{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}

// VerifyCredential 比對 attempt 與已保存的雜湊。
// 空雜湊（尚未設定密碼）永遠不相符；比對皆為常數時間。
func VerifyCredential(hash, attempt string) bool {
	if hash == "" {
		return false
	}
	if isBcryptHash(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(attempt)) == nil
	}
	sum := hashSHA256(attempt)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(hash)), []byte(sum)) == 1
}

func hashSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}
