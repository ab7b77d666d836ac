// internal/bank/credential_test.go

package bank

import (
	"errors"
	"strings"
	"testing"
)

func TestNewHasher(t *testing.T) {
	tests := []struct {
		scheme  string
		cost    int
		wantErr bool
	}{
		{"", 0, false},
		{"sha256", 0, false},
		{"SHA256", 0, false},
		{"bcrypt", 4, false},
		{"bcrypt", 1, true},
		{"bcrypt", 99, true},
		{"md5", 0, true},
	}
	for _, tc := range tests {
		_, err := NewHasher(tc.scheme, tc.cost)
		if (err != nil) != tc.wantErr {
			t.Fatalf("NewHasher(%q, %d) err=%v wantErr=%v", tc.scheme, tc.cost, err, tc.wantErr)
		}
	}
}

func TestSHA256HasherIsDeterministic(t *testing.T) {
	h1, _ := SHA256Hasher{}.Hash("abc123")
	h2, _ := SHA256Hasher{}.Hash("abc123")
	if h1 != h2 || len(h1) != 64 {
		t.Fatalf("hashes %q %q should be equal 64-char hex", h1, h2)
	}
	if strings.ToLower(h1) != h1 {
		t.Fatalf("hash should be lowercase hex: %q", h1)
	}
}

// TestBcryptCredential 驗證加鹽雜湊：同一密碼兩次雜湊不同，但皆可驗證。
func TestBcryptCredential(t *testing.T) {
	h := BcryptHasher{Cost: 4}
	a := newAcct(t, "A", "0")
	b := newAcct(t, "B", "0")
	if err := a.SetCredentialWith(h, "abc123"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetCredentialWith(h, "abc123"); err != nil {
		t.Fatal(err)
	}
	if a.CredentialHash() == b.CredentialHash() {
		t.Fatal("bcrypt hashes should be salted")
	}
	if !a.CheckCredential("abc123") || a.CheckCredential("wrong") {
		t.Fatal("bcrypt credential check failed")
	}
}

func TestBcryptRejectsLongPassword(t *testing.T) {
	a := newAcct(t, "A", "0")
	err := a.SetCredentialWith(BcryptHasher{Cost: 4}, strings.Repeat("x", 100))
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("want ErrInvalidCredential, got %v", err)
	}
	if a.CredentialHash() != "" {
		t.Fatal("credential should stay unset after failure")
	}
}

func TestVerifyCredentialLegacyUppercase(t *testing.T) {
	const upper = "6CA13D52CA70C883E0F0BB101E425A89E8624DE51DB2D2392593AF6A84118090"
	if !VerifyCredential(upper, "abc123") {
		t.Fatal("uppercase hex digest should verify")
	}
	if VerifyCredential("", "") {
		t.Fatal("empty hash must never verify")
	}
}
