package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestHMACStrategyRoundtrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestHMACStrategyRejectsTamperedToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	token, _ := strategy.IssueToken(42)

	tampered := token[:len(token)-2] + "xx"
	if _, err := strategy.ParseToken(tampered); err != ErrInvalidToken {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestHMACStrategyRejectsForeignSecret(t *testing.T) {
	token, _ := NewHMACStrategy("secret", Options{}).IssueToken(42)
	if _, err := NewHMACStrategy("other", Options{}).ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestHMACStrategyRejectsExpiredToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	payload := fmt.Sprintf("42.%d", time.Now().Add(-time.Minute).Unix())
	token := base64.RawURLEncoding.EncodeToString([]byte(payload + "." + strategy.sign(payload)))

	if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	for _, token := range []string{"", "not-base64!!", "YWJj"} {
		if _, err := strategy.ParseToken(token); err != ErrInvalidToken {
			t.Fatalf("token %q: expected invalid token, got %v", token, err)
		}
	}
}

func TestBcryptHasherClampsCost(t *testing.T) {
	for _, cost := range []int{0, -1, 99} {
		hasher := NewBcryptHasher(cost)
		if hasher.cost != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected fallback to %d, got %d", cost, bcrypt.DefaultCost, hasher.cost)
		}
	}
	if hasher := NewBcryptHasher(bcrypt.MinCost); hasher.cost != bcrypt.MinCost {
		t.Fatalf("expected cost %d to be kept, got %d", bcrypt.MinCost, hasher.cost)
	}
}

func TestBcryptHasherRoundtrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("pa55word")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(hash, "pa55word") {
		t.Fatal("hash must not contain the plaintext password")
	}
	if err := hasher.Compare(hash, "pa55word"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}
