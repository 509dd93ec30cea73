package crypto

import (
	"encoding/base64"
	"errors"
	"testing"
)

// cheap Argon2 parameters keep the suite fast
func newTestKeyChain(t *testing.T, secret string) KeyChain {
	t.Helper()
	k, err := NewKeyChain(secret, WithArgonParams(1, 1024))
	if err != nil {
		t.Fatalf("NewKeyChain error: %v", err)
	}
	return k
}

func TestNewKeyChain_EmptySecret(t *testing.T) {
	if _, err := NewKeyChain(""); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	k := newTestKeyChain(t, "secret")

	sealed, err := k.Seal("eyJhbGciOi.token")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if sealed == "eyJhbGciOi.token" {
		t.Fatalf("sealed value equals plaintext")
	}

	got, err := k.Open(sealed)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if got != "eyJhbGciOi.token" {
		t.Fatalf("Open = %q, want original", got)
	}
}

func TestSeal_Randomized(t *testing.T) {
	k := newTestKeyChain(t, "secret")

	s1, err := k.Seal("same")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	s2, err := k.Seal("same")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if s1 == s2 {
		t.Fatalf("expected sealed values to differ")
	}
}

func TestOpen_WrongSecret(t *testing.T) {
	sealed, err := newTestKeyChain(t, "right").Seal("value")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	_, err = newTestKeyChain(t, "wrong").Open(sealed)
	if !errors.Is(err, ErrSealedValueCorrupt) {
		t.Fatalf("expected ErrSealedValueCorrupt, got %v", err)
	}
}

func TestOpen_Corrupt(t *testing.T) {
	k := newTestKeyChain(t, "secret")

	tests := map[string]string{
		"not base64":    "%%%",
		"too short":     base64.StdEncoding.EncodeToString([]byte("short")),
		"no ciphertext": base64.StdEncoding.EncodeToString(make([]byte, saltSize+4)),
		"plain token":   "plain-token",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := k.Open(input); !errors.Is(err, ErrSealedValueCorrupt) {
				t.Fatalf("expected ErrSealedValueCorrupt, got %v", err)
			}
		})
	}
}

func TestSealOpen_EmptyPlaintext(t *testing.T) {
	k := newTestKeyChain(t, "secret")

	sealed, err := k.Seal("")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	got, err := k.Open(sealed)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if got != "" {
		t.Fatalf("Open = %q, want empty", got)
	}
}
