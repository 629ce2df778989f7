package sessionkey_test

import (
	"bytes"
	"crypto/sha256"
	"io"
	"testing"

	"golang.org/x/crypto/hkdf"

	"github.com/pzverkov/pqc-container/internal/constants"
	"github.com/pzverkov/pqc-container/pkg/sessionkey"
)

func TestDeriveTruncatesLongSecret(t *testing.T) {
	secret := make([]byte, 64)
	for i := range secret {
		secret[i] = byte(i)
	}

	key, err := sessionkey.Derive(secret)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if len(key) != constants.SessionKeySize {
		t.Fatalf("key length = %d, want %d", len(key), constants.SessionKeySize)
	}
	if !bytes.Equal(key, secret[:constants.SessionKeySize]) {
		t.Error("Derive did not take the first SessionKeySize bytes verbatim")
	}
}

func TestDeriveExact32BytesIsVerbatim(t *testing.T) {
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(255 - i)
	}

	key, err := sessionkey.Derive(secret)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if !bytes.Equal(key, secret) {
		t.Error("32-byte secret should pass through unchanged")
	}
}

func TestDeriveShortSecretUsesHKDF(t *testing.T) {
	secret := []byte("short shared secret")

	got, err := sessionkey.Derive(secret)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	want := make([]byte, constants.SessionKeySize)
	reader := hkdf.New(sha256.New, secret, nil, []byte(constants.HKDFInfo))
	if _, err := io.ReadFull(reader, want); err != nil {
		t.Fatalf("reference HKDF failed: %v", err)
	}

	if !bytes.Equal(got, want) {
		t.Error("short-secret derivation does not match HKDF-SHA256 with info=\"pqc-aes-key\"")
	}
}

func TestDeriveRejectsEmptySecret(t *testing.T) {
	if _, err := sessionkey.Derive(nil); err == nil {
		t.Error("expected error deriving from an empty secret")
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	secret := []byte("another short secret")
	k1, err := sessionkey.Derive(secret)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	k2, err := sessionkey.Derive(secret)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("Derive should be deterministic for the same input")
	}
}
