// Package primitive adapts the post-quantum and classical cryptographic
// building blocks the PQC1 container is built from: ML-KEM-768 key
// encapsulation, ML-DSA-87 digital signatures, and the CSPRNG both rely on.
// Every exported type wraps a circl type so the rest of this module never
// imports circl directly.
package primitive

import (
	"crypto/rand"
	"io"

	qerrors "github.com/pzverkov/pqc-container/internal/errors"
)

// SecureRandom reads cryptographically secure random bytes into b. It uses
// crypto/rand.Read, sourcing entropy from the OS CSPRNG.
func SecureRandom(b []byte) error {
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return qerrors.ErrPrimitiveFailure
	}
	return nil
}

// Reader is an io.Reader producing cryptographically secure random bytes.
var Reader = rand.Reader

// ConstantTimeCompare compares two byte slices in constant time, returning
// true only if they are equal. Used to avoid timing attacks when comparing
// secrets derived from attacker-controlled input.
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := range a {
		result |= a[i] ^ b[i]
	}
	return result == 0
}

// Zeroize overwrites b with zeros. Call it on key material and shared
// secrets once they are no longer needed.
//
// Note: the Go runtime may have already copied the backing array, and the
// compiler is free to optimize trivial zeroing away; this is best-effort.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeAll zeroizes every slice given.
func ZeroizeAll(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}
