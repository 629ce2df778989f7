// Package sessionkey derives the AES-256 session key the container's AEAD
// layer uses from an ML-KEM-768 shared secret.
//
// Derivation rule:
//
//	len(sharedSecret) >= 32  ->  session key = sharedSecret[:32]
//	len(sharedSecret) <  32  ->  session key = HKDF-SHA256(sharedSecret, salt=nil, info="pqc-aes-key")[:32]
//
// ML-KEM-768 always emits a 32-byte shared secret, so in practice every
// container produced by this module takes the first branch; the second
// branch exists so the derivation is total over any byte slice a future KEM
// might produce. Both branches are part of the wire contract; interoperating
// implementations must follow them exactly.
package sessionkey

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/pzverkov/pqc-container/internal/constants"
	qerrors "github.com/pzverkov/pqc-container/internal/errors"
)

// Derive produces a SessionKeySize-byte AES key from a KEM shared secret.
func Derive(sharedSecret []byte) ([]byte, error) {
	if len(sharedSecret) == 0 {
		return nil, qerrors.ErrInvalidKeySize
	}

	if len(sharedSecret) >= constants.SessionKeySize {
		key := make([]byte, constants.SessionKeySize)
		copy(key, sharedSecret[:constants.SessionKeySize])
		return key, nil
	}

	reader := hkdf.New(sha256.New, sharedSecret, nil, []byte(constants.HKDFInfo))
	key := make([]byte, constants.SessionKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, qerrors.ErrPrimitiveFailure
	}
	return key, nil
}
