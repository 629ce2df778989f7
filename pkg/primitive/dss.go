// dss.go implements the ML-DSA-87 digital signature wrapper, the optional
// signature half of the PQC1 container.
//
// ML-DSA (Module-Lattice-based Digital Signature Algorithm) is standardized
// in NIST FIPS 204 and, like ML-KEM, derives its hardness from lattice
// problems over module structures (MLWE and Module-SIS). ML-DSA-87 is its
// highest parameter set (NIST Category 5), used for the container's signed
// variant.
package primitive

import (
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"

	"github.com/pzverkov/pqc-container/internal/constants"
	qerrors "github.com/pzverkov/pqc-container/internal/errors"
)

// DSSPublicKey wraps an ML-DSA-87 public key.
type DSSPublicKey struct {
	key *mldsa87.PublicKey
}

// DSSPrivateKey wraps an ML-DSA-87 private key.
type DSSPrivateKey struct {
	key *mldsa87.PrivateKey
}

// DSSKeyPair is an ML-DSA-87 signing key pair.
type DSSKeyPair struct {
	Public  *DSSPublicKey
	Private *DSSPrivateKey
}

// GenerateDSSKeyPair generates a new ML-DSA-87 key pair using the system
// CSPRNG.
func GenerateDSSKeyPair() (*DSSKeyPair, error) {
	pub, priv, err := mldsa87.GenerateKey(Reader)
	if err != nil {
		return nil, qerrors.ErrPrimitiveFailure
	}
	return &DSSKeyPair{
		Public:  &DSSPublicKey{key: pub},
		Private: &DSSPrivateKey{key: priv},
	}, nil
}

// Sign produces a detached ML-DSA-87 signature over message. The context
// string is left empty; the container has no notion of a domain-separated
// signing context beyond the canonical signed payload itself.
func Sign(priv *DSSPrivateKey, message []byte) ([]byte, error) {
	if priv == nil || priv.key == nil {
		return nil, qerrors.ErrInvalidPrivateKey
	}

	sig := make([]byte, mldsa87.SignatureSize)
	if err := mldsa87.SignTo(priv.key, message, nil, false, sig); err != nil {
		return nil, qerrors.ErrPrimitiveFailure
	}
	return sig, nil
}

// Verify reports whether sig is a valid ML-DSA-87 signature over message
// under pub. It never returns an error: an invalid signature and a
// malformed signature both produce false.
func Verify(pub *DSSPublicKey, message, sig []byte) bool {
	if pub == nil || pub.key == nil {
		return false
	}
	if len(sig) != constants.MLDSASignatureSize {
		return false
	}
	return mldsa87.Verify(pub.key, message, nil, sig)
}

// Bytes returns the packed encoding of the public key.
func (pk *DSSPublicKey) Bytes() []byte {
	if pk == nil || pk.key == nil {
		return nil
	}
	b, _ := pk.key.MarshalBinary()
	return b
}

// Bytes returns the packed encoding of the private key.
func (sk *DSSPrivateKey) Bytes() []byte {
	if sk == nil || sk.key == nil {
		return nil
	}
	b, _ := sk.key.MarshalBinary()
	return b
}

// ParseDSSPublicKey parses an ML-DSA-87 public key from its packed form.
func ParseDSSPublicKey(data []byte) (*DSSPublicKey, error) {
	if len(data) != constants.MLDSAPublicKeySize {
		return nil, qerrors.ErrInvalidPublicKey
	}
	pk := new(mldsa87.PublicKey)
	if err := pk.UnmarshalBinary(data); err != nil {
		return nil, qerrors.ErrInvalidPublicKey
	}
	return &DSSPublicKey{key: pk}, nil
}

// ParseDSSPrivateKey parses an ML-DSA-87 private key from its packed form.
func ParseDSSPrivateKey(data []byte) (*DSSPrivateKey, error) {
	if len(data) != constants.MLDSAPrivateKeySize {
		return nil, qerrors.ErrInvalidPrivateKey
	}
	sk := new(mldsa87.PrivateKey)
	if err := sk.UnmarshalBinary(data); err != nil {
		return nil, qerrors.ErrInvalidPrivateKey
	}
	return &DSSPrivateKey{key: sk}, nil
}

// Zeroize drops this key pair's references to its key material.
func (kp *DSSKeyPair) Zeroize() {
	if kp == nil {
		return
	}
	kp.Private = nil
	kp.Public = nil
}
