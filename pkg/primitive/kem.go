// kem.go implements the ML-KEM-768 key encapsulation mechanism wrapper.
//
// ML-KEM (Module-Lattice-based Key-Encapsulation Mechanism) is standardized
// in NIST FIPS 203. Its security rests on the computational difficulty of
// the Module Learning With Errors (MLWE) problem: given (A, b = As + e) for
// a uniformly random matrix A, it is infeasible to distinguish b from
// uniform random without knowledge of the secret vector s.
//
// Security Level: NIST Category 3. The container format fixes the 768
// parameter set; no alternative codepoints exist.
package primitive

import (
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/pzverkov/pqc-container/internal/constants"
	qerrors "github.com/pzverkov/pqc-container/internal/errors"
)

// KEMPublicKey wraps an ML-KEM-768 encapsulation key.
type KEMPublicKey struct {
	key *mlkem768.PublicKey
}

// KEMPrivateKey wraps an ML-KEM-768 decapsulation key.
type KEMPrivateKey struct {
	key *mlkem768.PrivateKey
}

// KEMKeyPair is an ML-KEM-768 key pair.
type KEMKeyPair struct {
	Public  *KEMPublicKey
	Private *KEMPrivateKey
}

// GenerateKEMKeyPair generates a new ML-KEM-768 key pair using the system
// CSPRNG. Returns an error only if the CSPRNG itself fails.
func GenerateKEMKeyPair() (*KEMKeyPair, error) {
	pk, sk, err := mlkem768.GenerateKeyPair(Reader)
	if err != nil {
		return nil, qerrors.ErrPrimitiveFailure
	}
	return &KEMKeyPair{
		Public:  &KEMPublicKey{key: pk},
		Private: &KEMPrivateKey{key: sk},
	}, nil
}

// Encapsulate performs ML-KEM-768 encapsulation against a recipient's
// public key, returning the ciphertext to be carried in the container and
// the shared secret used to derive the session key.
func Encapsulate(pub *KEMPublicKey) (ciphertext, sharedSecret []byte, err error) {
	if pub == nil || pub.key == nil {
		return nil, nil, qerrors.ErrInvalidPublicKey
	}

	ct := make([]byte, mlkem768.CiphertextSize)
	ss := make([]byte, mlkem768.SharedKeySize)

	seed := make([]byte, mlkem768.EncapsulationSeedSize)
	if err := SecureRandom(seed); err != nil {
		return nil, nil, err
	}

	pub.key.EncapsulateTo(ct, ss, seed)
	return ct, ss, nil
}

// Decapsulate recovers the shared secret from a ciphertext using the
// recipient's private key. ML-KEM's implicit rejection means a malformed or
// forged ciphertext silently yields a pseudorandom secret rather than an
// error; the downstream AEAD tag check is what actually rejects tampering.
func Decapsulate(priv *KEMPrivateKey, ciphertext []byte) ([]byte, error) {
	if priv == nil || priv.key == nil {
		return nil, qerrors.ErrInvalidPrivateKey
	}
	if len(ciphertext) != constants.MLKEMCiphertextSize {
		return nil, qerrors.ErrInvalidCiphertext
	}

	ss := make([]byte, mlkem768.SharedKeySize)
	priv.key.DecapsulateTo(ss, ciphertext)
	return ss, nil
}

// Bytes returns the packed encoding of the public key.
func (pk *KEMPublicKey) Bytes() []byte {
	if pk == nil || pk.key == nil {
		return nil
	}
	buf := make([]byte, mlkem768.PublicKeySize)
	pk.key.Pack(buf)
	return buf
}

// Bytes returns the packed encoding of the private key.
func (sk *KEMPrivateKey) Bytes() []byte {
	if sk == nil || sk.key == nil {
		return nil
	}
	buf := make([]byte, mlkem768.PrivateKeySize)
	sk.key.Pack(buf)
	return buf
}

// ParseKEMPublicKey parses an ML-KEM-768 public key from its packed form.
func ParseKEMPublicKey(data []byte) (*KEMPublicKey, error) {
	if len(data) != constants.MLKEMPublicKeySize {
		return nil, qerrors.ErrInvalidPublicKey
	}
	pk := new(mlkem768.PublicKey)
	if err := pk.Unpack(data); err != nil {
		return nil, qerrors.ErrInvalidPublicKey
	}
	return &KEMPublicKey{key: pk}, nil
}

// ParseKEMPrivateKey parses an ML-KEM-768 private key from its packed form.
func ParseKEMPrivateKey(data []byte) (*KEMPrivateKey, error) {
	if len(data) != constants.MLKEMPrivateKeySize {
		return nil, qerrors.ErrInvalidPrivateKey
	}
	sk := new(mlkem768.PrivateKey)
	if err := sk.Unpack(data); err != nil {
		return nil, qerrors.ErrInvalidPrivateKey
	}
	return &KEMPrivateKey{key: sk}, nil
}

// Zeroize drops this key pair's references to its key material. CIRCL does
// not expose in-place zeroization of lattice keys, so this only clears the
// wrapper's pointers; callers holding their own copy of packed bytes must
// zeroize those separately.
func (kp *KEMKeyPair) Zeroize() {
	if kp == nil {
		return
	}
	kp.Private = nil
	kp.Public = nil
}
