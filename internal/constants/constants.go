// Package constants defines wire-format sizes and protocol constants for the
// PQC1 hybrid post-quantum file container.
//
// Security Level: the container targets NIST Category 3 confidentiality
// (ML-KEM-768 + AES-256-GCM) with an optional NIST Category 5 signature
// (ML-DSA-87).
package constants

// Container format identification
const (
	// ContainerMagic is the 4-byte identifier at the start of every container.
	ContainerMagic = "PQC1"

	// ContainerVersion identifies the wire format this package produces and
	// consumes. There is exactly one version; the algorithm byte carries no
	// alternate codepoints.
	ContainerVersion uint8 = 1
)

// Fixed container header layout.
const (
	// MagicSize is the length in bytes of the magic field.
	MagicSize = 4

	// AlgorithmFlagsSize is the length in bytes of the algorithm flags field.
	AlgorithmFlagsSize = 1

	// LengthFieldSize is the length in bytes of each of the three uint32
	// length words (kem_ct_len, tag_len, sig_len).
	LengthFieldSize = 4

	// NonceSize is the length in bytes of the AEAD nonce.
	NonceSize = 12

	// FixedHeaderSize is MagicSize + AlgorithmFlagsSize + 3*LengthFieldSize + NonceSize.
	FixedHeaderSize = MagicSize + AlgorithmFlagsSize + 3*LengthFieldSize + NonceSize

	// MinContainerSize is the minimum input length the decoder accepts
	// before reading any length field: the fixed header alone. A container
	// that passes every decode check is longer, since tag_len must be 16.
	MinContainerSize = FixedHeaderSize
)

// ML-KEM-768 parameters (NIST FIPS 203).
// ML-KEM-768 is the container format's only KEM codepoint; ML-DSA-87 below
// supplies the optional Category 5 signature half of the container.
const (
	// MLKEMPublicKeySize is the size of an ML-KEM-768 encapsulation key in bytes.
	MLKEMPublicKeySize = 1184

	// MLKEMPrivateKeySize is the size of an ML-KEM-768 decapsulation key in bytes.
	MLKEMPrivateKeySize = 2400

	// MLKEMCiphertextSize is the size of an ML-KEM-768 ciphertext in bytes.
	MLKEMCiphertextSize = 1088

	// MLKEMSharedSecretSize is the size of the shared secret ML-KEM-768 emits.
	MLKEMSharedSecretSize = 32

	// MLKEMEncapsulationSeedSize is the size of the randomness consumed by
	// one ML-KEM-768 encapsulation.
	MLKEMEncapsulationSeedSize = 32
)

// ML-DSA-87 parameters (NIST FIPS 204), the optional signature half of the container.
const (
	// MLDSAPublicKeySize is the size of an ML-DSA-87 public key in bytes.
	MLDSAPublicKeySize = 2592

	// MLDSAPrivateKeySize is the size of an ML-DSA-87 private key in bytes.
	MLDSAPrivateKeySize = 4896

	// MLDSASignatureSize is the size of an ML-DSA-87 signature in bytes.
	MLDSASignatureSize = 4627
)

// Symmetric encryption parameters (AES-256-GCM). This is the container's only
// defined symmetric suite; there is no alternate codepoint.
const (
	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32

	// AESNonceSize is the size of an AES-GCM nonce in bytes (96 bits). Equal
	// to NonceSize; kept as a distinct name where the context is the cipher
	// rather than the wire field.
	AESNonceSize = 12

	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16
)

// SessionKeySize is the size in bytes of the derived symmetric key. Equal
// to AESKeySize; named separately because session key derivation is
// algorithm-agnostic of the downstream AEAD choice.
const SessionKeySize = 32

// HKDFInfo is the context string used when the KEM shared secret is shorter
// than SessionKeySize. Part of the wire contract: interoperating
// implementations must use this exact byte string.
const HKDFInfo = "pqc-aes-key"

// AlgorithmFlags bit positions. Bits are independent so they may be
// combined with bitwise OR without collision.
const (
	// AlgorithmFlagKEM marks ML-KEM-768 as the key encapsulation mechanism.
	// MUST always be set on a valid container.
	AlgorithmFlagKEM uint8 = 0x01

	// AlgorithmFlagDSS marks that an ML-DSA-87 signature is present.
	AlgorithmFlagDSS uint8 = 0x02

	// AlgorithmFlagSYM marks AES-256-GCM as the symmetric cipher. MUST
	// always be set on a valid container.
	AlgorithmFlagSYM uint8 = 0x04

	// AlgorithmFlagsKnownMask is the union of all defined bits. Any other
	// bit set in the algorithm flags byte is rejected as UnsupportedAlgorithm.
	AlgorithmFlagsKnownMask = AlgorithmFlagKEM | AlgorithmFlagDSS | AlgorithmFlagSYM

	// AlgorithmFlagsRequired is the set of bits that MUST be set on every
	// valid container, signed or not.
	AlgorithmFlagsRequired = AlgorithmFlagKEM | AlgorithmFlagSYM
)

// MaxPlaintextSize is a 1 GiB operational ceiling on a single plaintext; the
// whole plaintext and container live in memory, there is no streaming path.
// It is not a core wire-format limit, and neither the core nor cmd/pqc
// checks plaintext sizes against it.
const MaxPlaintextSize = 1 << 30 // 1 GiB
