// Package container implements the `PQC1` binary container: framing,
// algorithm flags, length fields, and the ordered structural validation
// checks a decoded container must pass before its fields are trusted by the
// Hybrid Pipeline.
//
// Wire Format:
//
//	+-------+-----------------+------------+---------+---------+-------+
//	| magic | algorithm_flags | kem_ct_len | tag_len | sig_len | nonce |
//	| 4B    | 1B              | 4B BE      | 4B BE   | 4B BE   | 12B   |
//	+-------+-----------------+------------+---------+---------+-------+
//	| kem_ciphertext | aead_tag | signature?    | aead_ciphertext |
//	| kem_ct_len     | 16B      | sig_len       | remainder       |
//	+----------------+----------+---------------+-----------------+
//
// All multi-byte integers are big-endian, unsigned. No padding or alignment.
package container

import (
	"encoding/binary"

	"github.com/pzverkov/pqc-container/internal/constants"
	qerrors "github.com/pzverkov/pqc-container/internal/errors"
)

// AlgorithmFlags is the 8-bit algorithm selector carried in the container header.
type AlgorithmFlags uint8

// HasKEM reports whether the ML-KEM-768 bit is set.
func (f AlgorithmFlags) HasKEM() bool { return f&AlgorithmFlags(constants.AlgorithmFlagKEM) != 0 }

// HasDSS reports whether the ML-DSA-87 signature bit is set.
func (f AlgorithmFlags) HasDSS() bool { return f&AlgorithmFlags(constants.AlgorithmFlagDSS) != 0 }

// HasSYM reports whether the AES-256-GCM bit is set.
func (f AlgorithmFlags) HasSYM() bool { return f&AlgorithmFlags(constants.AlgorithmFlagSYM) != 0 }

// Fields holds every field of a decoded (or about-to-be-encoded) container.
type Fields struct {
	AlgorithmFlags AlgorithmFlags
	Nonce          []byte // NonceSize bytes
	KEMCiphertext  []byte // kem_ct_len bytes
	AEADTag        []byte // 16 bytes
	Signature      []byte // sig_len bytes, nil/empty iff DSS bit clear
	AEADCiphertext []byte
}

// Encode serialises f into a PQC1 container. It validates f first; a caller
// that assembles fields out of band (rather than receiving them from
// Decode) gets the same structural guarantees on the way out as on the way
// in.
func Encode(f *Fields) ([]byte, error) {
	if err := validateFields(f); err != nil {
		return nil, err
	}

	kemCtLen := len(f.KEMCiphertext)
	tagLen := len(f.AEADTag)
	sigLen := len(f.Signature)
	total := constants.FixedHeaderSize + kemCtLen + tagLen + sigLen + len(f.AEADCiphertext)

	buf := make([]byte, total)
	offset := 0

	copy(buf[offset:], constants.ContainerMagic)
	offset += constants.MagicSize

	buf[offset] = byte(f.AlgorithmFlags)
	offset += constants.AlgorithmFlagsSize

	binary.BigEndian.PutUint32(buf[offset:], uint32(kemCtLen))
	offset += constants.LengthFieldSize

	binary.BigEndian.PutUint32(buf[offset:], uint32(tagLen))
	offset += constants.LengthFieldSize

	binary.BigEndian.PutUint32(buf[offset:], uint32(sigLen))
	offset += constants.LengthFieldSize

	copy(buf[offset:], f.Nonce)
	offset += constants.NonceSize

	copy(buf[offset:], f.KEMCiphertext)
	offset += kemCtLen

	copy(buf[offset:], f.AEADTag)
	offset += tagLen

	if sigLen > 0 {
		copy(buf[offset:], f.Signature)
		offset += sigLen
	}

	copy(buf[offset:], f.AEADCiphertext)

	return buf, nil
}

// validateFields checks invariants that Encode must never be asked to
// violate. These mirror Decode's checks 3, 5, and 6 but run against
// in-memory field values rather than wire-parsed ones.
func validateFields(f *Fields) error {
	if f.AlgorithmFlags&^AlgorithmFlags(constants.AlgorithmFlagsKnownMask) != 0 {
		return qerrors.NewContainerError("algorithm-flags", qerrors.ErrUnsupportedAlgorithm)
	}
	if f.AlgorithmFlags&AlgorithmFlags(constants.AlgorithmFlagsRequired) != AlgorithmFlags(constants.AlgorithmFlagsRequired) {
		return qerrors.NewContainerError("algorithm-flags", qerrors.ErrUnsupportedAlgorithm)
	}
	if len(f.Nonce) != constants.NonceSize {
		return qerrors.NewContainerError("nonce-length", qerrors.ErrInvalidLength)
	}
	if len(f.AEADTag) != constants.AESTagSize {
		return qerrors.NewContainerError("tag-length", qerrors.ErrInvalidLength)
	}
	if (len(f.Signature) > 0) != f.AlgorithmFlags.HasDSS() {
		return qerrors.NewContainerError("signature-consistency", qerrors.ErrInconsistentHeader)
	}
	return nil
}

// Decode parses a PQC1 container, applying the six ordered structural
// checks before returning its fields. The checks run in the order given so
// that a fuzzed or adversarial input is rejected at the earliest possible
// point, before any field derived from later bytes is trusted.
func Decode(data []byte) (*Fields, error) {
	// Check 1: minimum length for the fixed header.
	if len(data) < constants.FixedHeaderSize {
		return nil, qerrors.NewContainerError("fixed-header-length", qerrors.ErrTruncated)
	}

	// Check 2: magic.
	if string(data[:constants.MagicSize]) != constants.ContainerMagic {
		return nil, qerrors.NewContainerError("magic", qerrors.ErrBadMagic)
	}
	offset := constants.MagicSize

	flags := AlgorithmFlags(data[offset])
	offset += constants.AlgorithmFlagsSize

	// Check 3: algorithm flags are exactly the known suite, KEM+SYM required.
	if flags&^AlgorithmFlags(constants.AlgorithmFlagsKnownMask) != 0 {
		return nil, qerrors.NewContainerError("algorithm-flags", qerrors.ErrUnsupportedAlgorithm)
	}
	if flags&AlgorithmFlags(constants.AlgorithmFlagsRequired) != AlgorithmFlags(constants.AlgorithmFlagsRequired) {
		return nil, qerrors.NewContainerError("algorithm-flags", qerrors.ErrUnsupportedAlgorithm)
	}

	kemCtLen := binary.BigEndian.Uint32(data[offset:])
	offset += constants.LengthFieldSize
	tagLen := binary.BigEndian.Uint32(data[offset:])
	offset += constants.LengthFieldSize
	sigLen := binary.BigEndian.Uint32(data[offset:])
	offset += constants.LengthFieldSize

	nonce := data[offset : offset+constants.NonceSize]
	offset += constants.NonceSize

	remaining := uint64(len(data) - offset)
	declared := uint64(kemCtLen) + uint64(tagLen) + uint64(sigLen)

	// Check 4: declared variable-length segments fit within what remains.
	if declared > remaining {
		return nil, qerrors.NewContainerError("variable-length-bounds", qerrors.ErrTruncated)
	}

	// Check 5: the AEAD tag is always exactly 16 bytes.
	if tagLen != constants.AESTagSize {
		return nil, qerrors.NewContainerError("tag-length", qerrors.ErrInvalidLength)
	}

	// Check 6: signature presence in the header matches the DSS flag.
	if (sigLen > 0) != flags.HasDSS() {
		return nil, qerrors.NewContainerError("signature-consistency", qerrors.ErrInconsistentHeader)
	}

	kemCt := data[offset : offset+int(kemCtLen)]
	offset += int(kemCtLen)

	tag := data[offset : offset+int(tagLen)]
	offset += int(tagLen)

	var sig []byte
	if sigLen > 0 {
		sig = data[offset : offset+int(sigLen)]
		offset += int(sigLen)
	}

	ciphertext := data[offset:]

	return &Fields{
		AlgorithmFlags: flags,
		Nonce:          append([]byte(nil), nonce...),
		KEMCiphertext:  append([]byte(nil), kemCt...),
		AEADTag:        append([]byte(nil), tag...),
		Signature:      append([]byte(nil), sig...),
		AEADCiphertext: append([]byte(nil), ciphertext...),
	}, nil
}
