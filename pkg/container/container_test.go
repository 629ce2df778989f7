package container_test

import (
	"bytes"
	"testing"

	"github.com/pzverkov/pqc-container/internal/constants"
	qerrors "github.com/pzverkov/pqc-container/internal/errors"
	"github.com/pzverkov/pqc-container/pkg/container"
)

func validFields() *container.Fields {
	return &container.Fields{
		AlgorithmFlags: container.AlgorithmFlags(constants.AlgorithmFlagKEM | constants.AlgorithmFlagSYM),
		Nonce:          bytes.Repeat([]byte{0xAA}, constants.NonceSize),
		KEMCiphertext:  bytes.Repeat([]byte{0xBB}, constants.MLKEMCiphertextSize),
		AEADTag:        bytes.Repeat([]byte{0xCC}, constants.AESTagSize),
		AEADCiphertext: []byte("hello world\n"),
	}
}

func signedFields() *container.Fields {
	f := validFields()
	f.AlgorithmFlags |= container.AlgorithmFlags(constants.AlgorithmFlagDSS)
	f.Signature = bytes.Repeat([]byte{0xDD}, constants.MLDSASignatureSize)
	return f
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for name, f := range map[string]*container.Fields{
		"unsigned":    validFields(),
		"signed":      signedFields(),
		"empty-plain": func() *container.Fields { f := validFields(); f.AEADCiphertext = nil; return f }(),
	} {
		t.Run(name, func(t *testing.T) {
			encoded, err := container.Encode(f)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			decoded, err := container.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.AlgorithmFlags != f.AlgorithmFlags {
				t.Errorf("AlgorithmFlags = %#x, want %#x", decoded.AlgorithmFlags, f.AlgorithmFlags)
			}
			if !bytes.Equal(decoded.Nonce, f.Nonce) {
				t.Error("Nonce mismatch after round trip")
			}
			if !bytes.Equal(decoded.KEMCiphertext, f.KEMCiphertext) {
				t.Error("KEMCiphertext mismatch after round trip")
			}
			if !bytes.Equal(decoded.AEADTag, f.AEADTag) {
				t.Error("AEADTag mismatch after round trip")
			}
			if !bytes.Equal(decoded.Signature, f.Signature) {
				t.Error("Signature mismatch after round trip")
			}
			if !bytes.Equal(decoded.AEADCiphertext, f.AEADCiphertext) {
				t.Error("AEADCiphertext mismatch after round trip")
			}
		})
	}
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, err := container.Decode(make([]byte, constants.FixedHeaderSize-1))
	if !qerrors.Is(err, qerrors.ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	encoded, err := container.Encode(validFields())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	copy(encoded[:4], "XXX1")

	_, err = container.Decode(encoded)
	if !qerrors.Is(err, qerrors.ErrBadMagic) {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestDecodeRejectsUnknownAlgorithmBit(t *testing.T) {
	encoded, err := container.Encode(validFields())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	encoded[4] |= 0x80

	_, err = container.Decode(encoded)
	if !qerrors.Is(err, qerrors.ErrUnsupportedAlgorithm) {
		t.Fatalf("err = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestDecodeRejectsMissingRequiredBits(t *testing.T) {
	encoded, err := container.Encode(validFields())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	encoded[4] = byte(constants.AlgorithmFlagKEM) // clear SYM bit

	_, err = container.Decode(encoded)
	if !qerrors.Is(err, qerrors.ErrUnsupportedAlgorithm) {
		t.Fatalf("err = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestDecodeRejectsOversizedLengthFields(t *testing.T) {
	encoded, err := container.Encode(validFields())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Inflate kem_ct_len far beyond what the buffer actually holds.
	encoded[5] = 0x7F

	_, err = container.Decode(encoded)
	if !qerrors.Is(err, qerrors.ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestDecodeRejectsWrongTagLength(t *testing.T) {
	encoded, err := container.Encode(validFields())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// tag_len field starts right after kem_ct_len (offset 9).
	encoded[9], encoded[10], encoded[11], encoded[12] = 0, 0, 0, 15

	_, err = container.Decode(encoded)
	if !qerrors.Is(err, qerrors.ErrInvalidLength) {
		t.Fatalf("err = %v, want ErrInvalidLength", err)
	}
}

func TestDecodeRejectsInconsistentSignatureHeader(t *testing.T) {
	encoded, err := container.Encode(validFields())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Set sig_len > 0 without setting the DSS bit.
	encoded[13], encoded[14], encoded[15], encoded[16] = 0, 0, 0, 1

	_, err = container.Decode(encoded)
	if !qerrors.Is(err, qerrors.ErrInconsistentHeader) {
		t.Fatalf("err = %v, want ErrInconsistentHeader", err)
	}
}

func TestEncodeRejectsBadFields(t *testing.T) {
	f := validFields()
	f.Nonce = f.Nonce[:4]
	if _, err := container.Encode(f); err == nil {
		t.Error("expected error encoding a short nonce")
	}
}

func TestAlgorithmFlagsAccessors(t *testing.T) {
	f := container.AlgorithmFlags(constants.AlgorithmFlagKEM | constants.AlgorithmFlagSYM)
	if !f.HasKEM() || !f.HasSYM() || f.HasDSS() {
		t.Errorf("flags accessors wrong for %#x", f)
	}
	signed := f | container.AlgorithmFlags(constants.AlgorithmFlagDSS)
	if !signed.HasDSS() {
		t.Error("HasDSS should be true once the DSS bit is set")
	}
}
