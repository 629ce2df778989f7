// Package pipeline implements the Hybrid Pipeline: end-to-end container
// encryption and decryption, the canonical signature-payload binding, and
// the signature policy that decides when a missing or failing signature is
// tolerated, warned about, or rejected outright.
//
// Construction:
//
//	(kem_ct, K)   ← KEM.Encapsulate(recipient_public)
//	key           ← SessionKey.Derive(K)
//	ct, tag       ← AES-256-GCM.Seal(key, nonce, plaintext)
//	signature     ← DSS.Sign(signer_private, payload)   (optional)
//	payload       = algorithm_flags ∥ kem_ct_len ∥ tag_len ∥ nonce ∥ kem_ct ∥ tag ∥ ct
//
// The signature payload deliberately omits sig_len (a signature cannot
// commit to its own length) and is always reconstructed from parsed
// fields on the decrypt path rather than sliced out of the raw container,
// so a signature stays valid only for the exact fields it was computed over.
package pipeline

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"time"

	"github.com/pzverkov/pqc-container/internal/constants"
	qerrors "github.com/pzverkov/pqc-container/internal/errors"
	"github.com/pzverkov/pqc-container/internal/obslog"
	"github.com/pzverkov/pqc-container/pkg/container"
	"github.com/pzverkov/pqc-container/pkg/primitive"
	"github.com/pzverkov/pqc-container/pkg/sessionkey"
)

// SignatureStatus reports what, if anything, this decryption learned about
// a signature. It is deliberately not a bool: "not present" and "present
// but not checked" are different facts a caller must be able to tell apart.
type SignatureStatus int

const (
	// SignatureNotPresent means the container carries no signature.
	SignatureNotPresent SignatureStatus = iota

	// SignatureNotVerified means a signature is present but no signer
	// public key was supplied, so it was not checked.
	SignatureNotVerified

	// SignatureVerified means a signature is present and verified
	// successfully against the supplied signer public key.
	SignatureVerified

	// SignatureInvalid means a signature is present, a signer public key
	// was supplied, and verification failed. Decrypt never returns this
	// status in a DecryptResult: a failed verification surfaces as
	// ErrSignatureInvalid with a nil result, never paired with plaintext.
	SignatureInvalid
)

// String renders the status for logging.
func (s SignatureStatus) String() string {
	switch s {
	case SignatureNotPresent:
		return "not-present"
	case SignatureNotVerified:
		return "not-verified"
	case SignatureVerified:
		return "verified"
	case SignatureInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// DecryptResult carries the recovered plaintext and what was learned about
// any signature.
type DecryptResult struct {
	Plaintext       []byte
	SignatureStatus SignatureStatus
}

// EncryptOptions configures Encrypt. SignerPrivate is optional; when nil the
// container is produced without a signature and without the DSS flag.
type EncryptOptions struct {
	SignerPrivate *primitive.DSSPrivateKey
}

// DecryptOptions configures Decrypt.
type DecryptOptions struct {
	// SignerPublic, if supplied, is used to verify a present signature.
	SignerPublic *primitive.DSSPublicKey

	// RequireSignature makes a missing signature, or a present one with
	// no signer key supplied, a hard failure instead of being accepted.
	RequireSignature bool
}

// Encrypt produces a PQC1 container protecting plaintext for recipientPublic,
// optionally signed with opts.SignerPrivate.
func Encrypt(plaintext []byte, recipientPublic *primitive.KEMPublicKey, opts EncryptOptions) ([]byte, error) {
	kemCt, sharedSecret, err := primitive.Encapsulate(recipientPublic)
	if err != nil {
		return nil, qerrors.NewPipelineError("encrypt", "encapsulate", err)
	}
	defer primitive.Zeroize(sharedSecret)

	key, err := sessionkey.Derive(sharedSecret)
	if err != nil {
		return nil, qerrors.NewPipelineError("encrypt", "derive-session-key", err)
	}
	defer primitive.Zeroize(key)

	nonce := make([]byte, constants.AESNonceSize)
	if err := primitive.SecureRandom(nonce); err != nil {
		return nil, qerrors.NewPipelineError("encrypt", "nonce", err)
	}

	sealed, err := aeadSeal(key, nonce, plaintext)
	if err != nil {
		return nil, qerrors.NewPipelineError("encrypt", "aead-seal", err)
	}
	ciphertext := sealed[:len(sealed)-constants.AESTagSize]
	tag := sealed[len(sealed)-constants.AESTagSize:]

	flags := container.AlgorithmFlags(constants.AlgorithmFlagKEM | constants.AlgorithmFlagSYM)

	var signature []byte
	if opts.SignerPrivate != nil {
		flags |= container.AlgorithmFlags(constants.AlgorithmFlagDSS)
		payload := signaturePayload(flags, nonce, kemCt, tag, ciphertext)
		signature, err = primitive.Sign(opts.SignerPrivate, payload)
		if err != nil {
			return nil, qerrors.NewPipelineError("encrypt", "sign", err)
		}
	}

	return container.Encode(&container.Fields{
		AlgorithmFlags: flags,
		Nonce:          nonce,
		KEMCiphertext:  kemCt,
		AEADTag:        tag,
		Signature:      signature,
		AEADCiphertext: ciphertext,
	})
}

// Decrypt parses and authenticates a PQC1 container, applying the signature
// policy in opts before doing any KEM or AEAD work when that policy alone
// is enough to reject the input.
func Decrypt(data []byte, recipientPrivate *primitive.KEMPrivateKey, opts DecryptOptions) (*DecryptResult, error) {
	fields, err := container.Decode(data)
	if err != nil {
		return nil, err
	}

	signaturePresent := fields.AlgorithmFlags.HasDSS()

	if !signaturePresent {
		if opts.RequireSignature {
			return nil, qerrors.NewPipelineError("decrypt", "policy", qerrors.ErrSignatureRequired)
		}
	} else {
		if opts.SignerPublic == nil {
			if opts.RequireSignature {
				return nil, qerrors.NewPipelineError("decrypt", "policy", qerrors.ErrMissingSignerKey)
			}
		} else {
			payload := signaturePayload(fields.AlgorithmFlags, fields.Nonce, fields.KEMCiphertext, fields.AEADTag, fields.AEADCiphertext)
			if !primitive.Verify(opts.SignerPublic, payload, fields.Signature) {
				return nil, qerrors.NewPipelineError("decrypt", "verify", qerrors.ErrSignatureInvalid)
			}
		}
	}

	sharedSecret, err := primitive.Decapsulate(recipientPrivate, fields.KEMCiphertext)
	if err != nil {
		return nil, qerrors.NewPipelineError("decrypt", "decapsulate", err)
	}
	defer primitive.Zeroize(sharedSecret)

	key, err := sessionkey.Derive(sharedSecret)
	if err != nil {
		return nil, qerrors.NewPipelineError("decrypt", "derive-session-key", err)
	}
	defer primitive.Zeroize(key)

	plaintext, err := aeadOpen(key, fields.Nonce, fields.AEADCiphertext, fields.AEADTag)
	if err != nil {
		return nil, qerrors.NewPipelineError("decrypt", "aead-open", qerrors.ErrDecryptionFailed)
	}

	status := SignatureNotPresent
	switch {
	case signaturePresent && opts.SignerPublic != nil:
		status = SignatureVerified
	case signaturePresent:
		status = SignatureNotVerified
	}

	return &DecryptResult{Plaintext: plaintext, SignatureStatus: status}, nil
}

// signaturePayload reconstructs the canonical signed byte sequence from
// parsed fields. sig_len is never part of it.
func signaturePayload(flags container.AlgorithmFlags, nonce, kemCt, tag, ciphertext []byte) []byte {
	header := make([]byte, constants.AlgorithmFlagsSize+2*constants.LengthFieldSize+constants.NonceSize)
	offset := 0
	header[offset] = byte(flags)
	offset += constants.AlgorithmFlagsSize
	binary.BigEndian.PutUint32(header[offset:], uint32(len(kemCt)))
	offset += constants.LengthFieldSize
	binary.BigEndian.PutUint32(header[offset:], uint32(len(tag)))
	offset += constants.LengthFieldSize
	copy(header[offset:], nonce)

	payload := make([]byte, 0, len(header)+len(kemCt)+len(tag)+len(ciphertext))
	payload = append(payload, header...)
	payload = append(payload, kemCt...)
	payload = append(payload, tag...)
	payload = append(payload, ciphertext...)
	return payload
}

func aeadSeal(key, nonce, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// aeadOpen reassembles ciphertext and tag in the canonical order the AEAD
// primitive expects (ciphertext ∥ tag), even though the container stores
// them as separate fields.
func aeadOpen(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	combined := make([]byte, 0, len(ciphertext)+len(tag))
	combined = append(combined, ciphertext...)
	combined = append(combined, tag...)
	return gcm.Open(nil, nonce, combined, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptContext wraps Encrypt in a trace span and a debug/error log line.
// The core operation itself stays context-free and stateless; this wrapper
// is a convenience for front-ends that want observability without
// threading a logger through every call site.
func EncryptContext(ctx context.Context, plaintext []byte, recipientPublic *primitive.KEMPublicKey, opts EncryptOptions) ([]byte, error) {
	var start [8]byte
	binary.BigEndian.PutUint64(start[:], uint64(time.Now().UnixNano()))
	cid := obslog.CorrelationID("encrypt", recipientPublic.Bytes(), []byte{boolByte(opts.SignerPrivate != nil)}, start[:])
	_, end := obslog.StartSpan(ctx, obslog.SpanEncrypt, obslog.WithAttributes(map[string]interface{}{
		"plaintext_bytes": len(plaintext),
		"signed":          opts.SignerPrivate != nil,
		"correlation_id":  cid,
	}))

	out, err := Encrypt(plaintext, recipientPublic, opts)
	end(err)
	if err != nil {
		obslog.Error("encrypt failed", obslog.Fields{"error": err.Error(), "correlation_id": cid})
		return nil, err
	}
	obslog.Debug("encrypt succeeded", obslog.Fields{"container_bytes": len(out), "correlation_id": cid})
	return out, nil
}

// DecryptContext wraps Decrypt in a trace span and a debug/error log line,
// plus a warning when a present signature was not verified.
func DecryptContext(ctx context.Context, data []byte, recipientPrivate *primitive.KEMPrivateKey, opts DecryptOptions) (*DecryptResult, error) {
	cid := obslog.CorrelationID("decrypt", data[:min(len(data), 32)])
	_, end := obslog.StartSpan(ctx, obslog.SpanDecrypt, obslog.WithAttributes(map[string]interface{}{
		"container_bytes":   len(data),
		"require_signature": opts.RequireSignature,
		"correlation_id":    cid,
	}))

	res, err := Decrypt(data, recipientPrivate, opts)
	end(err)
	if err != nil {
		obslog.Error("decrypt failed", obslog.Fields{"error": err.Error(), "correlation_id": cid})
		return nil, err
	}
	if res.SignatureStatus == SignatureNotVerified {
		obslog.Warn("container is signed but no signer key was supplied; signature not verified", obslog.Fields{"correlation_id": cid})
	}
	obslog.Debug("decrypt succeeded", obslog.Fields{"signature_status": res.SignatureStatus.String(), "correlation_id": cid})
	return res, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
