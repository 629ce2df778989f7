// Package errors defines the typed error surface for the PQC1 hybrid
// post-quantum file container. Every fallible core operation returns one of
// these sentinels (directly or wrapped); there is no exception-like control
// flow and no silent recovery.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for Primitive Adapter operations (pkg/primitive).
var (
	// ErrInvalidKeySize indicates a key or shared secret has an incorrect size.
	ErrInvalidKeySize = errors.New("primitive: invalid key size")

	// ErrInvalidCiphertext indicates a KEM ciphertext is malformed.
	ErrInvalidCiphertext = errors.New("primitive: invalid ciphertext")

	// ErrInvalidPublicKey indicates a public key is invalid or nil.
	ErrInvalidPublicKey = errors.New("primitive: invalid public key")

	// ErrInvalidPrivateKey indicates a private key is invalid or nil.
	ErrInvalidPrivateKey = errors.New("primitive: invalid private key")

	// ErrInvalidSignature indicates a signature blob could not be parsed
	// (wrong length, malformed encoding), as distinct from a syntactically
	// valid signature that fails cryptographic verification.
	ErrInvalidSignature = errors.New("primitive: invalid signature encoding")

	// ErrPrimitiveFailure indicates the underlying PQ library reported an
	// unexpected error not covered by the sentinels above.
	ErrPrimitiveFailure = errors.New("primitive: underlying library failure")
)

// Sentinel errors for Container Codec operations (pkg/container).
var (
	// ErrBadMagic indicates the first four bytes are not "PQC1".
	ErrBadMagic = errors.New("container: bad magic")

	// ErrTruncated indicates the input is shorter than the fixed header, or
	// shorter than the header plus the declared variable-length segments.
	ErrTruncated = errors.New("container: truncated input")

	// ErrInvalidLength indicates a declared length field violates a fixed
	// constraint (tag_len must equal 16).
	ErrInvalidLength = errors.New("container: invalid length field")

	// ErrInconsistentHeader indicates sig_len and the DSS algorithm flag
	// disagree about whether a signature is present.
	ErrInconsistentHeader = errors.New("container: inconsistent header")

	// ErrUnsupportedAlgorithm indicates the algorithm flags byte sets an
	// undefined bit, or omits a bit that MUST always be set.
	ErrUnsupportedAlgorithm = errors.New("container: unsupported algorithm flags")
)

// Sentinel errors for Hybrid Pipeline operations (pkg/pipeline).
var (
	// ErrDecryptionFailed indicates the AEAD authentication tag did not
	// verify. The core deliberately does not distinguish "wrong recipient
	// key" from "corrupted or tampered ciphertext"; both surface here.
	ErrDecryptionFailed = errors.New("pipeline: decryption failed")

	// ErrSignatureRequired indicates policy requires a signature but the
	// container carries none.
	ErrSignatureRequired = errors.New("pipeline: signature required but absent")

	// ErrMissingSignerKey indicates a signature is present, policy requires
	// verification, but no signer public key was supplied.
	ErrMissingSignerKey = errors.New("pipeline: signature present but no signer key provided")

	// ErrSignatureInvalid indicates a signature is present, a signer public
	// key was supplied, and cryptographic verification failed.
	ErrSignatureInvalid = errors.New("pipeline: signature verification failed")
)

// ContainerError wraps a Container Codec failure with which decode check
// produced it, for diagnostics. Callers should branch on errors.Is against the
// sentinels above, never on this type's fields, to avoid depending on message
// text.
type ContainerError struct {
	// Check names which of the ordered decode validation checks failed,
	// e.g. "magic", "algorithm-flags", "variable-length-bounds".
	Check string
	Err   error
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("container: %s: %v", e.Check, e.Err)
}

func (e *ContainerError) Unwrap() error {
	return e.Err
}

// NewContainerError creates a new ContainerError.
func NewContainerError(check string, err error) *ContainerError {
	return &ContainerError{Check: check, Err: err}
}

// PipelineError wraps a Hybrid Pipeline failure with the operation ("encrypt"
// or "decrypt") and the stage it occurred in.
type PipelineError struct {
	Op    string // "encrypt" or "decrypt"
	Stage string // e.g. "encapsulate", "sign", "aead-open", "policy"
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline %s/%s: %v", e.Op, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a new PipelineError.
func NewPipelineError(op, stage string, err error) *PipelineError {
	return &PipelineError{Op: op, Stage: stage, Err: err}
}

// Is reports whether any error in err's chain matches target. Convenience
// wrapper around errors.Is so callers need not import both packages.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target. Convenience
// wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
