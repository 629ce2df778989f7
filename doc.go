// Package pqc documents the PQC1 hybrid post-quantum file container.
//
// The PQC1 container protects a file payload with an ML-KEM-768 key
// encapsulation, AES-256-GCM authenticated encryption, and an optional
// ML-DSA-87 signature binding the container to a sender identity.
//
// # Quick Start
//
//	import (
//		"github.com/pzverkov/pqc-container/pkg/pipeline"
//		"github.com/pzverkov/pqc-container/pkg/primitive"
//	)
//
//	recipient, _ := primitive.GenerateKEMKeyPair()
//	container, _ := pipeline.Encrypt([]byte("hello world\n"), recipient.Public, pipeline.EncryptOptions{})
//	result, _ := pipeline.Decrypt(container, recipient.Private, pipeline.DecryptOptions{})
//	// result.Plaintext == []byte("hello world\n")
//
// To sign a container and require verification on decrypt:
//
//	signer, _ := primitive.GenerateDSSKeyPair()
//	container, _ := pipeline.Encrypt(plaintext, recipient.Public, pipeline.EncryptOptions{
//		SignerPrivate: signer.Private,
//	})
//	result, _ := pipeline.Decrypt(container, recipient.Private, pipeline.DecryptOptions{
//		SignerPublic:     signer.Public,
//		RequireSignature: true,
//	})
//
// # Package Structure
//
//   - pkg/primitive: ML-KEM-768 / ML-DSA-87 Primitive Adapter
//   - pkg/sessionkey: Session Key Derivation (shared secret to AES-256 key)
//   - pkg/container: PQC1 binary container codec and bounds validation
//   - pkg/pipeline: Hybrid Pipeline, Encrypt/Decrypt and the signature policy
//   - internal/constants: wire-format sizes and protocol constants
//   - internal/errors: the typed error surface
//   - internal/obslog: structured logging and optional OpenTelemetry tracing
//   - internal/keystore: the on-disk key-file convention used by cmd/pqc
//   - cmd/pqc: the command-line front end (keygen/encrypt/decrypt)
//
// # Security Properties
//
//   - Post-quantum confidentiality: ML-KEM-768 (NIST Category 3)
//   - Post-quantum authenticity (optional): ML-DSA-87 (NIST Category 5)
//   - Authenticated encryption: AES-256-GCM, empty associated data
//   - One key per container: a fresh KEM encapsulation and AES key per file
//
// Streaming encryption of files larger than addressable memory, key
// distribution and identity trust, and algorithmic agility beyond this
// single fixed suite are explicitly out of scope.
//
// # Testing
//
//	go test ./...                                      # All tests
//	go test -fuzz=FuzzContainerDecode ./test/fuzz/      # Fuzz tests
//	go test -bench=. ./test/benchmark                   # Benchmarks
//
// # References
//
//   - NIST FIPS 203: Module-Lattice-Based Key-Encapsulation Mechanism Standard
//   - NIST FIPS 204: Module-Lattice-Based Digital Signature Standard
//   - NIST SP 800-38D: Galois/Counter Mode (AES-256-GCM)
package pqc
