// Package keystore reads and writes the raw key files a CLI front end uses
// to name an identity's ML-KEM-768 and ML-DSA-87 key material on disk. The
// naming convention is a front-end concern, not part of the wire format:
// callers that embed the core library directly never need this package.
package keystore

import (
	"os"
	"path/filepath"

	"github.com/pzverkov/pqc-container/pkg/primitive"
)

// Bundle holds the four raw key files for one identity label. Any of the
// four may be nil if that half of the bundle was never generated.
type Bundle struct {
	KEMPublic  *primitive.KEMPublicKey
	KEMPrivate *primitive.KEMPrivateKey
	DSSPublic  *primitive.DSSPublicKey
	DSSPrivate *primitive.DSSPrivateKey
}

func kemPublicPath(dir, label string) string  { return filepath.Join(dir, label+"_kem_public.key") }
func kemPrivatePath(dir, label string) string { return filepath.Join(dir, label+"_kem_private.key") }
func dssPublicPath(dir, label string) string  { return filepath.Join(dir, label+"_dss_public.key") }
func dssPrivatePath(dir, label string) string { return filepath.Join(dir, label+"_dss_private.key") }

// GenerateAndSave generates a fresh KEM and DSS key pair for label and
// writes all four raw key files into dir, creating dir if necessary.
// Private key files are written with 0600 permissions.
func GenerateAndSave(dir, label string) (*Bundle, error) {
	kemKP, err := primitive.GenerateKEMKeyPair()
	if err != nil {
		return nil, err
	}
	dssKP, err := primitive.GenerateDSSKeyPair()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	if err := writeFile(kemPublicPath(dir, label), kemKP.Public.Bytes(), 0o644); err != nil {
		return nil, err
	}
	if err := writeFile(kemPrivatePath(dir, label), kemKP.Private.Bytes(), 0o600); err != nil {
		return nil, err
	}
	if err := writeFile(dssPublicPath(dir, label), dssKP.Public.Bytes(), 0o644); err != nil {
		return nil, err
	}
	if err := writeFile(dssPrivatePath(dir, label), dssKP.Private.Bytes(), 0o600); err != nil {
		return nil, err
	}

	return &Bundle{
		KEMPublic:  kemKP.Public,
		KEMPrivate: kemKP.Private,
		DSSPublic:  dssKP.Public,
		DSSPrivate: dssKP.Private,
	}, nil
}

// LoadKEMPublic reads and parses label's ML-KEM-768 public key from dir.
func LoadKEMPublic(dir, label string) (*primitive.KEMPublicKey, error) {
	data, err := os.ReadFile(kemPublicPath(dir, label))
	if err != nil {
		return nil, err
	}
	return primitive.ParseKEMPublicKey(data)
}

// LoadKEMPrivate reads and parses label's ML-KEM-768 private key from dir.
func LoadKEMPrivate(dir, label string) (*primitive.KEMPrivateKey, error) {
	data, err := os.ReadFile(kemPrivatePath(dir, label))
	if err != nil {
		return nil, err
	}
	return primitive.ParseKEMPrivateKey(data)
}

// LoadDSSPublic reads and parses label's ML-DSA-87 public key from dir.
func LoadDSSPublic(dir, label string) (*primitive.DSSPublicKey, error) {
	data, err := os.ReadFile(dssPublicPath(dir, label))
	if err != nil {
		return nil, err
	}
	return primitive.ParseDSSPublicKey(data)
}

// LoadDSSPrivate reads and parses label's ML-DSA-87 private key from dir.
func LoadDSSPrivate(dir, label string) (*primitive.DSSPrivateKey, error) {
	data, err := os.ReadFile(dssPrivatePath(dir, label))
	if err != nil {
		return nil, err
	}
	return primitive.ParseDSSPrivateKey(data)
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
