package constants

import "testing"

func TestFixedHeaderSize(t *testing.T) {
	want := 4 + 1 + 3*4 + 12
	if FixedHeaderSize != want {
		t.Errorf("FixedHeaderSize = %d, want %d", FixedHeaderSize, want)
	}
	if MinContainerSize != FixedHeaderSize {
		t.Errorf("MinContainerSize = %d, want %d", MinContainerSize, FixedHeaderSize)
	}
}

func TestMLKEMSizes(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"MLKEMPublicKeySize", MLKEMPublicKeySize, 1184},
		{"MLKEMPrivateKeySize", MLKEMPrivateKeySize, 2400},
		{"MLKEMCiphertextSize", MLKEMCiphertextSize, 1088},
		{"MLKEMSharedSecretSize", MLKEMSharedSecretSize, 32},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestMLDSASizes(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"MLDSAPublicKeySize", MLDSAPublicKeySize, 2592},
		{"MLDSAPrivateKeySize", MLDSAPrivateKeySize, 4896},
		{"MLDSASignatureSize", MLDSASignatureSize, 4627},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestAEADParameters(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"AESKeySize", AESKeySize, 32},
		{"AESNonceSize", AESNonceSize, 12},
		{"AESTagSize", AESTagSize, 16},
		{"SessionKeySize", SessionKeySize, 32},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestAlgorithmFlagsNonOverlapping(t *testing.T) {
	flags := []uint8{AlgorithmFlagKEM, AlgorithmFlagDSS, AlgorithmFlagSYM}
	for i, a := range flags {
		for j, b := range flags {
			if i == j {
				continue
			}
			if a&b != 0 {
				t.Errorf("flag %#x and %#x overlap", a, b)
			}
		}
	}
	if AlgorithmFlagsKnownMask != AlgorithmFlagKEM|AlgorithmFlagDSS|AlgorithmFlagSYM {
		t.Errorf("AlgorithmFlagsKnownMask = %#x, want %#x", AlgorithmFlagsKnownMask, AlgorithmFlagKEM|AlgorithmFlagDSS|AlgorithmFlagSYM)
	}
	if AlgorithmFlagsRequired != AlgorithmFlagKEM|AlgorithmFlagSYM {
		t.Errorf("AlgorithmFlagsRequired = %#x, want %#x", AlgorithmFlagsRequired, AlgorithmFlagKEM|AlgorithmFlagSYM)
	}
}

func TestHKDFInfo(t *testing.T) {
	if HKDFInfo != "pqc-aes-key" {
		t.Errorf("HKDFInfo = %q, want %q", HKDFInfo, "pqc-aes-key")
	}
}
