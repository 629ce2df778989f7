// Package benchmark provides performance benchmarks for the PQC1 hybrid
// post-quantum file container.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./test/benchmark/
//
// For profiling:
//
//	go test -bench=. -cpuprofile=cpu.prof -memprofile=mem.prof ./test/benchmark/
package benchmark

import (
	"testing"

	"github.com/pzverkov/pqc-container/pkg/pipeline"
	"github.com/pzverkov/pqc-container/pkg/primitive"
	"github.com/pzverkov/pqc-container/pkg/sessionkey"
)

// --- Primitive Adapter Benchmarks ---

func BenchmarkKEMKeyGeneration(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := primitive.GenerateKEMKeyPair(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKEMEncapsulate(b *testing.B) {
	kp, _ := primitive.GenerateKEMKeyPair()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := primitive.Encapsulate(kp.Public); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKEMDecapsulate(b *testing.B) {
	kp, _ := primitive.GenerateKEMKeyPair()
	ct, _, _ := primitive.Encapsulate(kp.Public)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := primitive.Decapsulate(kp.Private, ct); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDSSKeyGeneration(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := primitive.GenerateDSSKeyPair(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDSSSign(b *testing.B) {
	kp, _ := primitive.GenerateDSSKeyPair()
	msg := make([]byte, 1024)

	b.ResetTimer()
	b.SetBytes(int64(len(msg)))
	for i := 0; i < b.N; i++ {
		if _, err := primitive.Sign(kp.Private, msg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDSSVerify(b *testing.B) {
	kp, _ := primitive.GenerateDSSKeyPair()
	msg := make([]byte, 1024)
	sig, _ := primitive.Sign(kp.Private, msg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !primitive.Verify(kp.Public, msg, sig) {
			b.Fatal("verification unexpectedly failed")
		}
	}
}

// --- Session Key Derivation Benchmarks ---

func BenchmarkSessionKeyDeriveFastPath(b *testing.B) {
	// ML-KEM-768's 32-byte shared secret always takes the verbatim-copy
	// branch; this is the path every real container exercises.
	secret := make([]byte, 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sessionkey.Derive(secret); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSessionKeyDeriveHKDFFallback(b *testing.B) {
	// Unreachable with ML-KEM-768 but benchmarked for wire-format
	// completeness.
	secret := make([]byte, 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sessionkey.Derive(secret); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Hybrid Pipeline Benchmarks ---

func BenchmarkPipelineEncryptUnsigned(b *testing.B) {
	benchmarkEncrypt(b, 1400, false)
}

func BenchmarkPipelineEncryptSigned(b *testing.B) {
	benchmarkEncrypt(b, 1400, true)
}

func benchmarkEncrypt(b *testing.B, size int, signed bool) {
	recipient, _ := primitive.GenerateKEMKeyPair()
	var opts pipeline.EncryptOptions
	if signed {
		dss, _ := primitive.GenerateDSSKeyPair()
		opts.SignerPrivate = dss.Private
	}
	plaintext := make([]byte, size)

	b.ResetTimer()
	b.SetBytes(int64(size))
	for i := 0; i < b.N; i++ {
		if _, err := pipeline.Encrypt(plaintext, recipient.Public, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPipelineDecryptUnsigned(b *testing.B) {
	benchmarkDecrypt(b, 1400, false)
}

func BenchmarkPipelineDecryptSigned(b *testing.B) {
	benchmarkDecrypt(b, 1400, true)
}

func benchmarkDecrypt(b *testing.B, size int, signed bool) {
	recipient, _ := primitive.GenerateKEMKeyPair()
	var encOpts pipeline.EncryptOptions
	var decOpts pipeline.DecryptOptions
	if signed {
		dss, _ := primitive.GenerateDSSKeyPair()
		encOpts.SignerPrivate = dss.Private
		decOpts.SignerPublic = dss.Public
	}
	plaintext := make([]byte, size)
	container, _ := pipeline.Encrypt(plaintext, recipient.Public, encOpts)

	b.ResetTimer()
	b.SetBytes(int64(size))
	for i := 0; i < b.N; i++ {
		if _, err := pipeline.Decrypt(container, recipient.Private, decOpts); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Payload Size Sweep ---

func BenchmarkPipelineEncrypt64B(b *testing.B)  { benchmarkEncrypt(b, 64, false) }
func BenchmarkPipelineEncrypt1KB(b *testing.B)  { benchmarkEncrypt(b, 1024, false) }
func BenchmarkPipelineEncrypt64KB(b *testing.B) { benchmarkEncrypt(b, 65536, false) }
func BenchmarkPipelineEncrypt1MB(b *testing.B)  { benchmarkEncrypt(b, 1<<20, false) }

// --- Batch / Parallel Benchmarks ---

func BenchmarkBatchEncrypt(b *testing.B) {
	recipient, _ := primitive.GenerateKEMKeyPair()
	jobs := make([]pipeline.EncryptJob, 64)
	for i := range jobs {
		jobs[i] = pipeline.EncryptJob{ID: string(rune('a' + i%26)), Plaintext: make([]byte, 4096)}
	}

	b.ResetTimer()
	b.SetBytes(int64(4096 * len(jobs)))
	for i := 0; i < b.N; i++ {
		pipeline.BatchEncrypt(jobs, recipient.Public, pipeline.EncryptOptions{}, 8)
	}
}

func BenchmarkPipelineEncryptParallel(b *testing.B) {
	recipient, _ := primitive.GenerateKEMKeyPair()
	plaintext := make([]byte, 1400)

	b.SetBytes(int64(len(plaintext)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = pipeline.Encrypt(plaintext, recipient.Public, pipeline.EncryptOptions{})
		}
	})
}

func BenchmarkKEMEncapsulateParallel(b *testing.B) {
	kp, _ := primitive.GenerateKEMKeyPair()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _, _ = primitive.Encapsulate(kp.Public)
		}
	})
}

// --- Memory Allocation Benchmarks ---

func BenchmarkKEMKeyGenerationAllocs(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = primitive.GenerateKEMKeyPair()
	}
}

func BenchmarkPipelineEncryptAllocs(b *testing.B) {
	recipient, _ := primitive.GenerateKEMKeyPair()
	plaintext := make([]byte, 1400)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = pipeline.Encrypt(plaintext, recipient.Public, pipeline.EncryptOptions{})
	}
}
