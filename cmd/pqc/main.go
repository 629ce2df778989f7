// Command pqc is a CLI front end over the PQC1 hybrid post-quantum file
// container: key-pair generation, authenticated encryption for a named
// recipient, and authenticated decryption with optional signer verification.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	qerrors "github.com/pzverkov/pqc-container/internal/errors"
	"github.com/pzverkov/pqc-container/internal/keystore"
	"github.com/pzverkov/pqc-container/internal/obslog"
	"github.com/pzverkov/pqc-container/pkg/pipeline"
	pkgversion "github.com/pzverkov/pqc-container/pkg/version"
)

// Build-time variables (set via -ldflags).
var (
	version   = ""        // Set via -ldflags "-X main.version=x.y.z"
	buildTime = "unknown" // Set via -ldflags "-X main.buildTime=..."
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "keygen":
		keygenCommand()
	case "encrypt":
		encryptCommand()
	case "encrypt-batch":
		encryptBatchCommand()
	case "decrypt":
		decryptCommand()
	case "version":
		fmt.Printf("pqc version %s\n", getVersion())
		if buildTime != "unknown" {
			fmt.Printf("Built: %s\n", buildTime)
		}
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pqc - hybrid post-quantum file encryption

USAGE:
    pqc <command> [options]

COMMANDS:
    keygen         Generate an ML-KEM-768 + ML-DSA-87 key pair for an identity
    encrypt        Encrypt a file for a recipient, optionally signing it
    encrypt-batch  Encrypt many files concurrently for a recipient
    decrypt        Decrypt a file, optionally verifying a sender's signature
    version        Print version information
    help           Show this help message

Run 'pqc <command> --help' for more information on a command.

EXAMPLES:
    pqc keygen --label alice --dir ./keys
    pqc encrypt --in report.pdf --out report.pdf.pqc1 --recipient alice --keys ./keys
    pqc encrypt --in report.pdf --out report.pdf.pqc1 --recipient alice --signer bob --keys ./keys
    pqc decrypt --in report.pdf.pqc1 --out report.pdf --recipient alice --keys ./keys

Security: ML-KEM-768 (NIST FIPS 203) + AES-256-GCM + optional ML-DSA-87 (NIST FIPS 204)`)
}

func keygenCommand() {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	label := fs.String("label", "", "Identity label to generate keys for (required)")
	dir := fs.String("dir", "./keys", "Directory to write key files into")

	fs.Usage = func() {
		fmt.Println(`USAGE: pqc keygen --label <name> [options]

Generate an ML-KEM-768 key pair and an ML-DSA-87 key pair for an identity,
writing four raw key files into --dir.

OPTIONS:`)
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[2:])

	if *label == "" {
		fmt.Fprintln(os.Stderr, "error: --label is required")
		fs.Usage()
		os.Exit(1)
	}

	if _, err := keystore.GenerateAndSave(*dir, *label); err != nil {
		fmt.Fprintf(os.Stderr, "keygen failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("generated key pair for %q in %s\n", *label, *dir)
}

func encryptCommand() {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	in := fs.String("in", "", "Input plaintext file (required)")
	out := fs.String("out", "", "Output container file (required)")
	recipient := fs.String("recipient", "", "Recipient identity label (required)")
	signer := fs.String("signer", "", "Signer identity label (optional)")
	keysDir := fs.String("keys", "./keys", "Directory containing key files")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn, error, silent")

	fs.Usage = func() {
		fmt.Println(`USAGE: pqc encrypt --in <file> --out <file> --recipient <label> [options]

Encrypt a file into a PQC1 container for a recipient, optionally signing it
with a sender's ML-DSA-87 private key.

OPTIONS:`)
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[2:])

	obslog.SetLogger(obslog.NewLogger(obslog.WithLevel(obslog.ParseLevel(*logLevel)), obslog.WithName("pqc.encrypt")))

	if *in == "" || *out == "" || *recipient == "" {
		fmt.Fprintln(os.Stderr, "error: --in, --out, and --recipient are required")
		fs.Usage()
		os.Exit(1)
	}

	plaintext, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading input: %v\n", err)
		os.Exit(1)
	}

	recipientPub, err := keystore.LoadKEMPublic(*keysDir, *recipient)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading recipient key: %v\n", err)
		os.Exit(1)
	}

	opts := pipeline.EncryptOptions{}
	if *signer != "" {
		signerPriv, err := keystore.LoadDSSPrivate(*keysDir, *signer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading signer key: %v\n", err)
			os.Exit(1)
		}
		opts.SignerPrivate = signerPriv
	}

	container, err := pipeline.Encrypt(plaintext, recipientPub, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encryption failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, container, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(container), *out)
}

func decryptCommand() {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	in := fs.String("in", "", "Input container file (required)")
	out := fs.String("out", "", "Output plaintext file (required)")
	recipient := fs.String("recipient", "", "Recipient identity label (required)")
	signer := fs.String("signer", "", "Expected signer identity label (optional)")
	requireSignature := fs.Bool("require-signature", false, "Fail if no verified signature is present")
	keysDir := fs.String("keys", "./keys", "Directory containing key files")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn, error, silent")

	fs.Usage = func() {
		fmt.Println(`USAGE: pqc decrypt --in <file> --out <file> --recipient <label> [options]

Decrypt a PQC1 container, optionally verifying a sender's ML-DSA-87 signature.

OPTIONS:`)
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[2:])

	obslog.SetLogger(obslog.NewLogger(obslog.WithLevel(obslog.ParseLevel(*logLevel)), obslog.WithName("pqc.decrypt")))

	if *in == "" || *out == "" || *recipient == "" {
		fmt.Fprintln(os.Stderr, "error: --in, --out, and --recipient are required")
		fs.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading input: %v\n", err)
		os.Exit(1)
	}

	recipientPriv, err := keystore.LoadKEMPrivate(*keysDir, *recipient)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading recipient key: %v\n", err)
		os.Exit(1)
	}

	opts := pipeline.DecryptOptions{RequireSignature: *requireSignature}
	if *signer != "" {
		signerPub, err := keystore.LoadDSSPublic(*keysDir, *signer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading signer key: %v\n", err)
			os.Exit(1)
		}
		opts.SignerPublic = signerPub
	}

	result, err := pipeline.Decrypt(data, recipientPriv, opts)
	if err != nil {
		if qerrors.Is(err, qerrors.ErrDecryptionFailed) || qerrors.Is(err, qerrors.ErrSignatureInvalid) {
			// One message for both, so the output does not reveal which check failed.
			fmt.Fprintln(os.Stderr, "decryption failed: container could not be authenticated")
		} else {
			fmt.Fprintf(os.Stderr, "decryption failed: %v\n", err)
		}
		os.Exit(1)
	}

	if err := os.WriteFile(*out, result.Plaintext, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d bytes to %s (signature: %s)\n", len(result.Plaintext), *out, result.SignatureStatus)
}

func encryptBatchCommand() {
	fs := flag.NewFlagSet("encrypt-batch", flag.ExitOnError)
	inDir := fs.String("in-dir", "", "Directory of plaintext files to encrypt (required)")
	outDir := fs.String("out-dir", "", "Directory to write .pqc1 containers into (required)")
	recipient := fs.String("recipient", "", "Recipient identity label (required)")
	signer := fs.String("signer", "", "Signer identity label (optional)")
	keysDir := fs.String("keys", "./keys", "Directory containing key files")
	workers := fs.Int("workers", 4, "Number of concurrent encryption workers")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn, error, silent")

	fs.Usage = func() {
		fmt.Println(`USAGE: pqc encrypt-batch --in-dir <dir> --out-dir <dir> --recipient <label> [options]

Encrypt every file in --in-dir for a recipient, skipping subdirectories and
names that start with '.', fanning the work out across a fixed pool of
workers. Each output file is named after its
input with a .pqc1 suffix appended.

OPTIONS:`)
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[2:])

	obslog.SetLogger(obslog.NewLogger(obslog.WithLevel(obslog.ParseLevel(*logLevel)), obslog.WithName("pqc.encrypt-batch")))

	if *inDir == "" || *outDir == "" || *recipient == "" {
		fmt.Fprintln(os.Stderr, "error: --in-dir, --out-dir, and --recipient are required")
		fs.Usage()
		os.Exit(1)
	}

	entries, err := os.ReadDir(*inDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading input directory: %v\n", err)
		os.Exit(1)
	}

	recipientPub, err := keystore.LoadKEMPublic(*keysDir, *recipient)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading recipient key: %v\n", err)
		os.Exit(1)
	}

	opts := pipeline.EncryptOptions{}
	if *signer != "" {
		signerPriv, err := keystore.LoadDSSPrivate(*keysDir, *signer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading signer key: %v\n", err)
			os.Exit(1)
		}
		opts.SignerPrivate = signerPriv
	}

	var jobs []pipeline.EncryptJob
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		plaintext, err := os.ReadFile(filepath.Join(*inDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", entry.Name(), err)
			os.Exit(1)
		}
		jobs = append(jobs, pipeline.EncryptJob{ID: entry.Name(), Plaintext: plaintext})
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating output directory: %v\n", err)
		os.Exit(1)
	}

	results, stats := pipeline.BatchEncrypt(jobs, recipientPub, opts, *workers)

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: encryption failed: %v\n", res.ID, res.Err)
			continue
		}
		outPath := filepath.Join(*outDir, res.ID+".pqc1")
		if err := os.WriteFile(outPath, res.Container, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "%s: writing output: %v\n", res.ID, err)
			continue
		}
	}

	fmt.Printf("encrypted %d/%d files (%d failed) into %s\n", stats.Succeeded(), len(jobs), stats.Failed(), *outDir)
}
