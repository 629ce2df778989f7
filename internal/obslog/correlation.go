package obslog

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// CorrelationID derives a short, stable identifier for one operation's log
// lines from whatever attributes the caller already has on hand (container
// length, recipient label, start time in nanoseconds supplied by the
// caller). It exists so a front end running several operations concurrently
// can grep one operation's lines out of an interleaved log stream without
// adding a counter or a random source to the core.
//
// The derivation is a SHAKE-256 domain-separated hash: a fixed domain
// string, then each component length-prefixed so the components can never
// be confused with one another.
func CorrelationID(op string, components ...[]byte) string {
	h := sha3.NewShake256()

	writeLP := func(b []byte) {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
		h.Write(lenBuf[:])
		h.Write(b)
	}

	writeLP([]byte("pqc-correlation-id"))
	writeLP([]byte(op))
	for _, c := range components {
		writeLP(c)
	}

	out := make([]byte, 8)
	_, _ = h.Read(out) // SHAKE256.Read never fails
	return hex.EncodeToString(out)
}
