package obslog

import (
	"context"
	"sync"
)

// Tracer provides span-based tracing over Encrypt/Decrypt calls. The
// interface lets a caller plug in OpenTelemetry (otel build tag) or leave
// tracing a no-op.
type Tracer interface {
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder)
}

// SpanEnder ends a span. Call with a non-nil error to mark the span failed.
type SpanEnder func(err error)

// SpanOption configures span behavior.
type SpanOption func(*spanConfig)

type spanConfig struct {
	attributes map[string]interface{}
}

// WithAttributes sets span attributes.
func WithAttributes(attrs map[string]interface{}) SpanOption {
	return func(c *spanConfig) { c.attributes = attrs }
}

// NoOpTracer discards every span. It is the default.
type NoOpTracer struct{}

func (NoOpTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return ctx, func(err error) {}
}

var (
	globalTracer   Tracer = NoOpTracer{}
	globalTracerMu sync.RWMutex
)

// SetTracer sets the global tracer.
func SetTracer(t Tracer) {
	globalTracerMu.Lock()
	defer globalTracerMu.Unlock()
	globalTracer = t
}

// GetTracer returns the global tracer.
func GetTracer() Tracer {
	globalTracerMu.RLock()
	defer globalTracerMu.RUnlock()
	return globalTracer
}

// StartSpan starts a span using the global tracer.
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return GetTracer().StartSpan(ctx, name, opts...)
}

// Standard span names for container operations.
const (
	SpanEncrypt     = "pqc.encrypt"
	SpanDecrypt     = "pqc.decrypt"
	SpanKeygenKEM   = "pqc.keygen.kem"
	SpanKeygenDSS   = "pqc.keygen.dss"
	SpanEncapsulate = "pqc.encapsulate"
	SpanDecapsulate = "pqc.decapsulate"
)
