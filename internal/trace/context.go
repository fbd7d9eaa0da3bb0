package trace

import "context"

// ctxKey is the key type for storing the unit's Tracer in context.
type ctxKey struct{}

// FromContext extracts the Tracer that WithTracer attached to ctx. If none
// was attached, returns Nop so callers never need a nil check.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx so code that receives a context but no
// Tracer argument can reach one through FromContext.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext identifies the enclosing ScopeDriver or ScopePass span so a
// nested span (e.g. a re-check between tailcall and asynccps) can record
// the right ParentID without the caller threading a span ID by hand.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

type spanCtxKey struct{}

// CurrentSpan retrieves the enclosing span context from ctx.
// Returns the zero SpanContext (parent ID 0) if none was attached.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// WithSpanContext attaches sc to ctx for passes nested inside it to pick up.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}
