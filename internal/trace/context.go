package trace

import "context"

// ctxKey is the key type for storing Tracer in context.
type ctxKey struct{}

// FromContext extracts the Tracer from context.
// If not found, returns Nop tracer.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext holds current span info for propagation.
type SpanContext struct {
	SpanID uint64
	GID    uint64
	File   string // файл, к которому относятся вложенные span
}

type spanCtxKey struct{}

// CurrentSpan retrieves the active span context from context.
// Returns zero SpanContext if not found.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// WithSpanContext attaches span context.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// Start begins a span under the span carried by ctx and returns a context
// carrying the new span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	sc := CurrentSpan(ctx)
	return push(ctx, begin(FromContext(ctx), Event{Scope: scope, Name: name, ParentID: sc.SpanID, File: sc.File}))
}

// StartFile begins the span of one processed file. Rule spans started
// from the returned context are attributed to path.
func StartFile(ctx context.Context, path string) (context.Context, *Span) {
	sc := CurrentSpan(ctx)
	return push(ctx, begin(FromContext(ctx), Event{Scope: ScopeFile, Name: "file:" + path, ParentID: sc.SpanID, File: path}))
}

// BeginRule starts the span of one rule application inside the file span
// carried by ctx.
func BeginRule(ctx context.Context, rule string, pass int) *Span {
	sc := CurrentSpan(ctx)
	return begin(FromContext(ctx), Event{
		Scope:    ScopeRule,
		Name:     "rule:" + rule,
		ParentID: sc.SpanID,
		File:     sc.File,
		Rule:     rule,
		Pass:     pass,
	})
}

func push(ctx context.Context, span *Span) (context.Context, *Span) {
	if span.ID() == 0 {
		return ctx, span
	}
	return WithSpanContext(ctx, SpanContext{SpanID: span.ID(), GID: span.ev.GID, File: span.ev.File}), span
}
