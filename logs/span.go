package logs

import (
	"context"
	"crypto/rand"
	"fmt"
)

// Span identifies one unit of work, such as one cell execution.
type Span string

type spanKey struct{}

var SpanKey spanKey

func SpanFrom(ctx context.Context) Span {
	if v := ctx.Value(SpanKey); v != nil {
		return v.(Span)
	}
	return ""
}

// NewSpan opens a span. The span found in ctx becomes its parent.
type NewSpan func(ctx context.Context, name string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, name string) (context.Context, Span) {
		parent := SpanFrom(ctx)
		span := Span(rand.Text()[:12])
		if name != "" {
			span = Span(name) + ":" + span
		}
		ctx = context.WithValue(ctx, SpanKey, span)

		var args []any
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "span opened", args...)

		return ctx, span
	}
}

// WrapSpan annotates err with the span in ctx.
func WrapSpan(ctx context.Context, err error) error {
	span := SpanFrom(ctx)
	if err == nil || span == "" {
		return err
	}
	return fmt.Errorf("%w (span %s)", err, span)
}
