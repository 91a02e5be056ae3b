package logs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func newTestScope(buf *bytes.Buffer) dscope.Scope {
	return dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	)
}

func TestSpans(t *testing.T) {
	buf := new(bytes.Buffer)
	newTestScope(buf).Call(func(
		newSpan NewSpan,
		logger Logger,
	) {
		ctx := context.Background()
		if span := SpanFrom(ctx); span != "" {
			t.Fatalf("got %q", span)
		}

		ctx1, span1 := newSpan(ctx, "cell0")
		if !strings.HasPrefix(string(span1), "cell0:") {
			t.Fatalf("got %q", span1)
		}
		if got := SpanFrom(ctx1); got != span1 {
			t.Fatalf("got %q, want %q", got, span1)
		}
		ctx2, span2 := newSpan(ctx1, "")
		if span2 == span1 || SpanFrom(ctx2) != span2 {
			t.Fatalf("got %q", span2)
		}

		buf.Reset()
		logger.InfoContext(ctx1, "first")
		logger.With("index", 1).InfoContext(ctx2, "second")
		logger.WithGroup("cell").InfoContext(ctx1, "third", "id", "x")
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("got %q", buf.String())
		}
		if !strings.Contains(lines[0], "logs.span="+string(span1)) {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "logs.span="+string(span2)) ||
			!strings.Contains(lines[1], "index=1") {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[2], string(span1)) {
			t.Fatalf("got %v", lines[2])
		}
	})
}

func TestWrapSpan(t *testing.T) {
	newTestScope(new(bytes.Buffer)).Call(func(
		newSpan NewSpan,
	) {
		errFoo := errors.New("foo")
		ctx := context.Background()
		if err := WrapSpan(ctx, errFoo); err != errFoo {
			t.Fatalf("got %v", err)
		}
		ctx, span := newSpan(ctx, "save")
		if WrapSpan(ctx, nil) != nil {
			t.Fatal()
		}
		err := WrapSpan(ctx, errFoo)
		if !errors.Is(err, errFoo) {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), string(span)) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestJournalKey(t *testing.T) {
	if got := toJournalKey("logs.span"); got != "LOGS_SPAN" {
		t.Fatalf("got %s", got)
	}
}
