package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/reusee/cellbook/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
	"golang.org/x/term"
)

var level = new(slog.LevelVar)

func init() {
	for _, l := range []slog.Level{
		slog.LevelDebug,
		slog.LevelInfo,
		slog.LevelWarn,
		slog.LevelError,
	} {
		name := strings.ToLower(l.String())
		cmds.Define("-log-"+name, cmds.Func(func() {
			level.Set(l)
		}).Desc("set log level to "+name))
	}
}

type Logger = *slog.Logger

// Writer receives terminal output.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}

// Logger writes to the terminal, and to the systemd journal when one is
// reachable. Under a systemd service stderr already goes to the journal,
// so the terminal handler is dropped.
func (Module) Logger(
	writer Writer,
) Logger {
	var handlers []slog.Handler
	if !underSystemd() {
		handlers = append(handlers, tint.NewHandler(
			writer,
			&tint.Options{
				Level:      level,
				TimeFormat: time.TimeOnly,
				NoColor:    !isTerminal(writer),
			},
		))
	}
	if journal, err := newJournalHandler(); err == nil {
		handlers = append(handlers, journal)
	}
	return slog.New(spanHandler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func newJournalHandler() (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
}

func underSystemd() bool {
	return os.Getenv("JOURNAL_STREAM") != "" && os.Getenv("INVOCATION_ID") != ""
}

// spanHandler records the span of the context as logs.span.
type spanHandler struct {
	slog.Handler
}

func (h spanHandler) Handle(ctx context.Context, record slog.Record) error {
	if span := SpanFrom(ctx); span != "" {
		record.AddAttrs(slog.String("logs.span", string(span)))
	}
	return h.Handler.Handle(ctx, record)
}

func (h spanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return spanHandler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

func (h spanHandler) WithGroup(name string) slog.Handler {
	return spanHandler{
		Handler: h.Handler.WithGroup(name),
	}
}

// toJournalKey maps a slog key to a journal field name, which allows
// only upper case letters, digits and underscores.
func toJournalKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		}
		return '_'
	}, key)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
