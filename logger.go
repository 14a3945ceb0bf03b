package cronwheel

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLogger is used by the Scheduler facade when no Logger option is
// given.
var DefaultLogger = PrintfLogger(log.New(os.Stdout, "cronwheel: ", log.LstdFlags))

// DiscardLogger discards all log messages. It is the HashedWheelTimer's
// default, since the tick loop runs far more often than an embedder
// typically wants logged.
var DiscardLogger = PrintfLogger(log.New(io.Discard, "", 0))

// Logger is the logging seam used throughout this package, so any backend
// can be plugged in. A subset of the github.com/go-logr/logr interface,
// carried from the teacher library's logger.go unchanged.
type Logger interface {
	// Info logs routine operational messages.
	Info(msg string, keysAndValues ...any)
	// Error logs an error condition.
	Error(err error, msg string, keysAndValues ...any)
}

// PrintfLogger wraps a Printf-based logger into a Logger that logs errors
// only.
func PrintfLogger(l interface{ Printf(string, ...any) }) Logger {
	return printfLogger{l, false}
}

// VerbosePrintfLogger wraps a Printf-based logger into a Logger that logs
// everything, including Info messages.
func VerbosePrintfLogger(l interface{ Printf(string, ...any) }) Logger {
	return printfLogger{l, true}
}

type printfLogger struct {
	logger  interface{ Printf(string, ...any) }
	logInfo bool
}

func (pl printfLogger) Info(msg string, keysAndValues ...any) {
	if pl.logInfo {
		keysAndValues = formatTimes(keysAndValues)
		pl.logger.Printf(formatString(len(keysAndValues)), append([]any{msg}, keysAndValues...)...)
	}
}

func (pl printfLogger) Error(err error, msg string, keysAndValues ...any) {
	keysAndValues = formatTimes(keysAndValues)
	pl.logger.Printf(formatString(len(keysAndValues)+2), append([]any{msg, "error", err}, keysAndValues...)...)
}

func formatString(numKeysAndValues int) string {
	var sb strings.Builder
	sb.WriteString("%s")
	if numKeysAndValues > 0 {
		sb.WriteString(", ")
	}
	for i := 0; i < numKeysAndValues/2; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("%v=%v")
	}
	return sb.String()
}

func formatTimes(keysAndValues []any) []any {
	out := make([]any, 0, len(keysAndValues))
	for _, arg := range keysAndValues {
		if t, ok := arg.(time.Time); ok {
			arg = t.Format(time.RFC3339)
		}
		out = append(out, arg)
	}
	return out
}

// SlogLogger adapts log/slog to the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a Logger backed by l. If l is nil, slog.Default()
// is used.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

func (s *SlogLogger) Info(msg string, keysAndValues ...any) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *SlogLogger) Error(err error, msg string, keysAndValues ...any) {
	s.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}

// ZerologLogger adapts github.com/rs/zerolog to the Logger interface,
// grounded in inipew-pewbot's pkg/logx (zerolog.Event field mutators,
// Level aliasing). Key/value pairs are applied to the event in order via
// Interface, the same "later field wins" semantics logx.Field documents.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a Logger backed by l.
func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: l}
}

func (z *ZerologLogger) Info(msg string, keysAndValues ...any) {
	z.event(z.logger.Info(), keysAndValues).Msg(msg)
}

func (z *ZerologLogger) Error(err error, msg string, keysAndValues ...any) {
	z.event(z.logger.Error().Err(err), keysAndValues).Msg(msg)
}

func (z *ZerologLogger) event(e *zerolog.Event, keysAndValues []any) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keysAndValues[i+1])
	}
	return e
}
