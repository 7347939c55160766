package monitoring

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger provides structured logging for the application server.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON or text logger at the given level and installs
// it as the slog default.
func NewLogger(level, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := &Logger{Logger: slog.New(handler)}
	slog.SetDefault(logger.Logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// SubmissionLogger logs the outcome of one application submission.
func (l *Logger) SubmissionLogger(email string, accepted bool, reason string, total float64) {
	if accepted {
		l.Info("Submission accepted", "email", email, "total_score", total)
		return
	}
	l.Warn("Submission rejected", "email", email, "reason", reason)
}
