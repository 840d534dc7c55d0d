// Package logging provides the structured logger used by the CLI.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"

	"github.com/ochairo/packdesc/internal/domain/interfaces"
)

// EnvLogLevel overrides the default log level when set
const EnvLogLevel = "PACKDESC_LOG_LEVEL"

// Config controls logger construction
type Config struct {
	Level  string    // debug, info, warn, error
	JSON   bool      // JSON lines instead of console output
	Writer io.Writer // Defaults to stderr so stdout stays free for descriptors
}

// Logger implements interfaces.Logger on top of phuslu/log
type Logger struct {
	logger log.Logger
}

// New creates a logger from cfg
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	var writer log.Writer
	if cfg.JSON {
		writer = &log.IOWriter{Writer: w}
	} else {
		writer = &log.ConsoleWriter{Writer: w, ColorOutput: false, QuoteString: true}
	}

	return &Logger{
		logger: log.Logger{
			Level:  ParseLevel(cfg.Level),
			Writer: writer,
		},
	}
}

// LevelFromEnv returns the flag value unless the environment overrides it
func LevelFromEnv(flagValue string) string {
	if v := os.Getenv(EnvLogLevel); v != "" {
		return v
	}
	return flagValue
}

// ParseLevel maps a level name to a phuslu level, defaulting to info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	withFields(l.logger.Debug(), fields).Msg(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	withFields(l.logger.Info(), fields).Msg(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	withFields(l.logger.Warn(), fields).Msg(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	withFields(l.logger.Error(), fields).Msg(msg)
}

// withFields is nil-safe: phuslu returns a nil entry for disabled levels
func withFields(e *log.Entry, fields []interfaces.Field) *log.Entry {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Any(f.Key, v)
		}
	}
	return e
}
