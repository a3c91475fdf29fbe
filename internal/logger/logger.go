// Package logger configures the application-wide zerolog logger with
// optional file rotation.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level      string // trace, debug, info, warn, error, fatal
	Format     string // "console" or "json"
	Path       string // directory for log files; empty disables file output
	MaxSizeMB  int    // rotation threshold (default: 10)
	MaxBackups int    // rotated files to keep (default: 5)
	MaxAgeDays int    // days to keep rotated files (default: 30)
	Compress   bool   // gzip rotated files
}

// Logger wraps zerolog together with the file rotator, if one is open.
type Logger struct {
	zerolog.Logger
	rotator *lumberjack.Logger
}

// New builds a logger writing to stdout and, when cfg.Path is set, to a
// size-rotated file in that directory.
func New(cfg Config) *Logger {
	writers := []io.Writer{consoleWriter(cfg.Format)}

	rotator := newRotator(cfg)
	if rotator != nil {
		writers = append(writers, rotator)
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger, rotator: rotator}
}

// Close flushes and closes the log file if one is open.
func (l *Logger) Close() error {
	if l.rotator == nil {
		return nil
	}
	return l.rotator.Close()
}

// Component returns a child logger tagged with a component field.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.Logger.With().Str("component", name).Logger()
}

func consoleWriter(format string) io.Writer {
	if format == "json" {
		return os.Stdout
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
}

// newRotator returns nil when file logging is disabled or the log
// directory cannot be created; console output still works in that case.
func newRotator(cfg Config) *lumberjack.Logger {
	if cfg.Path == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil
	}

	r := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Path, "movierec.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	if r.MaxSize <= 0 {
		r.MaxSize = 10
	}
	if r.MaxBackups <= 0 {
		r.MaxBackups = 5
	}
	if r.MaxAge <= 0 {
		r.MaxAge = 30
	}
	return r
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
