// Package logging builds the zap loggers used by the server and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	appErrors "menutree/internal/errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ParseLevel converts a config value such as "debug" or "WARN" to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zapcore.InfoLevel, appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("invalid log level %q", s), err)
	}
	return lvl, nil
}

// New returns a logger writing to stderr.
func New(level, format string) (*zap.Logger, error) {
	return NewWithWriter(level, format, os.Stderr)
}

// NewWithWriter returns a logger writing to w. The json format uses the
// production encoder; console uses the development encoder.
func NewWithWriter(level, format string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "", FormatJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	case FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("invalid log format %q (want json or console)", format), nil)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
