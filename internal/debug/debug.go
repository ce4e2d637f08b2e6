// Package debug holds the opt-in trace log of the command line tools. The
// log lives at ~/.menutree/debug.log and is truncated whenever it is enabled.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogFileName = "debug.log"
	LogDirName  = ".menutree"
)

var (
	mu      sync.RWMutex
	active  *zap.Logger
	logFile *os.File

	// logPath is swapped out by tests.
	logPath = homeLogPath
)

// Init enables the trace log when enable is set and disables it otherwise.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if !enable {
		return nil
	}

	path, err := logPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}
	//nolint:gosec // G301: user config directory
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // G304: path derives from the home directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	logFile = f
	active = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), zapcore.DebugLevel))
	active.Info("menutree debug log started", zap.Time("at", time.Now()), zap.Int("pid", os.Getpid()))
	return nil
}

// Close flushes and closes the log. Calling it when disabled is a no-op.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if active != nil {
		_ = active.Sync()
		active = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Logf writes a printf-style line when the log is enabled.
func Logf(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if active != nil {
		active.Sugar().Debugf(format, v...)
	}
}

// Logger returns the structured trace logger, or a no-op logger when the log
// is disabled. It never returns nil.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if active == nil {
		return zap.NewNop()
	}
	return active
}

// Enabled reports whether the log is currently open.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return active != nil
}

// GetLogPath returns where the log is written.
func GetLogPath() (string, error) {
	return logPath()
}

func homeLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}
