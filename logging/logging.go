package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	logger    = slog.New(slog.NewTextHandler(io.Discard, nil))
	debugMode bool
)

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except log.Fatal/panic).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string, level slog.Level) (cleanup func(), err error) {
	if filename == "" {
		log.SetOutput(io.Discard)
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		debugMode = false
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	debugMode = level <= slog.LevelDebug

	tf, err := tea.LogToFile(filename, "tea")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bubbletea log: %w", err)
	}

	cleanup = func() {
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// ParseLevel converts a string level name to slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func IsDebugMode() bool { return debugMode }

func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

func Debugf(format string, args ...any) { logger.Debug(fmt.Sprintf(format, args...)) }

func Infof(format string, args ...any) { logger.Info(fmt.Sprintf(format, args...)) }

func Warnf(format string, args ...any) { logger.Warn(fmt.Sprintf(format, args...)) }

func Errorf(format string, args ...any) { logger.Error(fmt.Sprintf(format, args...)) }
