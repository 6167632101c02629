// Package logger provides the process-wide structured logger: a
// zerolog.Logger writing JSON to a log file and human-readable lines to
// the console, mirroring every record that meets the configured level.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	fileHandle *os.File
	log        zerolog.Logger
	once       sync.Once
	mu         sync.Mutex
)

// ParseLevel maps a config/CLI level string to a zerolog.Level, defaulting
// to Info for an unrecognized or empty value.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Init opens logDir/logFileName, appending, and wires the global logger
// to write structured records there plus human-readable lines to stdout.
// It is safe to call more than once; only the first call takes effect.
func Init(logDir string, level zerolog.Level, logFileName string) error {
	var initErr error
	once.Do(func() {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			initErr = fmt.Errorf("create log directory: %w", err)
			return
		}
		if logFileName == "" {
			logFileName = "redislite.log"
		}
		path := filepath.Join(logDir, logFileName)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			initErr = fmt.Errorf("open log file: %w", err)
			return
		}
		fileHandle = f

		console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		writer := zerolog.MultiLevelWriter(f, console)
		log = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	})
	return initErr
}

// Close flushes and closes the backing log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fileHandle != nil {
		return fileHandle.Close()
	}
	return nil
}

func ensure() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if fileHandle == nil {
		// Init was never called (e.g. in a unit test); fall back to stderr.
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return log
}

func Debug(format string, args ...any) { ensure().Debug().Msgf(format, args...) }
func Info(format string, args ...any)  { ensure().Info().Msgf(format, args...) }
func Warn(format string, args ...any)  { ensure().Warn().Msgf(format, args...) }
func Error(format string, args ...any) { ensure().Error().Msgf(format, args...) }

// Console prints an info-level status line, for startup/shutdown
// narration the operator should see.
func Console(format string, args ...any) { ensure().Info().Msgf(format, args...) }
