// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Setup points logrus at the log file at path, creating parent directories.
// The terminal belongs to the drill UI, so stderr is used only when the file
// cannot be opened. The returned function closes the file.
func Setup(path string, verbose bool) (func(), error) {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	file, err := openLogFile(path)
	if err != nil {
		logrus.SetOutput(os.Stderr)
		return func() {}, err
	}
	logrus.SetOutput(file)
	return func() {
		logrus.SetOutput(io.Discard)
		if cerr := file.Close(); cerr != nil {
			// Best-effort close at exit.
			_ = cerr
		}
	}, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
