package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "valvedrill.log")
	closeLog, err := Setup(path, true)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Fatalf("verbose should enable debug level")
	}
	logrus.WithField("pitch", 41).Debug("round started")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "round started") || !strings.Contains(string(data), "pitch=41") {
		t.Fatalf("unexpected log contents %q", data)
	}
}

func TestSetupFallsBackToStderr(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	closeLog, err := Setup(filepath.Join(blocker, "valvedrill.log"), false)
	defer closeLog()
	if err == nil {
		t.Fatalf("expected error when the parent is a file")
	}
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level")
	}
	logrus.SetOutput(os.Stderr)
}
