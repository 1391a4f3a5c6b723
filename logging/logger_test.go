package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitLoggerUsesConfiguredLogDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("failed to enter temp directory: %v", err)
	}
	defer os.Chdir(wd)

	logPath := filepath.Join(tmp, "var", "log", "app.log")
	t.Setenv("LOG_FILE", logPath)

	InitLogger()

	if _, err := os.Stat(filepath.Dir(logPath)); err != nil {
		t.Fatalf("configured log directory was not created: %v", err)
	}
	if _, err := os.Stat("logs"); !os.IsNotExist(err) {
		t.Fatal("default logs directory should not be created when LOG_FILE points elsewhere")
	}
}

func TestInitLoggerDefaultsToLogsDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("failed to enter temp directory: %v", err)
	}
	defer os.Chdir(wd)

	t.Setenv("LOG_FILE", "")

	InitLogger()

	if _, err := os.Stat("logs"); err != nil {
		t.Fatalf("default log directory was not created: %v", err)
	}
}
