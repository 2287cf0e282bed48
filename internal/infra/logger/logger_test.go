package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesToWorkspaceLog(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := IsReady(); err != nil {
		t.Fatalf("IsReady: %v", err)
	}

	want := filepath.Join(root, ".yaaade", "logs", "yaaade.log")
	if Path() != want {
		t.Fatalf("path = %q, want %q", Path(), want)
	}

	Component("fixture").Info("fixture.simulation.start", "simulator", "ngspice")
	L().Debug("hidden at info level")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if IsReady() == nil {
		t.Fatalf("logger should be reset after cleanup")
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, `"msg":"fixture.simulation.start"`) || !strings.Contains(out, `"component":"fixture"`) {
		t.Fatalf("log = %s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug record written at info level")
	}
}

func TestSetup_StderrMirrorsWarnings(t *testing.T) {
	var stderr bytes.Buffer
	cleanup, err := Setup(Config{Root: t.TempDir(), Debug: true, Stderr: &stderr})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer cleanup()

	L().Info("quiet")
	L().Warn("fixture.simulation.missing", "fixture", "inv")

	got := stderr.String()
	if strings.Contains(got, "quiet") {
		t.Fatalf("info leaked to stderr: %q", got)
	}
	if !strings.Contains(got, "fixture.simulation.missing") || !strings.Contains(got, "fixture=inv") {
		t.Fatalf("stderr = %q", got)
	}
	if strings.Contains(got, "time=") {
		t.Fatalf("stderr lines should not carry timestamps: %q", got)
	}
}

func TestSetup_UnwritableRoot(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, ".yaaade")
	if err := os.WriteFile(blocker, []byte("file, not dir"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Setup(Config{Root: root}); err == nil {
		t.Fatalf("expected error")
	}
	if IsReady() == nil {
		t.Fatalf("logger must stay discarding after a failed setup")
	}
}
