package procexec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestOSRunner_CapturesOutputAndEnv(t *testing.T) {
	sh := requireShell(t)
	var out bytes.Buffer

	err := OSRunner{}.Run(context.Background(), Command{
		Name:   sh,
		Args:   []string{"-c", "printf '%s' \"$YAAADE_PROBE\"; pwd"},
		Dir:    t.TempDir(),
		Env:    []string{"YAAADE_PROBE=hello"},
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "hello") {
		t.Fatalf("expected env var in output, got %q", out.String())
	}
}

func TestOSRunner_ExitError(t *testing.T) {
	sh := requireShell(t)

	err := OSRunner{}.Run(context.Background(), Command{Name: sh, Args: []string{"-c", "exit 3"}})
	code, ok := ExitCode(err)
	if !ok || code != 3 {
		t.Fatalf("expected exit code 3, got %d (ok=%v, err=%v)", code, ok, err)
	}
	var ee *ExitError
	if !errors.As(err, &ee) || !strings.Contains(ee.Error(), "exit status 3") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestOSRunner_MissingBinary(t *testing.T) {
	err := OSRunner{}.Run(context.Background(), Command{Name: "yaaade-definitely-missing-binary"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := ExitCode(err); ok {
		t.Fatalf("did not expect an exit error for a missing binary")
	}
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "ngspice", Args: []string{"-b", "netlist.spice"}}
	if c.String() != "ngspice -b netlist.spice" {
		t.Fatalf("unexpected string %q", c.String())
	}
}
