package domain

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := os.ErrNotExist
	err := &OpError{
		Op:   "settings.load",
		Kind: KindNotFound,
		Path: "/tmp/global.yaml",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindNotFound {
		t.Fatalf("expected kind %s", KindNotFound)
	}
	if !strings.Contains(err.Error(), "path=/tmp/global.yaml") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestOpErrorMatchesSentinelOfKind(t *testing.T) {
	err := &OpError{Op: "fixture.power_domain", Kind: KindNotFound, Err: errors.New("vdd")}

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is(err, ErrNotFound)")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("did not expect invalid config match")
	}
}

func TestIsKindAndKindOf(t *testing.T) {
	err := &OpError{Op: "x", Kind: KindInvalidConfig}
	wrapped := errors.Join(errors.New("outer"), err)

	if !IsKind(wrapped, KindInvalidConfig) {
		t.Fatalf("expected IsKind to see through wrapping")
	}
	if got := KindOf(wrapped); got != KindInvalidConfig {
		t.Fatalf("expected invalid_config, got %s", got)
	}
	if got := KindOf(errors.New("plain")); got != KindExecution {
		t.Fatalf("expected execution for unclassified error, got %s", got)
	}
}

func TestNilOpError(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("unexpected nil message %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
