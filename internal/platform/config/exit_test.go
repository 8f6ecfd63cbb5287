package config

import (
	"bytes"
	"errors"
	"testing"
)

// captureExit swaps the process hooks; callers must not run in parallel.
func captureExit(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	prevStderr, prevExit := stderr, exit
	t.Cleanup(func() {
		stderr, exit = prevStderr, prevExit
	})
	var out bytes.Buffer
	code := -1
	stderr = &out
	exit = func(c int) { code = c }
	return &out, &code
}

func TestExitfWritesLineAndExitsWithOne(t *testing.T) {
	out, code := captureExit(t)

	Exitf("fatal: %s", "store unavailable")

	if *code != 1 {
		t.Fatalf("exit code = %d, want 1", *code)
	}
	if got := out.String(); got != "fatal: store unavailable\n" {
		t.Fatalf("stderr = %q, want %q", got, "fatal: store unavailable\n")
	}
}

func TestExitOnError(t *testing.T) {
	out, code := captureExit(t)

	ExitOnError("inpactctl", nil)
	if *code != -1 || out.Len() != 0 {
		t.Fatalf("nil error exited: code=%d stderr=%q", *code, out.String())
	}

	ExitOnError("inpactctl", errors.New("unknown store driver \"mysql\""))
	if *code != 1 {
		t.Fatalf("exit code = %d, want 1", *code)
	}
	if got := out.String(); got != "inpactctl: unknown store driver \"mysql\"\n" {
		t.Fatalf("stderr = %q", got)
	}
}
