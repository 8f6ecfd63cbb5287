package config

import (
	"fmt"
	"io"
	"os"
)

// Replaced in tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf writes a formatted line to stderr and exits with status 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}

// ExitOnError exits through Exitf when err is non-nil, prefixing the message
// with the command name.
func ExitOnError(command string, err error) {
	if err == nil {
		return
	}
	Exitf("%s: %v", command, err)
}
