// Package main runs the inpactctl operator CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/inpact/internal/cmd/inpactctl"
	"github.com/louisbranch/inpact/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := inpactctl.Execute(ctx, os.Args[1:], os.Stdout)
	stop()
	config.ExitOnError("inpactctl", err)
}
