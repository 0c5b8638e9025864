package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arjunmahishi/fimgen/cmd"
	"github.com/arjunmahishi/fimgen/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewApp().Run(ctx, os.Args); err != nil {
		output.WriteError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
