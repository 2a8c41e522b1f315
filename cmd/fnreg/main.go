package main

import (
	"context"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/atlekbai/function_registry/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cli.Execute(ctx)
}
