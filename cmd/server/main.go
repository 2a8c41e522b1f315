package main

import (
	"context"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"

	"github.com/atlekbai/function_registry/internal/app"
	"github.com/atlekbai/function_registry/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := app.ConfigureLogging(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	if err := app.Serve(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
