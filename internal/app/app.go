// Package app wires configuration, storage and services into a server.
package app

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/atlekbai/function_registry/internal/config"
	"github.com/atlekbai/function_registry/internal/db"
	"github.com/atlekbai/function_registry/internal/function/builtin"
	"github.com/atlekbai/function_registry/internal/handler"
	"github.com/atlekbai/function_registry/internal/logger"
	"github.com/atlekbai/function_registry/internal/middleware"
	"github.com/atlekbai/function_registry/internal/schema"
	"github.com/atlekbai/function_registry/internal/server"
	"github.com/atlekbai/function_registry/internal/service"
)

// ConfigureLogging applies the configured level and format to the global logger.
func ConfigureLogging(cfg *config.Config) error {
	if cfg.LogFormat == "json" {
		logger.UseJSONLogging()
	} else {
		logger.CliLogger()
	}
	return logger.Set(cfg.LogLevel)
}

// Serve runs the function service until ctx is done. Without a database
// URL the server still analyzes and translates, but Evaluate is unavailable
// and column references are not checked.
func Serve(ctx context.Context, cfg *config.Config) error {
	sess, err := cfg.Session()
	if err != nil {
		return err
	}
	registry, err := builtin.Registry()
	if err != nil {
		return errors.Wrap(err, "build function registry")
	}
	log.Info().Int("functions", registry.Len()).Msg("function registry built")

	var (
		catalog   *schema.Cache
		evaluator *db.Evaluator
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "failed to connect to database")
		}
		defer pool.Close()

		catalog = schema.NewCache()
		if err := catalog.Load(ctx, pool); err != nil {
			return errors.Wrap(err, "failed to load schema cache")
		}
		log.Info().Int("tables", catalog.TableCount()).Msg("schema cache loaded")
		evaluator = db.NewEvaluator(pool, cfg.PageTimeout, cfg.PageSize)
	} else {
		log.Warn().Msg("no database configured; evaluation disabled")
	}

	interceptors := []connect.Interceptor{
		server.ValidationInterceptor(),
	}
	services := []server.ConnectService{
		service.NewFunctionService(registry, sess, catalog, evaluator),
	}
	mux := server.Mux(services, interceptors...)
	handler.New(registry, catalog).Register(mux)

	h := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging,
		middleware.Recovery,
		middleware.Timeout(cfg.RequestTimeout),
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.Run(ctx, srv)
}
