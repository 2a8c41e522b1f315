package server

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ConnectService is implemented by each service to register its connect handler.
type ConnectService interface {
	RegisterHandler(interceptors ...connect.Interceptor) (string, http.Handler)
}

// Mux mounts every service on a new ServeMux.
func Mux(services []ConnectService, interceptors ...connect.Interceptor) *http.ServeMux {
	mux := http.NewServeMux()
	for _, svc := range services {
		path, handler := svc.RegisterHandler(interceptors...)
		mux.Handle(path, handler)
	}
	return mux
}

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Run serves srv until ctx is done, then shuts it down gracefully.
func Run(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server error")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down...")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
