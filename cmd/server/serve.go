package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// serveWithShutdown runs the server until ctx is cancelled, then gives
// in-flight requests up to grace to finish.
func serveWithShutdown(ctx context.Context, addr string, handler http.Handler, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
			return
		}
		close(serveErrCh)
	}()

	select {
	case err := <-serveErrCh:
		if err != nil {
			return fmt.Errorf("server %v: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Str("address", addr).Dur("grace", grace).Msg("server being shut down")
	}

	// the signal context is already done
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown of %v failed after %s: %w", addr, grace, err)
	}
	return <-serveErrCh
}
