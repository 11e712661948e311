package webview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/xaionaro-go/edgeviewer/logger"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/xcontext"
)

const shutdownTimeout = 2 * time.Second

// ListenAndServe serves handler on addr until the context is done, then
// lets in-flight requests finish.
func ListenAndServe(
	ctx context.Context,
	addr string,
	handler http.Handler,
) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("unable to listen on '%s': %w", addr, err)
	}
	return Serve(ctx, listener, handler)
}

func Serve(
	ctx context.Context,
	listener net.Listener,
	handler http.Handler,
) error {
	logger.Infof(ctx, "serving the preview on http://%s/", listener.Addr())
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return xcontext.DetachDone(ctx) },
	}

	observability.Go(ctx, func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancelFn := context.WithTimeout(xcontext.DetachDone(ctx), shutdownTimeout)
		defer cancelFn()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf(ctx, "unable to shut down the preview server gracefully: %v", err)
		}
	})

	err := srv.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return ctx.Err()
	}
	return err
}
