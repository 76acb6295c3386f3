// Package server runs the shopdesk HTTP API next to the gRPC health
// service and shuts both down when the context ends.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/internal/kernel"
	"github.com/shashiranjanraj/shopdesk/pkg/grpc"
	"github.com/shashiranjanraj/shopdesk/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// Config holds listen ports. An empty GRPCPort disables the gRPC server.
type Config struct {
	HTTPPort string
	GRPCPort string
}

// Run serves k until ctx is cancelled or the HTTP listener fails, then
// drains in-flight requests and shuts the kernel down.
func Run(ctx context.Context, k *kernel.Kernel, cfg Config) error {
	lis, err := net.Listen("tcp", ":"+cfg.HTTPPort)
	if err != nil {
		return errors.Wrap(err, "server: listen")
	}
	return Serve(ctx, k, lis, cfg.GRPCPort)
}

// Serve is Run over an existing listener.
func Serve(ctx context.Context, k *kernel.Kernel, lis net.Listener, grpcPort string) error {
	srv := &http.Server{
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	var health *grpc.Server
	if grpcPort != "" {
		health = grpc.New(k.Store.Ping)
		if _, err := health.Listen(grpcPort); err != nil {
			_ = k.Shutdown(context.Background())
			return err
		}
		logger.Info("server: grpc health listening", "port", grpcPort)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: http listening", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("server: shutting down")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server: http shutdown", "error", err)
	}
	health.Stop()

	if err := k.Shutdown(shutdownCtx); err != nil {
		logger.Error("server: kernel shutdown", "error", err)
	}

	if serveErr != nil {
		return errors.Wrap(serveErr, "server: serve")
	}
	return nil
}
