package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dwikikusuma/shop-backoffice/pkg/config"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"github.com/dwikikusuma/shop-backoffice/pkg/shutdown"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/connectivity"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "gateway", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	upstream, err := rpc.Dial(cfg.GRPCAddr)
	if err != nil {
		log.Error("grpc dial failed", slog.Any("err", err), slog.String("addr", cfg.GRPCAddr))
		os.Exit(1)
	}
	defer upstream.Close()
	upstream.Connect()

	ready := func() bool {
		switch upstream.GetState() {
		case connectivity.TransientFailure, connectivity.Shutdown:
			return false
		default:
			return true
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           newGateway(upstream, log, ready).routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", srv.Addr), slog.String("upstream", cfg.GRPCAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		return srv.Shutdown(stopCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("gateway stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}
