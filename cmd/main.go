package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"lotdesk/internal/config"
	"lotdesk/internal/domain/service/desk"
	"lotdesk/internal/infrastructure/supplier"
	"lotdesk/internal/notifier"
	"lotdesk/internal/server"
	"lotdesk/internal/worker"
	"lotdesk/pkg/application/modules"
	"lotdesk/pkg/contextx"
	"lotdesk/pkg/httpx"
	"lotdesk/pkg/logx"
	"lotdesk/pkg/middlewarex"
)

const httpServerReadHeaderTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx, log); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	toasts := notifier.NewToastQueue(cfg.Engine.ToastTTL)

	supplierHTTPClient := &http.Client{
		Timeout: cfg.Supplier.RequestTimeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
		),
	}
	supplierClient := supplier.NewClient(cfg.Supplier.BaseURL, supplierHTTPClient)

	deskService := desk.New(supplierClient, toasts)
	poller := worker.NewPoller(supplierClient, deskService)

	defer func() {
		if poller.Running() {
			_ = poller.Stop() //nolint:errcheck
		}
	}()

	srv := server.NewServer(
		server.NewSessionServer(ctx, poller),
		server.NewLotsServer(deskService, poller),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Operator,
		middlewarex.Recovery,
		middlewarex.RequestLogging(cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(cfg.HTTP.LogFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
	}.Run(ctx, g)

	log.Info("lot desk started", slog.String("address", cfg.HTTP.ListenAddress))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
