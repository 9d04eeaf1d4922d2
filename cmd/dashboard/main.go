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

	"discount-dashboard/internal/api"
	"discount-dashboard/internal/commercetools"
	"discount-dashboard/internal/config"
	"discount-dashboard/internal/service"
	"discount-dashboard/internal/warehouse"
	"discount-dashboard/pkg/db"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to resolve analytics timezone", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.WarehouseURL)
	if err != nil {
		slog.Error("failed to connect to warehouse", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if cfg.WarehouseMigrate {
		if err := warehouse.Migrate(cfg.WarehouseURL); err != nil {
			slog.Error("failed to migrate warehouse", "error", err)
			os.Exit(1)
		}
	}

	store, err := warehouse.NewStore(conn, cfg.WarehouseTable, loc)
	if err != nil {
		slog.Error("failed to build warehouse store", "error", err)
		os.Exit(1)
	}

	client := commercetools.New(commercetools.Config{
		ProjectKey:   cfg.CTPProjectKey,
		AuthURL:      cfg.CTPAuthURL,
		APIURL:       cfg.CTPAPIURL,
		ClientID:     cfg.CTPClientID,
		ClientSecret: cfg.CTPClientSecret,
		Scopes:       cfg.Scopes(),
		Timeout:      cfg.UpstreamTimeout,
	})

	dashboard := service.New(client, store, loc, logger, cfg.DiscountCacheTTL)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(dashboard),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
	}()

	slog.Info("starting dashboard service", "addr", srv.Addr, "timezone", cfg.Timezone)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("listen", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
