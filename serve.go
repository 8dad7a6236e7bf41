package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AnTengye/saasledger/config"
	"github.com/AnTengye/saasledger/handler"
	"github.com/AnTengye/saasledger/middleware"
	"github.com/AnTengye/saasledger/pkg/ledger"
	"github.com/AnTengye/saasledger/pkg/logger"
	"github.com/AnTengye/saasledger/pkg/metrics"
	"github.com/AnTengye/saasledger/service"
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.Info("configuration loaded successfully", "path", configPath)

	catalog, err := service.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		slog.Error("failed to load app catalog", "error", err)
		return err
	}
	slog.Info("app catalog loaded", "apps", len(catalog.All()))

	router, err := newRouter(cfg, catalog, service.NewRecordStore(&cfg.Store), metrics.New())
	if err != nil {
		slog.Error("invalid ledger configuration", "error", err)
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		slog.Error("failed to start server", "error", err)
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}

// newRouter wires middleware and routes. It rejects a default sort that is
// not a known policy.
func newRouter(cfg *config.Config, catalog *service.Catalog, store *service.RecordStore, m *metrics.Metrics) (*gin.Engine, error) {
	defaultSort, ok := ledger.ParsePolicy(cfg.Ledger.DefaultSort)
	if !ok {
		return nil, fmt.Errorf("unknown default sort %q", cfg.Ledger.DefaultSort)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS())
	router.Use(middleware.NoCache())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	apps := handler.NewAppHandler(catalog)
	selections := handler.NewSelectionHandler(store, catalog, m)
	contracts := handler.NewContractHandler(store)
	records := handler.NewRecordHandler(store, m)
	ledgerView := handler.NewLedgerHandler(store, m, defaultSort)

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	api := router.Group("/api", middleware.Company(), middleware.RateLimit(cfg.RateLimit.Requests, window))
	{
		api.GET("/apps", apps.List)
		api.POST("/apps/parse", apps.Parse)

		api.GET("/selections", selections.List)
		api.POST("/selections", selections.Select)
		api.DELETE("/selections/:appId", selections.Remove)

		api.PUT("/contracts/:appId", contracts.Update)
		api.POST("/contracts/:appId/services", contracts.AddService)
		api.PUT("/contracts/:appId/services/:serviceId", contracts.UpdateService)
		api.DELETE("/contracts/:appId/services/:serviceId", contracts.RemoveService)

		api.GET("/records", records.Export)
		api.POST("/records/import", records.Import)

		api.GET("/ledger", ledgerView.Get)
		api.GET("/ledger/policies", ledgerView.Policies)
	}

	return router, nil
}
