package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	networkdefinition "vault_reporter/internal/infrastructure/network/definition"
	"vault_reporter/internal/infrastructure/restapi"
	"vault_reporter/internal/infrastructure/tablerender"
	"vault_reporter/internal/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reports over HTTP",
	Long: `Starts an HTTP server exposing the reports:

  GET /api/v1/reports/balances/:address
  GET /api/v1/reports/deposit-options/:address
  GET /api/v1/reports/positions/:address
  GET /api/v1/reports/transactions/deposit/:address/:network/:vault?assetAddress=...&amount=...

Add ?format=json for headers/rows instead of a rendered table.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func serve(cmd *cobra.Command, args []string) error {
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := restapi.NewReportHandler(
		newVaultsClient(),
		tablerender.NewGridRenderer(),
		networkdefinition.NewNetworkDefinitionProvider(logger.NewSlogAdapter("component", "networks")),
		cfg.Workflow,
		logger.NewSlogAdapter("component", "restapi"),
	)
	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Server.Port),
		Handler:      restapi.SetupRouter(handler, zapLogger),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zapLogger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	zapLogger.Info("Server exiting")
	return nil
}
