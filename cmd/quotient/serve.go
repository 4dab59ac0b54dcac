package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aretw0/quotient/internal/cli"
	"github.com/aretw0/quotient/internal/presentation/tui"
	httpAdapter "github.com/aretw0/quotient/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Starts the quotient engine in server mode, exposing a JSON API over HTTP.
Conversions are kept in memory, or in Redis when redis.addr is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		engine, err := cli.NewEngine(cli.EngineOptions{Config: cfg, Logger: logger, Registry: reg})
		if err != nil {
			return err
		}
		defer func() {
			if err := engine.Close(); err != nil {
				logger.Error("Failed to close engine", "err", err)
			}
		}()

		handler := httpAdapter.NewHandler(engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithCORSOrigin(cfg.HTTP.CORSOrigin),
			httpAdapter.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
			httpAdapter.WithStaticDir(cfg.HTTP.StaticDir),
			httpAdapter.WithMetrics(reg),
		)

		srv := &http.Server{
			Addr:    cfg.HTTP.Addr,
			Handler: handler,
		}

		tui.PrintBanner(os.Stderr)

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting quotient server", "addr", srv.Addr, "redis", cfg.Redis.Enabled())
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", cfg.HTTP.ShutdownTimeout, "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Quotient server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides http.addr)")
}
