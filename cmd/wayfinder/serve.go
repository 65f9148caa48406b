package main

import (
	"os/signal"
	"syscall"

	"github.com/aretw0/wayfinder"
	httpAdapter "github.com/aretw0/wayfinder/pkg/adapters/http"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP lookup server",
	Long: `Serves the step lookup as a read-only JSON API. The OpenAPI description is
available at /openapi.yaml and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			settings.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)
		hooks := observability.Compose(metrics.Hooks(), observability.LogHooks(logger))

		eng, err := openEngine(ctx, wayfinder.WithHooks(hooks))
		if err != nil {
			return err
		}

		handler := httpAdapter.NewHandler(eng,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithMaxQuerySize(settings.Query.MaxSize),
		)

		logger.Info("starting wayfinder server", "addr", settings.Server.Addr, "flow", eng.Name)
		if err := httpAdapter.ListenAndServe(ctx, settings.Server.Addr, handler); err != nil {
			return err
		}
		logger.Info("wayfinder server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default server.addr)")
}
