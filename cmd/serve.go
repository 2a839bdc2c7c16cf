package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FrenchMajesty/ticket-triage/internal/logging"
	"github.com/FrenchMajesty/ticket-triage/internal/server"
	"github.com/FrenchMajesty/ticket-triage/internal/settings"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the triage engine over HTTP",
	Long: `Start an HTTP server exposing GET /health and POST /v1/analyze.

Remote analyses take the OpenAI key from the request's Authorization: Bearer header.
Saved settings only supply the default model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		retries, _ := cmd.Flags().GetInt("retries")

		if viper.GetString("log_level") != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := settings.Load(viper.GetViper())
		srv := server.New(server.Config{
			Addr:       addr,
			MaxRetries: retries,
			Logger:     logging.For(logging.ComponentServer),
		}, newAnalyzer(s))

		slog.Info("starting server", "addr", addr, "default_model", s.Model)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int("retries", 0, "retry transient AI failures this many times per request")
}
