package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dstarikov/shipshape/internal/chat"
	"github.com/dstarikov/shipshape/internal/server"
)

var (
	serveAddr   string
	serveStrict bool
	fetchPages  bool
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat API server",
	Long: `Start the HTTP API. Endpoints:

  POST /api/chat  - one conversational turn
  GET  /healthz   - liveness check

The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  shipshape serve
  shipshape serve --addr :9090 --strict
  shipshape serve --fetch-pages`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveStrict, "strict", false, "deny inputs with warning-grade findings")
	serveCmd.Flags().BoolVar(&fetchPages, "fetch-pages", false, "fetch full page text instead of relying on snippets")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveStrict {
		cfg.Security.StrictMode = true
	}
	if fetchPages {
		cfg.Search.FetchPages = true
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := chat.NewPipeline(cfg, logger)
	srv := server.New(cfg.Server, pipeline, logger)

	return srv.Run(ctx)
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
