package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docuforge/docuforge/internal/api"
	"github.com/docuforge/docuforge/internal/logging"
	"github.com/docuforge/docuforge/internal/ws"
)

var servePort int
var serveDevMode bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local generation API",
	Long: `Start a local HTTP API for generating insert code. Generation
results are pushed to WebSocket clients at /api/ws for live previews.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfigOrDefault()

		level := logLevel
		if level == "" {
			level = cfg.Logging.Level
		}
		logger, err := logging.Setup(level, cfg.Logging.Directory)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}

		hub := ws.NewHub(logger)
		go hub.Run()

		srv := api.New(logger, servePort,
			api.WithHub(hub),
			api.WithDevMode(serveDevMode),
		)

		// Graceful shutdown on signals
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		fmt.Fprintf(os.Stderr, "Docuforge API: http://localhost:%d\n", servePort)

		select {
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
		case <-ctx.Done():
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8315, "port for the API server")
	serveCmd.Flags().BoolVar(&serveDevMode, "dev", false, "enable CORS for development mode")
	rootCmd.AddCommand(serveCmd)
}
