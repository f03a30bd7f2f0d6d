package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/filmdeck/web"
)

const shutdownTimeout = 10 * time.Second

var listenAddress string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI",
	Long: `Run the filmdeck web UI. Pages load their sections in parallel and
render whatever finished in time.

Examples:
  filmdeck serve
  filmdeck serve --address 127.0.0.1:9000`,
	PreRunE: initializeApp,
	RunE:    runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddress, "address", "", "listen address (overrides server.address)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if listenAddress != "" {
		cfg.Server.Address = listenAddress
	}

	server, err := web.NewServer(cfg, tmdbClient, imageCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	logger.Info().Msg("Shutting down web server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to stop web server: %w", err)
	}
	return <-errCh
}
