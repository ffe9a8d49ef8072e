package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/niels/tinyhttp/pkg/logging"
	"github.com/niels/tinyhttp/pkg/server"
	"github.com/spf13/cobra"
)

const serveCmdName = "serve"

func newServeCmd() *cobra.Command {
	var (
		addr           string
		publicPath     string
		dataPath       string
		maxConnections int
	)

	serveCmd := &cobra.Command{
		Use:   serveCmdName,
		Short: "Serve static pages and order records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Server.Address = addr
			}
			if publicPath != "" {
				cfg.Paths.Public = publicPath
			}
			if dataPath != "" {
				cfg.Paths.Data = dataPath
			}
			if maxConnections > 0 {
				cfg.Server.MaxConnections = maxConnections
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logging.InfoWith("Starting server", map[string]interface{}{
				"address":         cfg.Server.Address,
				"public":          cfg.Paths.Public,
				"data":            cfg.Paths.Data,
				"max_connections": cfg.Server.MaxConnections,
			})

			if err := server.FromConfig(cfg).ListenAndServe(ctx); err != nil {
				logging.ErrorWith("Server stopped", map[string]interface{}{
					"error": err,
				})
				return err
			}
			return nil
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (overrides config)")
	serveCmd.Flags().StringVar(&publicPath, "public", "", "Directory of static pages (overrides config and PUBLIC_PATH)")
	serveCmd.Flags().StringVar(&dataPath, "data", "", "Directory holding orders.json (overrides config and DATA_PATH)")
	serveCmd.Flags().IntVar(&maxConnections, "max-connections", 0, "Maximum number of connections served at once")

	return serveCmd
}
