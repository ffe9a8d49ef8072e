package cmd

import (
	"fmt"
	"os"

	"github.com/niels/tinyhttp/pkg/config"
	"github.com/niels/tinyhttp/pkg/logging"
	"github.com/niels/tinyhttp/pkg/version"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	debug       bool
	showVersion bool
	cfg         *config.Config
)

// NewRootCmd creates the root command for tinyhttp
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   version.AppName,
		Short: version.Description,
		Long: fmt.Sprintf(`%s - %s

Serves files from a public directory and order records from a data
directory over plain HTTP/1.x, and fetches raw responses from such a server.
`, version.AppName, version.Description),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg = config.LoadOrDefault(configPath)
			} else {
				cfg = config.Default()
			}

			// only the server logs to the terminal by default
			logging.InitGlobalLogger(debug, cmd.Name() != serveCmdName, cfg)
			logging.DebugWith("Configuration loaded", map[string]interface{}{
				"path":    configPath,
				"address": cfg.Server.Address,
				"public":  cfg.Paths.Public,
				"data":    cfg.Paths.Data,
			})

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug mode")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newFetchCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
