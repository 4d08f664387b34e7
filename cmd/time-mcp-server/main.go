// Package main is the entry point for the time MCP server.
package main

import (
	"os"

	"localmcp/internal/config"
	"localmcp/internal/logging"
	"localmcp/internal/timeserver"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagTimezone string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "time-mcp-server",
		Short: "MCP server for timezone-aware time operations",
		Long: `Serves timezone tools, resources, and prompts to MCP clients over
stdio: current time in any IANA zone, conversion between zones, zone
metadata with DST transitions, and zone listings. Melbourne, Australia
is the default zone.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.Flags().StringVarP(&flagTimezone, "timezone", "t", "", "default IANA timezone (overrides config)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "append logs to this file instead of stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(config.TimeServerApp, flagLogLevel, flagLogFile)
	if err != nil {
		logging.Error("Failed to initialize logging", "error", err)
		return err
	}

	cfg, err := config.LoadTimeServer(flagConfig)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return err
	}
	if flagTimezone != "" {
		cfg.DefaultTimezone = flagTimezone
	}

	srv, err := timeserver.NewServer(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize server", "error", err)
		return err
	}

	if err := srv.Start(); err != nil {
		logger.Error("Server exited with error", "error", err)
		return err
	}
	return nil
}
