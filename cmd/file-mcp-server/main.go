// Package main is the entry point for the file MCP server.
//
// The server speaks JSON-RPC 2.0 over stdin/stdout, so all logging goes
// to stderr or a log file. Startup sequence:
//
// 1. Initialize logging from CLI flags
// 2. Load configuration (explicit --config path or the XDG location)
// 3. Apply flag overrides on top of the config
// 4. Construct the server, resolving and validating the served root
// 5. Serve stdio until the client disconnects
package main

import (
	"os"

	"localmcp/internal/config"
	"localmcp/internal/fileserver"
	"localmcp/internal/logging"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagRootDir  string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "file-mcp-server",
		Short: "MCP server for secure, read-only file access",
		Long: `Serves a single directory subtree to MCP clients over stdio.

Every requested path is normalized and checked against the served root
before any filesystem access; paths matching exclude patterns or
.gitignore rules are refused.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.Flags().StringVarP(&flagRootDir, "root-dir", "r", "", "directory to serve (overrides config)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "append logs to this file instead of stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(config.FileServerApp, flagLogLevel, flagLogFile)
	if err != nil {
		logging.Error("Failed to initialize logging", "error", err)
		return err
	}

	cfg, err := config.LoadFileServer(flagConfig)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return err
	}
	if flagRootDir != "" {
		cfg.RootDir = flagRootDir
	}

	srv, err := fileserver.NewServer(cfg, logger)
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
