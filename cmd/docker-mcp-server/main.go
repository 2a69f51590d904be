package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kalyanram262/docker-mcp-server/pkg/config"
	"github.com/kalyanram262/docker-mcp-server/pkg/engine"
	"github.com/kalyanram262/docker-mcp-server/pkg/logger"
	"github.com/kalyanram262/docker-mcp-server/pkg/runner"
	"github.com/kalyanram262/docker-mcp-server/pkg/scout"
	"github.com/kalyanram262/docker-mcp-server/pkg/server"
	"github.com/kalyanram262/docker-mcp-server/pkg/tools"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	envFile   string
	transport string
	httpAddr  string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "docker-mcp-server",
	Short: "MCP server exposing Docker Engine operations to AI agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docker-mcp-server %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file")
	rootCmd.Flags().StringVar(&transport, "transport", "", "transport to serve on (stdio, http)")
	rootCmd.Flags().StringVar(&httpAddr, "http-addr", "", "listen address for the http transport")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
}

func serve() error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	// Flags win over environment.
	if transport != "" {
		cfg.Transport = transport
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cfg.ServiceVersion == "dev" {
		cfg.ServiceVersion = Version
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, err := engine.New(ctx, log)
	if err != nil {
		return fmt.Errorf("connecting to docker engine: %w", err)
	}
	defer eng.Close()

	scanner := scout.NewCLI(&runner.DefaultCommandRunner{Log: log}, log)
	executor := tools.NewExecutor(eng, scanner, cfg, log)
	dispatcher := tools.NewDispatcher(executor, log)

	log.Info().Str("transport", cfg.Transport).Str("version", cfg.ServiceVersion).
		Int("operations", len(dispatcher.Descriptors())).Msg("docker mcp server starting")

	switch cfg.Transport {
	case config.TransportHTTP:
		return server.NewHTTP(dispatcher, cfg.HTTPAddr, log).Run(ctx)
	default:
		return server.ServeStdio(ctx, server.NewMCP(dispatcher, cfg, log))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
