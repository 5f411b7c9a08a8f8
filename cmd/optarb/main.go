// Package main is the entry point for the option arbitrage evaluator.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fd1az/options-arbitrage/business/arbitrage"
	"github.com/fd1az/options-arbitrage/business/payoff"
	"github.com/fd1az/options-arbitrage/business/pricing"
	"github.com/fd1az/options-arbitrage/internal/apm"
	"github.com/fd1az/options-arbitrage/internal/config"
	"github.com/fd1az/options-arbitrage/internal/logger"
	"github.com/fd1az/options-arbitrage/internal/monolith"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "optarb",
		Short:         "Detect static arbitrage among option prices at three strikes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file")

	root.AddCommand(
		newEvaluateCmd(opts),
		newServeCmd(opts),
		newRemoteCmd(opts),
		newTUICmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "optarb %s (commit: %s, built: %s)\n", version, commit, buildDate)
		},
	}
}

// bootstrap loads configuration, builds the logger writing to logOut and
// starts the modules in dependency order. The caller closes the returned app.
func bootstrap(ctx context.Context, opts *rootOptions, logOut io.Writer) (*monolith.App, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logOut, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, apm.LogAttrs)

	mono := monolith.New(cfg, log)

	modules := []monolith.Module{
		&pricing.Module{},   // request parsing
		&payoff.Module{},    // portfolio constructor
		&arbitrage.Module{}, // depends on payoff
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return nil, fmt.Errorf("failed to start modules: %w", err)
	}
	return mono, nil
}
