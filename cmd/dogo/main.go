package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/timmy/dogo/internal/config"
	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/logger"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "dogo",
	Short:         "Fetch and browse random dog images",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDefaultLogger(logger.New(&logger.Config{
			Level:       logLevel,
			Format:      "text",
			Output:      cmd.ErrOrStderr(),
			ServiceName: "dogo-cli",
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// exitCode maps gallery error kinds to process exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrEmptyGallery):
		return 2
	case errors.Is(err, domain.ErrTransport):
		return 3
	case errors.Is(err, domain.ErrDecode),
		errors.Is(err, domain.ErrInvalidReference):
		return 4
	default:
		return 1
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(exitCode(err))
}
