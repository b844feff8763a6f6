package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sqclip/sqclip/internal/config"
	"github.com/sqclip/sqclip/internal/pipeline"
)

func run(cmd *cobra.Command, inputs []string) error {
	userID, _ := cmd.Flags().GetString("user")
	scratch, _ := cmd.Flags().GetString("scratch")
	envFile, _ := cmd.Flags().GetString("env-file")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load(config.Overrides{
		EnvFile:    envFile,
		ScratchDir: scratch,
		LogLevel:   logLevel,
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	abs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		a, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		abs = append(abs, a)
	}

	if err := pipeline.Validate(cfg, userID, abs); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := pipeline.Run(ctx, cfg, userID, abs, log)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d clips)\n", r.Input, len(r.Clips))
		for _, url := range r.Clips {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", url)
		}
	}
	return err
}
