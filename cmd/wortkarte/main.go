package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/archive"
	"codeberg.org/snonux/wortkarte/internal/cli"
	"codeberg.org/snonux/wortkarte/internal/config"
	"codeberg.org/snonux/wortkarte/internal/models"
	"codeberg.org/snonux/wortkarte/internal/processor"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create flags instance
	flags := cli.NewFlags()
	v := viper.New()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags, v)

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), cmd, args, flags, v)
	}

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, cmd *cobra.Command, args []string, flags *cli.Flags, v *viper.Viper) error {
	if flags.NoAnki {
		v.Set("anki.enabled", false)
	}

	// Handle --archive flag
	if flags.Archive {
		cfg, err := config.Decode(v)
		if err != nil {
			return err
		}
		dest, err := archive.Dir(cfg.Files.Directory)
		if err != nil {
			return fmt.Errorf("failed to archive files: %w", err)
		}
		fmt.Printf("Archived %s to %s\n", cfg.Files.Directory, dest)
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		cfg, err := config.Decode(v)
		if err != nil {
			return err
		}
		catalog, err := models.NewLister(cfg.OpenAI).List(ctx)
		if err != nil {
			return err
		}
		catalog.Print(os.Stdout)
		return nil
	}

	// Handle --export flag
	if flags.Export != "" {
		cfg, err := config.Decode(v)
		if err != nil {
			return err
		}
		log, err := config.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		return processor.Export(cfg, flags.Export, log, os.Stdout)
	}

	if flags.BatchFile == "" && len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Create processor
	proc, err := processor.New(ctx, cfg, log, os.Stdout)
	if err != nil {
		return err
	}

	if flags.BatchFile != "" {
		summary, err := proc.ProcessBatch(ctx, flags.BatchFile)
		if err != nil {
			return err
		}
		log.Info("Batch finished",
			zap.Int("total", summary.Total),
			zap.Int("processed", summary.Processed),
			zap.Int("failed", summary.Failed))
	} else if _, err := proc.ProcessWord(ctx, args[0], ""); err != nil {
		return err
	}

	fmt.Printf("\nDone! Files saved to: %s\n", cfg.Files.Directory)
	return nil
}
