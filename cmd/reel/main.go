package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	replrun "github.com/rzbill/reel/internal/cmd/repl"
	cfgpkg "github.com/rzbill/reel/internal/config"
	logpkg "github.com/rzbill/reel/pkg/log"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "reel",
		Short: "reel journal CLI",
		Long:  "reel drives an in-memory sequenced journal: scripted appends, commits, range reads, and paced replay.",
	}

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Execute a journal script (reads stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journalName, _ := cmd.Flags().GetString("journal")
			filter, _ := cmd.Flags().GetString("filter")
			simulate, _ := cmd.Flags().GetBool("simulate-time")
			configPath, _ := cmd.Flags().GetString("config")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)

			logger, err := logpkg.ApplyConfig(&logpkg.Config{Level: logLevel, Format: logFormat})
			if err != nil {
				return err
			}
			logpkg.RedirectStdLog(logger)

			script := os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				script = f
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return replrun.Run(ctx, replrun.Options{
				Journal:      journalName,
				Filter:       filter,
				SimulateTime: simulate,
				Script:       script,
				Out:          os.Stdout,
				Config:       cfg,
				Logger:       logger,
			})
		},
	}
	runCmd.Flags().String("journal", "", "Journal name (defaults to the configured default)")
	runCmd.Flags().String("filter", "", "CEL filter applied to txns and replay output")
	runCmd.Flags().Bool("simulate-time", false, "Pace replay to the original append gaps")
	runCmd.Flags().String("config", os.Getenv("REEL_CONFIG"), "Config file path (JSON)")
	runCmd.Flags().String("log-level", os.Getenv("REEL_LOG_LEVEL"), "Log level: debug|info|warn|error")
	runCmd.Flags().String("log-format", os.Getenv("REEL_LOG_FORMAT"), "Log format: text|json (default text)")
	rootCmd.AddCommand(runCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the reel version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("reel", version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
