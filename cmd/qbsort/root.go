package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"qbsort/internal/hook"
	"qbsort/internal/logging"
	"qbsort/internal/services"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	cctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "qbsort [hash name save_path]",
		Short: "Sort finished qBittorrent downloads into category directories",
		Long: `qbsort is a qBittorrent "run on torrent finished" hook. Invoked with the
torrent hash, name, and save path, it classifies the torrent by name, makes
sure the category directories exist, and relocates the torrent through the
WebUI API unless it already sits in the right place.

Wire it up under Options -> Downloads -> Run external program:

  qbsort "%I" "%N" "%D"`,
		Args:          hookArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runHook(cmd, cctx, args)
		},
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if shouldSkipConfig(cmd) {
			return nil
		}
		if cmd == rootCmd && len(args) == 0 {
			return nil
		}
		_, err := cctx.ensureConfig()
		return err
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newClassifyCommand(cctx))
	rootCmd.AddCommand(newHistoryCommand(cctx))
	rootCmd.AddCommand(newStatusCommand(cctx))
	rootCmd.AddCommand(newConfigCommand(cctx))
	rootCmd.AddCommand(newTestNotifyCommand(cctx))

	return rootCmd
}

func hookArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 3 {
		return fmt.Errorf("expects no arguments or exactly three: hash name save_path (got %d)", len(args))
	}
	return nil
}

func runHook(cmd *cobra.Command, cctx *commandContext, args []string) error {
	cfg := cctx.configValue()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	runner, err := hook.NewRunner(cfg, logger)
	if err != nil {
		logger.Error("hook setup failed", logging.Error(err))
		return err
	}
	defer func() { _ = runner.Close() }()

	runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := runner.Run(runCtx, hook.Request{Hash: args[0], Name: args[1], SavePath: args[2]}); err != nil {
		logger.Error("hook run failed",
			logging.Error(err),
			logging.String("failure_kind", services.FailureKind(err)),
		)
		return err
	}
	return nil
}
