package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yrrapt/yaaade/internal/infra/fsworkspace"
	"github.com/yrrapt/yaaade/internal/infra/logger"
	"github.com/yrrapt/yaaade/internal/infra/workspacefinder"
	"github.com/yrrapt/yaaade/internal/ui/tui"
)

func Execute() {
	// interrupting a run kills the xschem or simulator subprocess
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "yaaade",
		Short:        "yaaade builds and runs SPICE fixtures (xschem + ngspice/Xyce/Spectre)",
		Long:         "Without a subcommand yaaade opens the interactive fixture browser.",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			wd, _ = filepath.Abs(wd)

			logRoot := wd
			explicit, _ := c.Flags().GetString("workspace")
			if root, ferr := workspacefinder.NewFinder().Resolve(explicit, wd); ferr == nil && root != "" {
				logRoot = root
			}

			cfg := logger.Config{Root: logRoot, Debug: debug}
			// the browser owns the terminal
			if c.HasParent() {
				cfg.Stderr = os.Stderr
			}
			cleanup, _ = logger.Setup(cfg)
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			deps := tui.Deps{
				WorkspaceLocator:     workspacefinder.NewFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Open:                 openWorkspace,
				Logger:               logger.Component("tui"),
				Debug:                debug,
			}
			return tui.Run(deps)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .yaaade/logs/yaaade.log")

	cmd.AddCommand(
		initCmd(),
		fixturesCmd(),
		validateCmd(),
		netlistCmd(),
		runCmd(),
		plotCmd(),
		versionCmd(),
	)
	return cmd
}
