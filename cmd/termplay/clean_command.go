package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"termplay/internal/logging"
	"termplay/internal/workspace"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove workspaces left behind by interrupted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger("")
			if err != nil {
				return err
			}
			age := maxAge
			if !cmd.Flags().Changed("max-age") {
				age = cfg.StaleAfter()
			}
			if age < 0 {
				return fmt.Errorf("--max-age must not be negative")
			}

			result := workspace.NewManager(cfg.WorkspaceRoot(), logging.NewComponentLogger(logger, "clean")).Sweep(age)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, path := range result.Removed {
				fmt.Fprintln(out, renderStatusLine("Removed", statusOK, path, colorize))
			}
			for _, path := range result.Skipped {
				fmt.Fprintln(out, renderStatusLine("In use", statusWarn, path, colorize))
			}
			for _, failure := range result.Errors {
				fmt.Fprintln(out, renderStatusLine("Failed", statusError, fmt.Sprintf("%s: %v", failure.Path, failure.Error), colorize))
			}
			if len(result.Removed)+len(result.Skipped)+len(result.Errors) == 0 {
				fmt.Fprintln(out, "No stale workspaces found")
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d workspace(s) could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "Remove workspaces older than this (default from config)")
	return cmd
}
