package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"termplay/internal/config"
	"termplay/internal/deps"
	"termplay/internal/frames"
	"termplay/internal/preflight"
	"termplay/internal/services"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses, checks := preflight.RunAll(cmd.Context(), cfg)

			for _, line := range renderSectionHeader("Tools", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Version", "Purpose"},
				toolRows(statuses),
			))
			for _, line := range dependencyLines(statuses, colorize) {
				fmt.Fprintln(out, line)
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			failed := 0
			for _, check := range checks {
				kind := statusOK
				if !check.Passed {
					kind = statusError
					failed++
				}
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Playback defaults", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range playbackLines(cfg, colorize) {
				fmt.Fprintln(out, line)
			}

			missing := deps.Missing(statuses)
			if len(missing) > 0 || failed > 0 {
				return services.Wrap(services.ErrExternalTool, "doctor", "",
					fmt.Sprintf("%d tool(s) missing, %d directory check(s) failed", len(missing), failed), nil)
			}
			return nil
		},
	}
}

func toolRows(statuses []deps.Status) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		version := status.Version
		if !status.Available {
			version = "-"
		}
		rows = append(rows, []string{status.Name, status.Command, version, status.Description})
	}
	return rows
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	missing := make([]string, 0)
	for _, status := range statuses {
		if status.Available {
			message := "Ready"
			if status.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", status.Command)
			}
			lines = append(lines, renderStatusLine(status.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(status.Detail)
		if detail == "" {
			detail = "not available"
		}
		missing = append(missing, status.Name)
		lines = append(lines, renderStatusLine(status.Name, statusError, detail, colorize))
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing tools", statusError,
			fmt.Sprintf("%s (install them or set their binaries in the config)", strings.Join(missing, ", ")), colorize))
	}
	return lines
}

func playbackLines(cfg *config.Config, colorize bool) []string {
	converter := cfg.Playback.Converter
	if conv, err := frames.ParseConverter(converter); err == nil {
		converter = fmt.Sprintf("%s (%s)", conv, conv.DisplayName())
	}
	return []string{
		renderStatusLine("Rate", statusInfo, fmt.Sprintf("%d fps", cfg.Playback.Rate), colorize),
		renderStatusLine("Ratio", statusInfo, fmt.Sprintf("%d", cfg.Playback.Ratio), colorize),
		renderStatusLine("Converter", statusInfo, converter, colorize),
		renderStatusLine("Alternate screen", statusInfo, cfg.Terminal.AlternateScreen, colorize),
		renderStatusLine("Workspace root", statusInfo, cfg.WorkspaceRoot(), colorize),
	}
}
