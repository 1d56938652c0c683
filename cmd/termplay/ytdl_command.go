package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"termplay/internal/download"
	"termplay/internal/frames"
	"termplay/internal/pipeline"
	"termplay/internal/playback"
	"termplay/internal/preflight"
	"termplay/internal/services"
	"termplay/internal/terminal"
	"termplay/internal/workspace"
)

type ytdlOptions struct {
	width     uint16
	height    uint16
	ratio     uint8
	keepSize  bool
	rate      uint8
	converter string
	format    string
}

func newYTDLCommand(ctx *commandContext) *cobra.Command {
	var opts ytdlOptions

	cmd := &cobra.Command{
		Use:   "ytdl VIDEO",
		Short: "Download a video and play it in the terminal",
		Long: "Download VIDEO with the configured download tool, convert it to text frames\n" +
			"and play them back. VIDEO is anything the download tool accepts, such as a URL\n" +
			"or a video ID.\n\nConverters: " + converterHelp(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runYTDL(cmd, ctx, opts, args[0])
		},
	}

	cmd.Flags().Uint16Var(&opts.width, "width", 0, "Frame width in terminal cells (derived when unset)")
	cmd.Flags().Uint16Var(&opts.height, "height", 0, "Frame height in terminal cells (derived when unset)")
	cmd.Flags().Uint8Var(&opts.ratio, "ratio", 0, "Terminal cell height-to-width ratio (default from config)")
	cmd.Flags().BoolVar(&opts.keepSize, "keep-size", false, "Keep the source size; disables aspect and size adjustment")
	cmd.Flags().Uint8Var(&opts.rate, "rate", 0, "Playback frames per second (default from config)")
	cmd.Flags().StringVar(&opts.converter, "converter", "", "Color converter (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Format selector passed to the download tool")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func converterHelp() string {
	parts := make([]string, 0, len(frames.Converters()))
	for _, conv := range frames.Converters() {
		parts = append(parts, fmt.Sprintf("%s (%s)", conv, conv.DisplayName()))
	}
	return strings.Join(parts, ", ")
}

// buildRequest fills unset playback flags from the config.
func buildRequest(cmd *cobra.Command, ctx *commandContext, opts ytdlOptions, video string) (pipeline.Request, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return pipeline.Request{}, err
	}
	ratio := opts.ratio
	if !cmd.Flags().Changed("ratio") {
		ratio = cfg.Playback.Ratio
	}
	rate := opts.rate
	if !cmd.Flags().Changed("rate") {
		rate = cfg.Playback.Rate
	}
	name := opts.converter
	if !cmd.Flags().Changed("converter") {
		name = cfg.Playback.Converter
	}
	conv, err := frames.ParseConverter(name)
	if err != nil {
		return pipeline.Request{}, services.Wrap(services.ErrValidation, "ytdl", "converter", "", err)
	}
	req := pipeline.Request{
		Video:     strings.TrimSpace(video),
		Format:    opts.format,
		Width:     opts.width,
		Height:    opts.height,
		Ratio:     ratio,
		KeepSize:  opts.keepSize,
		Rate:      rate,
		Converter: conv,
	}
	if err := req.Validate(); err != nil {
		return pipeline.Request{}, services.Wrap(services.ErrValidation, "ytdl", "flags", "", err)
	}
	return req, nil
}

func runYTDL(cmd *cobra.Command, ctx *commandContext, opts ytdlOptions, video string) error {
	req, err := buildRequest(cmd, ctx, opts, video)
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger, err := ctx.logger(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	screen := terminal.NewScreen(out, cfg.Terminal.AlternateScreen)

	workspaces := workspace.NewManager(cfg.WorkspaceRoot(), logger)
	if cfg.Workspace.SweepOnStart {
		workspaces.Sweep(cfg.StaleAfter())
	}

	downloader, err := download.New(cfg.Download.Binary, cfg.Download.ExtraArgs,
		download.WithScreen(screen),
		download.WithLogger(logger),
	)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "ytdl", "download", "", err)
	}

	extractOpts := []frames.Option{
		frames.WithWorkers(cfg.Render.Workers),
		frames.WithLogger(logger),
	}
	if cols, rows, ok := terminal.Size(out); ok {
		// One row is left for the shell prompt after playback.
		extractOpts = append(extractOpts, frames.WithBounds(frames.Bounds{Columns: cols, Rows: max(rows-1, 1)}))
	}

	cancel := pipeline.NewCancellation(cmd.Context())
	cancel.Watch()
	defer cancel.Stop()

	p := &pipeline.Pipeline{
		Preflight:  preflight.NewTools(cfg, logger),
		Workspaces: workspaces,
		Downloader: downloader,
		Extractor:  frames.NewExtractor(cfg.FFmpeg.Binary, cfg.FFmpeg.FFprobeBinary, cfg.Render.Binary, extractOpts...),
		Player:     playback.NewPlayer(out, screen, logger),
		Cancel:     cancel,
		Progress:   out,
		Logger:     logger,
	}
	return p.Run(services.WithRequestID(cancel.Context(), runID), req)
}
