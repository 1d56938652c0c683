package config

const (
	defaultConfigPath          = "~/.config/termplay/config.toml"
	defaultDownloadBinary      = "yt-dlp"
	defaultDownloadVersionArg  = "--version"
	defaultFFmpegBinary        = "ffmpeg"
	defaultFFprobeBinary       = "ffprobe"
	defaultRenderBinary        = "chafa"
	defaultPlaybackRate        = 24
	defaultPlaybackRatio       = 2
	defaultConverter           = "truecolor"
	defaultAlternateScreen     = AlternateScreenAuto
	defaultStaleAfterHours     = 24
	defaultProbeTimeoutSeconds = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Alternate screen policies.
const (
	AlternateScreenAuto   = "auto"
	AlternateScreenAlways = "always"
	AlternateScreenNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Download: Download{
			Binary:     defaultDownloadBinary,
			VersionArg: defaultDownloadVersionArg,
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Render: Render{
			Binary: defaultRenderBinary,
		},
		Playback: Playback{
			Rate:      defaultPlaybackRate,
			Ratio:     defaultPlaybackRatio,
			Converter: defaultConverter,
		},
		Terminal: Terminal{
			AlternateScreen: defaultAlternateScreen,
		},
		Workspace: Workspace{
			SweepOnStart:    true,
			StaleAfterHours: defaultStaleAfterHours,
		},
		Preflight: Preflight{
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
