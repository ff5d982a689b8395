package config

import "subburn/internal/style"

const (
	defaultConfigPath      = "~/.config/subburn/config.toml"
	defaultEngine          = "whispercpp"
	defaultModelSize       = "small"
	defaultVADMethod       = "silero"
	defaultFFmpeg          = "ffmpeg"
	defaultFFprobe         = "ffprobe"
	defaultVideoCodec      = "libx264"
	defaultPreset          = "fast"
	defaultCRF             = 18
	defaultAudioCodec      = "aac"
	defaultIntermediateCRF = 12
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLogMaxSizeMB    = 20
	defaultLogMaxBackups   = 5
	defaultLogMaxAgeDays   = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	caption := style.Default()
	return Config{
		Paths: Paths{
			ModelDir: defaultModelDir(),
		},
		Transcription: Transcription{
			Engine:       defaultEngine,
			ModelSize:    defaultModelSize,
			AutoDownload: true,
			VADMethod:    defaultVADMethod,
		},
		Encoder: Encoder{
			FFmpeg:          defaultFFmpeg,
			FFprobe:         defaultFFprobe,
			VideoCodec:      defaultVideoCodec,
			Preset:          defaultPreset,
			CRF:             defaultCRF,
			AudioCodec:      defaultAudioCodec,
			IntermediateCRF: defaultIntermediateCRF,
		},
		Style: Style{
			FontName:     caption.FontName,
			FontSize:     caption.FontSize,
			PrimaryColor: caption.PrimaryColor,
			OutlineColor: caption.OutlineColor,
			OutlineAlpha: caption.OutlineAlpha,
			BackColor:    caption.BackColor,
			BackAlpha:    caption.BackAlpha,
			BorderStyle:  caption.BorderStyle,
			Outline:      caption.Outline,
			Shadow:       caption.Shadow,
			Alignment:    caption.Alignment,
			MarginV:      caption.MarginV,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
