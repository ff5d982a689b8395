package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeEncoder()
	c.normalizeStyle()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := lookupEnv("SUBBURN_MODEL_DIR"); ok {
		c.Paths.ModelDir = value
	}
	if strings.TrimSpace(c.Paths.ModelDir) == "" {
		c.Paths.ModelDir = defaultModelDir()
	}
	var err error
	if c.Paths.ModelDir, err = expandPath(strings.TrimSpace(c.Paths.ModelDir)); err != nil {
		return fmt.Errorf("paths.model_dir: %w", err)
	}
	if c.Paths.TempDir, err = expandPath(strings.TrimSpace(c.Paths.TempDir)); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	t := &c.Transcription
	t.Engine = strings.ToLower(strings.TrimSpace(t.Engine))
	if t.Engine == "" {
		t.Engine = defaultEngine
	}
	t.Binary = strings.TrimSpace(t.Binary)
	if value, ok := lookupEnv("SUBBURN_WHISPER_BINARY"); ok && t.Binary == "" {
		t.Binary = value
	}
	t.ModelSize = strings.ToLower(strings.TrimSpace(t.ModelSize))
	if t.ModelSize == "" {
		t.ModelSize = defaultModelSize
	}
	t.Language = strings.TrimSpace(t.Language)
	t.WeightsURL = strings.TrimSpace(t.WeightsURL)
	if t.Threads < 0 {
		t.Threads = 0
	}
	t.VADMethod = strings.ToLower(strings.TrimSpace(t.VADMethod))
	if t.VADMethod == "" {
		t.VADMethod = defaultVADMethod
	}
	t.HFToken = strings.TrimSpace(t.HFToken)
	if t.HFToken == "" {
		if value, ok := lookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			t.HFToken = value
		} else if value, ok := lookupEnv("HF_TOKEN"); ok {
			t.HFToken = value
		}
	}
}

func (c *Config) normalizeEncoder() {
	e := &c.Encoder
	if value, ok := lookupEnv("SUBBURN_FFMPEG"); ok {
		e.FFmpeg = value
	}
	if value, ok := lookupEnv("SUBBURN_FFPROBE"); ok {
		e.FFprobe = value
	}
	e.FFmpeg = defaultString(e.FFmpeg, defaultFFmpeg)
	e.FFprobe = defaultString(e.FFprobe, defaultFFprobe)
	e.VideoCodec = defaultString(e.VideoCodec, defaultVideoCodec)
	e.Preset = defaultString(e.Preset, defaultPreset)
	e.AudioCodec = defaultString(e.AudioCodec, defaultAudioCodec)
}

func (c *Config) normalizeStyle() {
	c.Style.FontName = strings.TrimSpace(c.Style.FontName)
	c.Style.PrimaryColor = strings.TrimSpace(c.Style.PrimaryColor)
	c.Style.OutlineColor = strings.TrimSpace(c.Style.OutlineColor)
	c.Style.BackColor = strings.TrimSpace(c.Style.BackColor)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func defaultString(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
