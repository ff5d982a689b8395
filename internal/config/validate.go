package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	engines     = []string{"whispercpp", "whisperx"}
	modelSizes  = []string{"tiny", "base", "small", "medium", "large"}
	vadMethods  = []string{"silero", "pyannote"}
	logLevels   = []string{"debug", "info", "warn", "warning", "error"}
	x264Presets = []string{"ultrafast", "superfast", "veryfast", "faster", "fast", "medium", "slow", "slower", "veryslow", "placebo"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.StyleConfig().Validate(); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	t := c.Transcription
	if !slices.Contains(engines, t.Engine) {
		return fmt.Errorf("transcription.engine must be one of %s", strings.Join(engines, ", "))
	}
	if !slices.Contains(modelSizes, t.ModelSize) {
		return fmt.Errorf("transcription.model_size must be one of %s", strings.Join(modelSizes, ", "))
	}
	if !slices.Contains(vadMethods, t.VADMethod) {
		return fmt.Errorf("transcription.vad_method must be one of %s", strings.Join(vadMethods, ", "))
	}
	if t.VADMethod == "pyannote" && t.HFToken == "" {
		return errors.New("transcription.hf_token is required when vad_method is pyannote")
	}
	if strings.TrimSpace(c.Paths.ModelDir) == "" && t.Engine == "whispercpp" {
		return errors.New("paths.model_dir must be set for the whispercpp engine")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	e := c.Encoder
	if e.CRF < 0 || e.CRF > 51 {
		return errors.New("encoder.crf must be between 0 and 51")
	}
	if e.IntermediateCRF < 0 || e.IntermediateCRF > 51 {
		return errors.New("encoder.intermediate_crf must be between 0 and 51")
	}
	if (e.VideoCodec == "libx264" || e.VideoCodec == "libx265") && !slices.Contains(x264Presets, e.Preset) {
		return fmt.Errorf("encoder.preset %q is not an x264/x265 preset", e.Preset)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %s", strings.Join(logLevels, ", "))
	}
	return nil
}
