package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"subburn/internal/style"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// TempDir hosts the per-run workspaces; empty uses the system default.
	TempDir  string `toml:"temp_dir"`
	ModelDir string `toml:"model_dir"`
	// LogDir enables the rotating JSON log file when set.
	LogDir string `toml:"log_dir"`
}

// Transcription contains speech-to-text engine settings.
type Transcription struct {
	Engine string `toml:"engine"`
	// Binary overrides the engine executable (whisper-cli or uvx).
	Binary       string `toml:"binary"`
	ModelSize    string `toml:"model_size"`
	Language     string `toml:"language"`
	Threads      int    `toml:"threads"`
	AutoDownload bool   `toml:"auto_download"`
	WeightsURL   string `toml:"weights_url"`
	CUDA         bool   `toml:"cuda"`
	VADMethod    string `toml:"vad_method"`
	HFToken      string `toml:"hf_token"`
}

// Encoder contains ffmpeg settings for the burn and intermediate encodes.
type Encoder struct {
	FFmpeg          string `toml:"ffmpeg"`
	FFprobe         string `toml:"ffprobe"`
	VideoCodec      string `toml:"video_codec"`
	Preset          string `toml:"preset"`
	CRF             int    `toml:"crf"`
	AudioCodec      string `toml:"audio_codec"`
	IntermediateCRF int    `toml:"intermediate_crf"`
}

// Style holds the caption style used when CLI flags are not given.
type Style struct {
	FontName     string `toml:"font_name"`
	FontSize     int    `toml:"font_size"`
	PrimaryColor string `toml:"primary_color"`
	OutlineColor string `toml:"outline_color"`
	OutlineAlpha int    `toml:"outline_alpha"`
	BackColor    string `toml:"back_color"`
	BackAlpha    int    `toml:"back_alpha"`
	BorderStyle  int    `toml:"border_style"`
	Outline      int    `toml:"outline"`
	Shadow       int    `toml:"shadow"`
	Alignment    int    `toml:"alignment"`
	MarginV      int    `toml:"margin_v"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Config encapsulates all configuration values for subburn.
//
// Configuration sections by subsystem:
//   - Paths: workspace root, weight cache, log directory
//   - Transcription: engine, model size, language, hardware
//   - Encoder: ffmpeg/ffprobe locations and quality
//   - Style: default caption appearance
//   - Logging: log format, level, and rotation
type Config struct {
	Paths         Paths         `toml:"paths"`
	Transcription Transcription `toml:"transcription"`
	Encoder       Encoder       `toml:"encoder"`
	Style         Style         `toml:"style"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the configuration at path (or the first default candidate when
// path is empty), applies normalization and validates it. A missing file is
// not an error: defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
	}
	return nil
}

// resolveConfigPath returns the explicit path when given. Otherwise it tries
// the user config location, then ./subburn.toml, and falls back to the user
// location as the (absent) default.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		return expanded, exists, err
	}

	var candidates []string
	for _, raw := range []string{defaultConfigPath, "subburn.toml"} {
		expanded, err := expandPath(raw)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, expanded)
	}
	for _, candidate := range candidates {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return candidates[0], false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// EnsureDirectories creates the weight cache and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ModelDir, c.Paths.LogDir, c.Paths.TempDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// StyleConfig converts the [style] section into a caption style.
func (c *Config) StyleConfig() style.Config {
	return style.Config{
		FontName:     c.Style.FontName,
		FontSize:     c.Style.FontSize,
		PrimaryColor: c.Style.PrimaryColor,
		OutlineColor: c.Style.OutlineColor,
		OutlineAlpha: c.Style.OutlineAlpha,
		BackColor:    c.Style.BackColor,
		BackAlpha:    c.Style.BackAlpha,
		BorderStyle:  c.Style.BorderStyle,
		Outline:      c.Style.Outline,
		Shadow:       c.Style.Shadow,
		Alignment:    c.Style.Alignment,
		MarginV:      c.Style.MarginV,
	}
}

func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value, "~"))
	}
	absolute, err := filepath.Abs(filepath.Clean(value))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultModelDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "subburn", "models")
	}
	return "~/.cache/subburn/models"
}

// SampleConfig returns the annotated sample configuration.
func SampleConfig() string { return sampleConfig }

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
