// Package encoder burns caption files into video with ffmpeg's subtitles
// filter.
package encoder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"subburn/internal/command"
	"subburn/internal/logging"
)

// Settings control the burn encode.
type Settings struct {
	FFmpeg     string
	VideoCodec string
	Preset     string
	CRF        int
	AudioCodec string
}

// DefaultSettings returns libx264/fast/18 with AAC audio.
func DefaultSettings() Settings {
	return Settings{FFmpeg: "ffmpeg", VideoCodec: "libx264", Preset: "fast", CRF: 18, AudioCodec: "aac"}
}

// Job names the files of one burn. Paths are resolved against the
// working directory passed to Burn.
type Job struct {
	Video    string
	Audio    string
	Captions string
	Style    string
	Output   string
}

// FilterGraph returns the -vf value rendering captions with forceStyle.
func FilterGraph(captions, forceStyle string) string {
	return fmt.Sprintf("subtitles=%s:force_style=%s", quote(captions), quote(forceStyle))
}

// quote wraps v in filtergraph single quotes. A literal quote has to leave
// the quoted run, be escaped, and reopen it.
func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// Args builds the ffmpeg argument list for job. Video comes from the first
// input and audio from the second.
func (s Settings) Args(job Job) []string {
	return []string{
		"-y",
		"-i", job.Video,
		"-i", job.Audio,
		"-vf", FilterGraph(job.Captions, job.Style),
		"-c:v", s.VideoCodec,
		"-preset", s.Preset,
		"-crf", strconv.Itoa(s.CRF),
		"-c:a", s.AudioCodec,
		"-map", "0:v",
		"-map", "1:a",
		job.Output,
	}
}

// Burner runs burn jobs.
type Burner struct {
	settings Settings
	runner   command.Runner
	logger   *slog.Logger
}

// NewBurner returns a Burner. A nil runner executes ffmpeg directly.
func NewBurner(settings Settings, runner command.Runner, logger *slog.Logger) *Burner {
	defaults := DefaultSettings()
	if strings.TrimSpace(settings.FFmpeg) == "" {
		settings.FFmpeg = defaults.FFmpeg
	}
	if strings.TrimSpace(settings.VideoCodec) == "" {
		settings.VideoCodec = defaults.VideoCodec
	}
	if strings.TrimSpace(settings.Preset) == "" {
		settings.Preset = defaults.Preset
	}
	if strings.TrimSpace(settings.AudioCodec) == "" {
		settings.AudioCodec = defaults.AudioCodec
	}
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return &Burner{settings: settings, runner: runner, logger: logging.NewComponentLogger(logger, "encoder")}
}

// Settings returns the effective settings.
func (b *Burner) Settings() Settings { return b.settings }

// Burn runs ffmpeg inside workDir so the filter sees the caption file by
// its bare name. Callers must check that job.Output exists afterwards.
func (b *Burner) Burn(ctx context.Context, workDir string, job Job) (command.Log, error) {
	spec := command.Spec{Name: b.settings.FFmpeg, Args: b.settings.Args(job), Dir: workDir}
	logging.WithContext(ctx, b.logger).Info("burning subtitles",
		logging.String("codec", b.settings.VideoCodec),
		logging.String("preset", b.settings.Preset),
		logging.Int("crf", b.settings.CRF),
	)
	log, err := b.runner.Run(ctx, spec)
	if err != nil {
		return log, fmt.Errorf("burn subtitles: %w", err)
	}
	logging.WithContext(ctx, b.logger).Debug("ffmpeg finished", logging.String("command", log.String()))
	return log, nil
}
