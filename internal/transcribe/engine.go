package transcribe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"subburn/internal/command"
	"subburn/internal/language"
	"subburn/internal/logging"
)

// Options configure the transcription engines.
type Options struct {
	Engine string
	// Binary overrides the engine executable (whisper-cli or uvx).
	Binary string
	FFmpeg string
	// ModelDir caches whisper.cpp weight files.
	ModelDir     string
	WeightsURL   string
	AutoDownload bool
	Language     string
	Threads      int
	CUDA         bool
	VADMethod    string
	HFToken      string

	Runner     command.Runner
	HTTPClient *http.Client
	Logger     *slog.Logger
	Progress   io.Writer
}

// NewLoader returns the Loader for opts.Engine. An empty engine selects
// whisper.cpp.
func NewLoader(opts Options) (Loader, error) {
	lang, err := language.Normalize(opts.Language)
	if err != nil {
		return nil, err
	}
	opts.Language = lang
	if opts.Runner == nil {
		opts.Runner = command.ExecRunner{}
	}
	if strings.TrimSpace(opts.FFmpeg) == "" {
		opts.FFmpeg = "ffmpeg"
	}
	opts.Logger = logging.NewComponentLogger(opts.Logger, "transcribe")

	switch strings.ToLower(strings.TrimSpace(opts.Engine)) {
	case "", EngineWhisperCpp:
		if strings.TrimSpace(opts.Binary) == "" {
			opts.Binary = WhisperCppCommand
		}
		return &whisperCppLoader{
			opts: opts,
			fetcher: &Fetcher{
				Dir:          opts.ModelDir,
				BaseURL:      opts.WeightsURL,
				AutoDownload: opts.AutoDownload,
				Client:       opts.HTTPClient,
				Progress:     opts.Progress,
				Logger:       opts.Logger,
			},
		}, nil
	case EngineWhisperX:
		if strings.TrimSpace(opts.Binary) == "" {
			opts.Binary = UVXCommand
		}
		return &whisperXLoader{opts: opts}, nil
	default:
		return nil, fmt.Errorf("transcription engine %q not supported (choose %s or %s)", opts.Engine, EngineWhisperCpp, EngineWhisperX)
	}
}

// Engines lists the supported engine names.
func Engines() []string { return []string{EngineWhisperCpp, EngineWhisperX} }

// preprocess converts any audio file to the 16 kHz mono PCM WAV both
// engines expect.
func preprocess(ctx context.Context, runner command.Runner, ffmpeg, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	if _, err := runner.Run(ctx, command.Spec{Name: ffmpeg, Args: args}); err != nil {
		return fmt.Errorf("prepare audio: %w", err)
	}
	return nil
}
