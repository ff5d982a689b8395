package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"subburn/internal/command"
	"subburn/internal/config"
	"subburn/internal/encoder"
	"subburn/internal/media"
	"subburn/internal/node"
	"subburn/internal/transcribe"
)

// pipeline bundles the collaborators a command needs from one config.
type pipeline struct {
	codec  *media.Codec
	models *transcribe.Cache
	node   *node.SubtitleBurner
}

func newPipeline(cfg *config.Config, logger *slog.Logger, progress io.Writer) (*pipeline, error) {
	runner := command.ExecRunner{}
	codec := media.NewCodec(cfg.Encoder.FFmpeg, cfg.Encoder.FFprobe, cfg.Encoder.IntermediateCRF)

	loader, err := transcribe.NewLoader(transcriptionOptions(cfg, logger, progress))
	if err != nil {
		return nil, err
	}
	models := transcribe.NewCache(loader, logger)

	burner := encoder.NewBurner(encoder.Settings{
		FFmpeg:     cfg.Encoder.FFmpeg,
		VideoCodec: cfg.Encoder.VideoCodec,
		Preset:     cfg.Encoder.Preset,
		CRF:        cfg.Encoder.CRF,
		AudioCodec: cfg.Encoder.AudioCodec,
	}, runner, logger)

	burnerNode, err := node.New(node.Deps{
		Codec:    codec,
		Models:   models,
		Burner:   burner,
		Logger:   logger,
		TempRoot: cfg.Paths.TempDir,
	})
	if err != nil {
		return nil, err
	}
	return &pipeline{codec: codec, models: models, node: burnerNode}, nil
}

func transcriptionOptions(cfg *config.Config, logger *slog.Logger, progress io.Writer) transcribe.Options {
	t := cfg.Transcription
	return transcribe.Options{
		Engine:       t.Engine,
		Binary:       t.Binary,
		FFmpeg:       cfg.Encoder.FFmpeg,
		ModelDir:     cfg.Paths.ModelDir,
		WeightsURL:   t.WeightsURL,
		AutoDownload: t.AutoDownload,
		Language:     t.Language,
		Threads:      t.Threads,
		CUDA:         t.CUDA,
		VADMethod:    t.VADMethod,
		HFToken:      t.HFToken,
		Logger:       logger,
		Progress:     progress,
	}
}

// progressWriter returns w when it is an interactive terminal, nil otherwise.
func progressWriter(w io.Writer) io.Writer {
	if isTerminal(w) {
		return w
	}
	return nil
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
