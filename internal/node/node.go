package node

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"subburn/internal/command"
	"subburn/internal/encoder"
	"subburn/internal/fileutil"
	"subburn/internal/logging"
	"subburn/internal/media"
	"subburn/internal/srt"
	"subburn/internal/transcribe"
)

// Workspace file names. ffmpeg runs inside the workspace, so the caption
// file is referenced by its bare name in the filter graph.
const (
	AudioFile   = "temp_audio.wav"
	VideoFile   = "input_visual.mp4"
	CaptionFile = "subtitles.srt"
	OutputFile  = "output_burned.mp4"
)

// FrameCodec moves frame batches in and out of video files.
type FrameCodec interface {
	EncodeFrames(ctx context.Context, frames media.Tensor, fps float64, dest string) error
	DecodeFrames(ctx context.Context, path string) (media.Tensor, error)
}

// ModelSource hands out transcription models by size.
type ModelSource interface {
	Acquire(ctx context.Context, size string) (transcribe.Model, error)
}

// SubtitleRenderer burns a caption file into a video.
type SubtitleRenderer interface {
	Burn(ctx context.Context, workDir string, job encoder.Job) (command.Log, error)
}

// Deps are the collaborators of a SubtitleBurner.
type Deps struct {
	Codec  FrameCodec
	Models ModelSource
	Burner SubtitleRenderer
	Logger *slog.Logger
	// TempRoot hosts per-invocation workspaces; empty uses os.TempDir.
	TempRoot string
}

// SubtitleBurner is the node instance. It owns the model cache behind
// Deps.Models for its lifetime.
type SubtitleBurner struct {
	codec    FrameCodec
	models   ModelSource
	burner   SubtitleRenderer
	logger   *slog.Logger
	tempRoot string
}

// New returns a SubtitleBurner. Codec, Models, and Burner are required.
func New(deps Deps) (*SubtitleBurner, error) {
	switch {
	case deps.Codec == nil:
		return nil, errors.New("node: frame codec required")
	case deps.Models == nil:
		return nil, errors.New("node: model source required")
	case deps.Burner == nil:
		return nil, errors.New("node: subtitle renderer required")
	}
	return &SubtitleBurner{
		codec:    deps.Codec,
		models:   deps.Models,
		burner:   deps.Burner,
		logger:   logging.NewComponentLogger(deps.Logger, "node"),
		tempRoot: deps.TempRoot,
	}, nil
}

// Process runs one invocation. Any failure aborts the whole run and is
// returned as "subtitle burn failed: <stage>: <cause>"; the original inputs
// are never returned in place of burned frames.
func (b *SubtitleBurner) Process(ctx context.Context, in Inputs) (out Outputs, err error) {
	ctx = logging.WithInvocationID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, b.logger)
	started := time.Now()

	defer func() {
		if err != nil {
			logger.Error("subtitle burn failed", logging.Error(err))
			err = fmt.Errorf("subtitle burn failed: %w", err)
		}
	}()

	in = in.withDefaults()
	if err := in.Validate(); err != nil {
		return Outputs{}, stageErr(StageValidate, err)
	}

	workspace, err := os.MkdirTemp(b.tempRoot, "subburn-*")
	if err != nil {
		return Outputs{}, stageErr(StageWorkspace, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workspace); rmErr != nil {
			logger.Warn("workspace cleanup failed", logging.String("workspace", workspace), logging.Error(rmErr))
			return
		}
		logger.Debug("workspace removed", logging.String("workspace", workspace))
	}()

	frames, err := b.run(ctx, logger, workspace, in)
	if err != nil {
		return Outputs{}, err
	}

	logger.Info("subtitle burn complete",
		logging.Int("frames", frames.Shape[0]),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return Outputs{Frames: frames, Audio: in.Audio, FPS: in.FPS}, nil
}

// run executes the stages between workspace creation and cleanup.
func (b *SubtitleBurner) run(ctx context.Context, logger *slog.Logger, workspace string, in Inputs) (media.Tensor, error) {
	audioPath := filepath.Join(workspace, AudioFile)
	mono, err := in.Audio.Mono()
	if err != nil {
		return media.Tensor{}, stageErr(StagePersistAudio, err)
	}
	if err := media.WriteWAV(audioPath, mono, in.Audio.SampleRate); err != nil {
		return media.Tensor{}, stageErr(StagePersistAudio, err)
	}

	if err := b.codec.EncodeFrames(ctx, in.Frames, in.FPS, filepath.Join(workspace, VideoFile)); err != nil {
		return media.Tensor{}, stageErr(StagePersistVideo, err)
	}

	model, err := b.models.Acquire(ctx, in.ModelSize)
	if err != nil {
		return media.Tensor{}, stageErr(StageLoadModel, err)
	}

	segments, err := model.Transcribe(ctx, audioPath, workspace)
	if err != nil {
		return media.Tensor{}, stageErr(StageTranscribe, err)
	}
	logger.Info("transcribed audio", logging.String("model", model.Name()), logging.Int("segments", len(segments)))

	captionPath := filepath.Join(workspace, CaptionFile)
	if err := srt.Write(captionPath, segments); err != nil {
		return media.Tensor{}, stageErr(StageWriteCaptions, err)
	}
	if in.CaptionOut != "" {
		if err := fileutil.CopyFile(captionPath, in.CaptionOut); err != nil {
			return media.Tensor{}, stageErr(StageExportCaptions, err)
		}
		logger.Info("captions exported", logging.String("path", in.CaptionOut))
	}

	forceStyle := in.Style.String()
	logger.Info("style config", logging.String("style", forceStyle))

	job := encoder.Job{
		Video:    VideoFile,
		Audio:    AudioFile,
		Captions: CaptionFile,
		Style:    forceStyle,
		Output:   OutputFile,
	}
	if _, err := b.burner.Burn(ctx, workspace, job); err != nil {
		return media.Tensor{}, stageErr(StageBurn, err)
	}

	outputPath := filepath.Join(workspace, OutputFile)
	info, err := os.Stat(outputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return media.Tensor{}, stageErr(StageBurn, ErrOutputMissing)
		}
		return media.Tensor{}, stageErr(StageBurn, err)
	}
	logger.Debug("burned video written", logging.Bytes("size", info.Size()))

	frames, err := b.codec.DecodeFrames(ctx, outputPath)
	if err != nil {
		return media.Tensor{}, stageErr(StageDecode, err)
	}
	return frames, nil
}
