package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"subburn/internal/config"
	"subburn/internal/logging"
	"subburn/internal/node"
	"subburn/internal/preflight"
)

func newBurnCommand(ctx *commandContext) *cobra.Command {
	var framesPath string
	var audioPath string
	var outputPath string
	var fps float64
	var modelSize string
	var srtOut string
	var sf *styleFlags

	cmd := &cobra.Command{
		Use:   "burn --frames <video> --out <video>",
		Short: "Transcribe a video's speech and burn the captions into its frames",
		Long: `Decodes the frames of --frames and the audio of --audio (defaults to the
audio track of --frames), runs the subtitle burner, and writes the burned
frames with the original audio to --out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			framesPath = strings.TrimSpace(framesPath)
			outputPath = strings.TrimSpace(outputPath)
			if framesPath == "" || outputPath == "" {
				return errors.New("--frames and --out are required. Example: subburn burn --frames clip.mp4 --out clip.subbed.mp4")
			}
			audioSource := strings.TrimSpace(audioPath)
			if audioSource == "" {
				audioSource = framesPath
			}
			for _, path := range []string{framesPath, audioSource} {
				if err := requireFile(path); err != nil {
					return err
				}
			}

			logger, err := ctx.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := requireSystemDeps(cmd.Context(), cfg); err != nil {
				return err
			}
			p, err := newPipeline(cfg, logger, progressWriter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			in := node.Inputs{
				FPS:        fps,
				ModelSize:  cfg.Transcription.ModelSize,
				Style:      sf.apply(cmd, cfg.StyleConfig()),
				CaptionOut: strings.TrimSpace(srtOut),
			}
			if cmd.Flags().Changed("model") {
				in.ModelSize = strings.ToLower(strings.TrimSpace(modelSize))
			}
			if !cmd.Flags().Changed("fps") {
				in.FPS = probeFPS(cmd.Context(), p, framesPath)
			}

			if in.Frames, err = p.codec.DecodeFrames(cmd.Context(), framesPath); err != nil {
				return err
			}
			if in.Audio, err = p.codec.DecodeAudio(cmd.Context(), audioSource); err != nil {
				return err
			}
			logger.Info("inputs decoded",
				logging.Int("frames", in.Frames.Shape[0]),
				logging.Float64("fps", in.FPS),
				logging.Int("sample_rate", in.Audio.SampleRate),
			)

			out, err := p.node.Process(cmd.Context(), in)
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.Context(), cfg, p, out, outputPath); err != nil {
				return err
			}
			size := ""
			if info, err := os.Stat(outputPath); err == nil {
				size = ", " + humanize.Bytes(uint64(info.Size()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames at %.2f fps%s)\n", outputPath, out.Frames.Shape[0], out.FPS, size)
			if in.CaptionOut != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote captions to %s\n", in.CaptionOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&framesPath, "frames", "", "Video file supplying the frames")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Media file supplying the audio (default: the --frames file)")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Destination video")
	cmd.Flags().Float64Var(&fps, "fps", node.DefaultFPS, "Frame rate (default: probed from --frames)")
	cmd.Flags().StringVar(&modelSize, "model", "", "Model size: tiny, base, small, medium, large (default: config)")
	cmd.Flags().StringVar(&srtOut, "srt-out", "", "Also save the generated SRT file here")
	sf = addStyleFlags(cmd)

	return cmd
}

// probeFPS reads the source frame rate, clamped to the node's accepted
// range. Unknown rates fall back to the node default.
func probeFPS(ctx context.Context, p *pipeline, path string) float64 {
	rate, err := p.codec.ProbeFrameRate(ctx, path)
	if err != nil || rate <= 0 {
		return node.DefaultFPS
	}
	return min(max(rate, node.MinFPS), node.MaxFPS)
}

func writeOutput(ctx context.Context, cfg *config.Config, p *pipeline, out node.Outputs, dest string) error {
	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure output directory: %w", err)
		}
	}
	staging, err := os.MkdirTemp(cfg.Paths.TempDir, "subburn-out-*")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)
	return p.codec.WriteVideo(ctx, out.Frames, out.FPS, out.Audio, filepath.Join(staging, "audio.wav"), dest)
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file %q not found", path)
		}
		return fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path %q is a directory", path)
	}
	return nil
}

// requireSystemDeps fails fast when a required executable is missing.
func requireSystemDeps(ctx context.Context, cfg *config.Config) error {
	for _, status := range preflight.CheckSystemDeps(ctx, cfg) {
		if status.Available || status.Optional {
			continue
		}
		return fmt.Errorf("%s unavailable: %s (run 'subburn doctor' for details)", status.Name, status.Detail)
	}
	return nil
}
