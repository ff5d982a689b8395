package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/srt"
	"subburn/internal/transcribe"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var modelSize string

	cmd := &cobra.Command{
		Use:   "transcribe <media-file>",
		Short: "Write an SRT caption file for a media file without burning it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the path to an audio or video file. Example: subburn transcribe interview.mp4")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			source, err := filepath.Abs(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve source: %w", err)
			}
			if err := requireFile(source); err != nil {
				return err
			}
			size := cfg.Transcription.ModelSize
			if cmd.Flags().Changed("model") {
				size = strings.ToLower(strings.TrimSpace(modelSize))
			}
			if err := transcribe.ValidateSize(size); err != nil {
				return err
			}
			dest := strings.TrimSpace(outputPath)
			if dest == "" {
				dest = strings.TrimSuffix(source, filepath.Ext(source)) + ".srt"
			}

			logger, err := ctx.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			loader, err := transcribe.NewLoader(transcriptionOptions(cfg, logger, progressWriter(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			model, err := loader.Load(cmd.Context(), size)
			if err != nil {
				return fmt.Errorf("load %s model: %w", size, err)
			}

			workDir, err := os.MkdirTemp(cfg.Paths.TempDir, "subburn-transcribe-*")
			if err != nil {
				return fmt.Errorf("create work directory: %w", err)
			}
			defer os.RemoveAll(workDir)

			segments, err := model.Transcribe(cmd.Context(), source, workDir)
			if err != nil {
				return fmt.Errorf("transcription failed: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("ensure output directory: %w", err)
			}
			if err := srt.Write(dest, segments); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d segments, model %s)\n", dest, len(segments), model.Name())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Destination SRT file (default: alongside the source)")
	cmd.Flags().StringVar(&modelSize, "model", "", "Model size: tiny, base, small, medium, large (default: config)")
	return cmd
}
