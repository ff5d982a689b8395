package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"subburn/internal/config"
	"subburn/internal/transcribe"
)

func newModelsCommand(ctx *commandContext) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage whisper.cpp weight files",
	}
	modelsCmd.AddCommand(newModelsListCommand(ctx))
	modelsCmd.AddCommand(newModelsPullCommand(ctx))
	return modelsCmd
}

func newFetcher(cfg *config.Config) *transcribe.Fetcher {
	return &transcribe.Fetcher{
		Dir:          cfg.Paths.ModelDir,
		BaseURL:      cfg.Transcription.WeightsURL,
		AutoDownload: true,
	}
}

func newModelsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known weight files and whether they are cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			fetcher := newFetcher(cfg)

			selectors := make(map[string][]string)
			for _, size := range transcribe.Sizes() {
				id, _ := transcribe.ModelForSize(size)
				selectors[id] = append(selectors[id], size)
			}

			rows := make([][]string, 0, len(transcribe.Catalog()))
			for _, w := range transcribe.Catalog() {
				rows = append(rows, []string{
					w.ID,
					strings.Join(selectors[w.ID], ", "),
					w.SizeLabel,
					yesNo(fetcher.Present(w)),
				})
			}
			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				fmt.Fprint(out, renderPlain(rows))
				return nil
			}
			fmt.Fprintf(out, "Cache: %s\n", cfg.Paths.ModelDir)
			fmt.Fprintln(out, renderTable([]string{"Model", "Size selector", "Download", "Cached"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}
}

func newModelsPullCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <model|size>",
		Short: "Download a weight file into the model cache",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide a model id or size. Example: subburn models pull small")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			weights, err := transcribe.LookupWeights(args[0])
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fetcher := newFetcher(cfg)
			fetcher.Logger = logger
			fetcher.Progress = progressWriter(cmd.ErrOrStderr())

			out := cmd.OutOrStdout()
			if fetcher.Present(weights) {
				fmt.Fprintf(out, "%s already cached at %s\n", weights.ID, fetcher.LocalPath(weights))
				return nil
			}
			path, err := fetcher.Ensure(cmd.Context(), weights)
			if err != nil {
				return fmt.Errorf("download %s: %w", weights.ID, err)
			}
			size := ""
			if info, statErr := os.Stat(path); statErr == nil {
				size = " (" + humanize.Bytes(uint64(info.Size())) + ")"
			}
			fmt.Fprintf(out, "Downloaded %s to %s%s\n", weights.ID, path, size)
			return nil
		},
	}
}
