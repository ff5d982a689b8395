package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"subburn/internal/language"
	"subburn/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check executables, fonts, and directories the pipeline needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			out := cmd.OutOrStdout()
			colorize := isTerminal(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			configPath := ctx.configPath
			if configPath == "" {
				configPath = "(defaults)"
			}
			fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Config file:", configPath)
			fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Engine:", cfg.Transcription.Engine)
			fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Model size:", cfg.Transcription.ModelSize)
			fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Language:", languageLabel(cfg.Transcription.Language))
			fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Auto download:", yesNo(cfg.Transcription.AutoDownload))
			fmt.Fprintln(out)

			results := preflight.RunAll(cmd.Context(), cfg)
			for _, line := range renderSectionHeader("Checks", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range results {
				kind := statusOK
				switch {
				case result.Passed:
				case result.Optional:
					kind = statusWarn
				default:
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if preflight.Failed(results) {
				return errors.New("one or more required checks failed")
			}
			return nil
		},
	}
}

func languageLabel(value string) string {
	code, err := language.Normalize(value)
	if err != nil {
		return value + " (unrecognized)"
	}
	if code == "" {
		return "auto-detect"
	}
	return fmt.Sprintf("%s (%s)", language.DisplayName(code), code)
}
