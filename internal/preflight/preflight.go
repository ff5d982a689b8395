package preflight

import (
	"context"
	"os"

	"subburn/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional results never fail a run.
	Optional bool
	Detail   string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	tempDir := cfg.Paths.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	results = append(results, CheckDirectoryAccess("Workspace root", tempDir))

	if cfg.Transcription.Engine == "whispercpp" {
		results = append(results, CheckModelDir(cfg.Paths.ModelDir, cfg.Transcription.AutoDownload))
		results = append(results, CheckWeights(cfg))
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	for _, status := range CheckSystemDeps(ctx, cfg) {
		detail := status.Command
		switch {
		case !status.Available:
			detail = status.Detail
		case status.Version != "":
			detail = status.Command + " (" + status.Version + ")"
		}
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Optional: status.Optional,
			Detail:   detail,
		})
	}

	results = append(results, CheckFonts(ctx)...)
	return results
}

// Failed reports whether any required result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
