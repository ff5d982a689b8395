package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"subburn/internal/config"
	"subburn/internal/deps"
	"subburn/internal/style"
	"subburn/internal/transcribe"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckModelDir accepts a missing weight cache when downloads will create it.
func CheckModelDir(path string, autoDownload bool) Result {
	const name = "Model directory"
	if _, err := os.Stat(path); os.IsNotExist(err) && autoDownload {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created on first download)", path)}
	}
	return CheckDirectoryAccess(name, path)
}

// CheckWeights reports whether weights for the configured model size are cached.
func CheckWeights(cfg *config.Config) Result {
	name := "Weights (" + cfg.Transcription.ModelSize + ")"
	weights, err := transcribe.LookupWeights(cfg.Transcription.ModelSize)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	fetcher := &transcribe.Fetcher{Dir: cfg.Paths.ModelDir}
	if fetcher.Present(weights) {
		return Result{Name: name, Passed: true, Detail: fetcher.LocalPath(weights)}
	}
	if cfg.Transcription.AutoDownload {
		return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s not cached (downloads on first use, %s)", weights.FileName, weights.SizeLabel)}
	}
	return Result{Name: name, Detail: fmt.Sprintf("%s missing (run 'subburn models pull %s')", weights.FileName, weights.ID)}
}

// CheckSystemDeps evaluates the executables the configured pipeline runs.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	engineBinary := cfg.Transcription.Binary
	engineDesc := "Required for whisper.cpp transcription"
	if engineBinary == "" {
		engineBinary = transcribe.WhisperCppCommand
	}
	if cfg.Transcription.Engine == transcribe.EngineWhisperX {
		engineDesc = "Required for WhisperX-driven transcription"
		if cfg.Transcription.Binary == "" {
			engineBinary = transcribe.UVXCommand
		}
	}

	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Encoder.FFmpeg,
			Description: "Required for encoding and subtitle burning",
			VersionArgs: []string{"-version"},
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Encoder.FFprobe,
			Description: "Required for media inspection",
			VersionArgs: []string{"-version"},
		},
		{
			Name:        "Transcriber",
			Command:     engineBinary,
			Description: engineDesc,
		},
		{
			Name:        "fc-list",
			Command:     "fc-list",
			Description: "Used to confirm caption fonts are installed",
			Optional:    true,
		},
	}
	results := deps.CheckBinaries(ctx, requirements)
	if results[0].Available {
		results = append(results,
			deps.CheckFFmpegFilter(ctx, results[0].Command, "subtitles"),
			deps.CheckFFmpegEncoder(ctx, results[0].Command, cfg.Encoder.VideoCodec),
		)
	}
	return results
}

// CheckFonts asks fontconfig whether each selectable caption font resolves to
// itself. libass silently substitutes missing fonts, so these are advisory.
func CheckFonts(ctx context.Context) []Result {
	if _, err := exec.LookPath("fc-list"); err != nil {
		return nil
	}
	var results []Result
	for _, font := range style.Fonts() {
		name := "Font " + font
		output, err := exec.CommandContext(ctx, "fc-list", font, "family").Output() //nolint:gosec
		if err != nil {
			results = append(results, Result{Name: name, Optional: true, Detail: fmt.Sprintf("fc-list: %v", err)})
			continue
		}
		if strings.Contains(strings.ToLower(string(output)), strings.ToLower(font)) {
			results = append(results, Result{Name: name, Passed: true, Optional: true, Detail: "installed"})
			continue
		}
		results = append(results, Result{Name: name, Optional: true, Detail: "not installed (libass will substitute)"})
	}
	return results
}
