package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"subburn/internal/config"
	"subburn/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed || result.Detail == "" {
		t.Fatalf("expected failure with detail for missing dir, got %#v", result)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckModelDirMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "models")
	if result := CheckModelDir(missing, true); !result.Passed {
		t.Fatalf("expected pass when downloads create the dir, got %#v", result)
	}
	if result := CheckModelDir(missing, false); result.Passed {
		t.Fatal("expected failure without auto download")
	}
}

func TestCheckWeights(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Transcription.ModelSize = "tiny"

	cfg.Transcription.AutoDownload = false
	if result := CheckWeights(cfg); result.Passed {
		t.Fatalf("expected missing weights to fail, got %#v", result)
	}

	cfg.Transcription.AutoDownload = true
	if result := CheckWeights(cfg); !result.Passed || !result.Optional {
		t.Fatalf("expected advisory pass with auto download, got %#v", result)
	}

	testsupport.WriteFile(t, filepath.Join(cfg.Paths.ModelDir, "ggml-tiny.bin"), 16)
	if result := CheckWeights(cfg); !result.Passed || result.Optional {
		t.Fatalf("expected cached weights to pass, got %#v", result)
	}
}

func TestCheckSystemDepsWithStubs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	statuses := CheckSystemDeps(context.Background(), cfg)
	byName := map[string]bool{}
	for _, s := range statuses {
		byName[s.Name] = s.Available
	}
	for _, name := range []string{"FFmpeg", "FFprobe", "Transcriber"} {
		if !byName[name] {
			t.Fatalf("expected %s available via stub, got %#v", name, statuses)
		}
	}
	if !byName["FFmpeg subtitles filter"] {
		t.Fatalf("expected stubbed ffmpeg to report the subtitles filter, got %#v", statuses)
	}
}

func TestRunAllFailsWithoutFFmpeg(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Encoder.FFmpeg = "definitely-missing-ffmpeg"
	results := RunAll(context.Background(), cfg)
	if !Failed(results) {
		t.Fatalf("expected a failed result, got %#v", results)
	}
}

func TestFailedIgnoresOptional(t *testing.T) {
	results := []Result{{Name: "a", Passed: true}, {Name: "b", Optional: true}}
	if Failed(results) {
		t.Fatal("optional failures should not fail the run")
	}
	if !Failed(append(results, Result{Name: "c"})) {
		t.Fatal("required failure should fail the run")
	}
	if RunAll(context.Background(), (*config.Config)(nil)) != nil {
		t.Fatal("nil config should yield no results")
	}
}
