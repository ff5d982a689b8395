package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Config path: "+env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
}

func TestConfigValidateRejectsBadConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[encoder]\ncrf = 99\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected invalid crf to fail")
	}
}

func TestColorsPlainOutput(t *testing.T) {
	out, _, err := runCLI(t, []string{"colors"}, "")
	if err != nil {
		t.Fatalf("colors: %v", err)
	}
	requireContains(t, out, "Yellow\t#FFFF00\t&H0000FFFF\n")
	if lines := strings.Count(out, "\n"); lines != 86 {
		t.Fatalf("expected 86 palette rows, got %d", lines)
	}

	out, _, err = runCLI(t, []string{"colors", "--alpha", "128"}, "")
	if err != nil {
		t.Fatalf("colors --alpha: %v", err)
	}
	requireContains(t, out, "Black\t#000000\t&H80000000\n")
}

func TestSchemaJSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"schema", "--json"}, "")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var payload struct {
		Name        string           `json:"name"`
		Inputs      []map[string]any `json:"inputs"`
		ReturnNames []string         `json:"return_names"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode schema: %v\n%s", err, out)
	}
	if payload.Name != "AudioSubtitle" || len(payload.Inputs) != 16 || len(payload.ReturnNames) != 3 {
		t.Fatalf("unexpected schema %+v", payload)
	}
	if payload.Inputs[5]["name"] != "Fontsize" || payload.Inputs[5]["default"] != float64(10) {
		t.Fatalf("unexpected font size field %v", payload.Inputs[5])
	}
}

func TestSchemaTable(t *testing.T) {
	out, _, err := runCLI(t, []string{"schema"}, "")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	requireContains(t, out, "AudioSubtitle")
	requireContains(t, out, "5 - 100")
	requireContains(t, out, "tiny | base | small | medium | large")
	requireContains(t, out, "Returns: frames IMAGE, audio AUDIO, fps FLOAT")
}

func TestDoctorReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "== Checks ==")
	requireContains(t, out, "FFmpeg subtitles filter:")
	requireContains(t, out, "(ffmpeg version 7.1-stub)")
	requireContains(t, out, "Model size:")
	if strings.Contains(out, "[ERROR]") {
		t.Fatalf("unexpected failing check:\n%s", out)
	}
}

func TestDoctorFailsWithoutFFmpeg(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Encoder.FFmpeg = filepath.Join(env.baseDir, "missing", "ffmpeg")
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatalf("expected doctor to fail:\n%s", out)
	}
	requireContains(t, out, "[ERROR]")
}

func TestModelsListAndPull(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"models", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("models list: %v", err)
	}
	requireContains(t, out, "small\tsmall\t~466 MB\tyes\n")
	requireContains(t, out, "large-v3\tlarge\t~2.9 GB\tno\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ggml-tiny.bin" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("weights"))
	}))
	defer srv.Close()
	env.cfg.Transcription.WeightsURL = srv.URL
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err = runCLI(t, []string{"models", "pull", "tiny"}, env.configPath)
	if err != nil {
		t.Fatalf("models pull: %v", err)
	}
	requireContains(t, out, "Downloaded tiny to ")
	data, err := os.ReadFile(filepath.Join(env.cfg.Paths.ModelDir, "ggml-tiny.bin"))
	if err != nil || string(data) != "weights" {
		t.Fatalf("expected downloaded weights, got %q (%v)", data, err)
	}

	out, _, err = runCLI(t, []string{"models", "pull", "small"}, env.configPath)
	if err != nil {
		t.Fatalf("models pull cached: %v", err)
	}
	requireContains(t, out, "already cached")

	if _, _, err := runCLI(t, []string{"models", "pull", "huge"}, env.configPath); err == nil {
		t.Fatal("expected unknown model to fail")
	}
}

func TestBurnEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(env.baseDir, "clip.mp4")
	if err := os.WriteFile(source, []byte("source"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dest := filepath.Join(env.baseDir, "out", "clip.subbed.mp4")
	captions := filepath.Join(env.baseDir, "out", "clip.srt")

	out, stderr, err := runCLI(t, []string{
		"burn", "--frames", source, "--out", dest, "--srt-out", captions,
		"--primary-color", "White", "--font-size", "24",
	}, env.configPath)
	if err != nil {
		t.Fatalf("burn: %v\n%s", err, stderr)
	}
	requireContains(t, out, "Wrote "+dest+" (2 frames at 25.00 fps")
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected output video: %v", err)
	}
	data, err := os.ReadFile(captions)
	if err != nil {
		t.Fatalf("read captions: %v", err)
	}
	if string(data) != "1\n00:00:00,000 --> 00:00:01,500\nHello there\n\n" {
		t.Fatalf("unexpected captions %q", data)
	}

	log, err := os.ReadFile(env.stubLog)
	if err != nil {
		t.Fatalf("read ffmpeg log: %v", err)
	}
	requireContains(t, string(log), "subtitles='subtitles.srt':force_style='Fontname=Arial,Fontsize=24,PrimaryColour=&H00FFFFFF")
	requireContains(t, string(log), "-map 0:v -map 1:a output_burned.mp4")

	entries, err := os.ReadDir(env.cfg.Paths.TempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected workspaces removed, found %v", entries)
	}
}

func TestBurnRequiresFramesAndOut(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"burn", "--frames", "clip.mp4"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--frames and --out are required") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestBurnRejectsInvalidStyle(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(env.baseDir, "clip.mp4")
	if err := os.WriteFile(source, []byte("source"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	_, _, err := runCLI(t, []string{"burn", "--frames", source, "--out", filepath.Join(env.baseDir, "o.mp4"), "--alignment", "12"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "subtitle burn failed: validate: style: alignment 12 out of range") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTranscribeWritesSRT(t *testing.T) {
	env := setupCLITestEnv(t)
	source := filepath.Join(env.baseDir, "talk.wav")
	if err := os.WriteFile(source, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, stderr, err := runCLI(t, []string{"transcribe", source}, env.configPath)
	if err != nil {
		t.Fatalf("transcribe: %v\n%s", err, stderr)
	}
	requireContains(t, out, "1 segments, model whisper.cpp small")
	data, err := os.ReadFile(filepath.Join(env.baseDir, "talk.srt"))
	if err != nil || !strings.Contains(string(data), "Hello there") {
		t.Fatalf("expected srt next to source, got %q (%v)", data, err)
	}
}
