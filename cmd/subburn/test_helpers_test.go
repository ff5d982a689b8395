package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"subburn/internal/config"
	"subburn/internal/testsupport"
)

const cliFFmpegStub = `#!/bin/sh
[ -n "$STUB_LOG" ] && echo "$@" >> "$STUB_LOG"
last=""
audio=0
for arg in "$@"; do
  case "$arg" in
    -filters) echo " ... subtitles         V->V       Render text subtitles onto input video using the libass library."; exit 0 ;;
    -encoders) echo " V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC"; exit 0 ;;
    -version) echo "ffmpeg version 7.1-stub"; exit 0 ;;
    f32le) audio=1 ;;
  esac
  last="$arg"
done
if [ "$last" = "pipe:1" ]; then
  if [ "$audio" = 1 ]; then
    printf '\000\000\200\077\000\000\000\000'
  else
    printf '\377\000\000\000\377\000'
  fi
  exit 0
fi
cat > /dev/null
printf 'video' > "$last"
`

const cliFFprobeStub = `#!/bin/sh
[ "$1" = "-version" ] && { echo "ffprobe version 7.1-stub"; exit 0; }
cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","width":1,"height":1,"avg_frame_rate":"25/1"},{"index":1,"codec_type":"audio","sample_rate":"16000","channels":2}],"format":{"duration":"0.08"}}
JSON
`

const cliWhisperStub = `#!/bin/sh
out=""
while [ $# -gt 0 ]; do
  [ "$1" = "-of" ] && out="$2"
  shift
done
cat > "$out.json" <<'JSON'
{"transcription":[{"offsets":{"from":0,"to":1500},"text":" Hello there"}]}
JSON
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	stubLog    string
}

// setupCLITestEnv writes a config whose ffmpeg, ffprobe, and whisper-cli
// point at stub scripts, with the small weights already cached.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	for _, key := range []string{"SUBBURN_FFMPEG", "SUBBURN_FFPROBE", "SUBBURN_MODEL_DIR", "SUBBURN_WHISPER_BINARY"} {
		t.Setenv(key, "")
	}

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	bin := filepath.Join(base, "bin")
	cfg.Encoder.FFmpeg = filepath.Join(bin, "ffmpeg")
	cfg.Encoder.FFprobe = filepath.Join(bin, "ffprobe")
	cfg.Transcription.Binary = filepath.Join(bin, "whisper-cli")
	testsupport.WriteScript(t, cfg.Encoder.FFmpeg, cliFFmpegStub)
	testsupport.WriteScript(t, cfg.Encoder.FFprobe, cliFFprobeStub)
	testsupport.WriteScript(t, cfg.Transcription.Binary, cliWhisperStub)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.ModelDir, "ggml-small.bin"), 64)

	stubLog := filepath.Join(base, "ffmpeg.log")
	t.Setenv("STUB_LOG", stubLog)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base, stubLog: stubLog}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
