package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"subburn/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.TempDir = filepath.Join(base, "tmp")
	cfgVal.Paths.ModelDir = filepath.Join(base, "models")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Transcription.AutoDownload = false
	for _, dir := range []string{cfgVal.Paths.TempDir, cfgVal.Paths.ModelDir, cfgVal.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithModelSize overrides the transcription model size on the test config.
func WithModelSize(size string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transcription.ModelSize = size
	}
}

// ffmpegStub answers the capability listings preflight asks for and
// succeeds for everything else.
const ffmpegStub = `#!/bin/sh
for arg in "$@"; do
  case "$arg" in
    -filters)
      echo " ... subtitles         V->V       Render text subtitles onto input video using the libass library."
      exit 0 ;;
    -encoders)
      echo " V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC"
      exit 0 ;;
  esac
done
exit 0
`

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg, ffprobe, and whisper-cli
// are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe", "whisper-cli"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		for _, name := range names {
			script := "#!/bin/sh\nexit 0\n"
			if name == "ffmpeg" {
				script = ffmpegStub
			}
			WriteScript(b.t, filepath.Join(binDir, name), script)
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ModelDir)
}
