package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/schollz/progressbar/v3"

	"subburn/internal/logging"
)

// ErrWeightsMissing is returned when weights are absent and downloads are
// disabled.
var ErrWeightsMissing = errors.New("model weights not found")

const lockRetryDelay = 500 * time.Millisecond

// Fetcher resolves weight files in a local directory, downloading missing
// ones when allowed.
type Fetcher struct {
	Dir          string
	BaseURL      string
	AutoDownload bool
	Client       *http.Client
	// Progress receives a progress bar while downloading; nil disables it.
	Progress io.Writer
	Logger   *slog.Logger
}

// LocalPath returns where w lives in the cache directory.
func (f *Fetcher) LocalPath(w Weights) string {
	return filepath.Join(f.Dir, w.FileName)
}

// Present reports whether w is already cached.
func (f *Fetcher) Present(w Weights) bool {
	info, err := os.Stat(f.LocalPath(w))
	return err == nil && !info.IsDir() && info.Size() > 0
}

// Ensure returns the local path of w, downloading it first when missing.
// Concurrent processes sharing Dir serialize on a lock file next to the
// weights.
func (f *Fetcher) Ensure(ctx context.Context, w Weights) (string, error) {
	path := f.LocalPath(w)
	if f.Present(w) {
		return path, nil
	}
	if !f.AutoDownload {
		return "", fmt.Errorf("%w: %s (run 'subburn models pull %s')", ErrWeightsMissing, path, w.ID)
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("lock %s: %w", w.FileName, err)
	}
	if !locked {
		return "", fmt.Errorf("lock %s: not acquired", w.FileName)
	}
	defer func() { _ = lock.Unlock() }()

	// Another process may have finished the download while we waited.
	if f.Present(w) {
		return path, nil
	}
	if err := f.download(ctx, w, path); err != nil {
		return "", err
	}
	return path, nil
}

func (f *Fetcher) download(ctx context.Context, w Weights, dest string) error {
	logger := logging.NewComponentLogger(f.Logger, "weights")
	url := w.URL(f.BaseURL)
	logger.Info("downloading model weights",
		logging.String("model", w.ID),
		logging.String("url", url),
		logging.String("expected_size", w.SizeLabel),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("download %s: %w", w.FileName, err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", w.FileName, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", w.FileName, resp.Status)
	}

	partial := dest + ".part"
	out, err := os.Create(partial)
	if err != nil {
		return fmt.Errorf("download %s: %w", w.FileName, err)
	}
	defer os.Remove(partial)

	var sink io.Writer = out
	var bar *progressbar.ProgressBar
	if f.Progress != nil {
		bar = progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(f.Progress),
			progressbar.OptionSetDescription(w.FileName),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		sink = io.MultiWriter(out, bar)
	} else if resp.ContentLength > 0 {
		sink = io.MultiWriter(out, &progressLogger{
			logger:  logger,
			model:   w.ID,
			sampler: logging.NewProgressSampler(resp.ContentLength, 25),
		})
	}

	written, err := io.Copy(sink, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("download %s: %w", w.FileName, err)
	}
	if written == 0 {
		return fmt.Errorf("download %s: empty response", w.FileName)
	}
	if err := os.Rename(partial, dest); err != nil {
		return fmt.Errorf("download %s: %w", w.FileName, err)
	}

	logger.Info("model weights downloaded",
		logging.String("model", w.ID),
		logging.String("path", dest),
		logging.Bytes("size", written),
	)
	return nil
}

// progressLogger reports sampled download progress when no terminal bar is
// attached.
type progressLogger struct {
	logger  *slog.Logger
	model   string
	sampler *logging.ProgressSampler
	written int64
}

func (p *progressLogger) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if percent, ok := p.sampler.Observe(p.written); ok {
		p.logger.Info("download progress",
			logging.String("model", p.model),
			logging.Float64("percent", percent),
			logging.Bytes("received", p.written),
		)
	}
	return len(b), nil
}
