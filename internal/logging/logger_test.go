package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subburn/internal/config"
	"subburn/internal/logging"
)

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "node").Info("message without caller", logging.Int("frames", 3))

	line := buf.String()
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
	if !strings.Contains(line, "INFO node: message without caller frames=3") {
		t.Fatalf("unexpected console line %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("json message", logging.String("model", "small"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json record: %v (%q)", err, buf.String())
	}
	if record["msg"] != "json message" || record["level"] != "info" || record["model"] != "small" {
		t.Fatalf("unexpected record %#v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts key")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected format error")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "chatty", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFileSinkWritesJSON(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "subburn.log")
	logger, err := logging.New(logging.Options{Output: &console, File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("to both", logging.String("stage", "encode"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to both"`) {
		t.Fatalf("file sink missing record: %q", data)
	}
	if !strings.Contains(console.String(), "to both") {
		t.Fatalf("console missing record: %q", console.String())
	}
}

func TestNewFromConfigUsesLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Warn("config logger")
	if _, err := os.Stat(filepath.Join(cfg.Paths.LogDir, logging.LogFileName)); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestWithContextAddsInvocationID(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithInvocationID(context.Background(), "0123456789abcdef")
	logging.WithContext(ctx, base).Info("tagged")
	if !strings.Contains(buf.String(), "[01234567] tagged") {
		t.Fatalf("expected short invocation id prefix, got %q", buf.String())
	}

	if id, ok := logging.InvocationIDFromContext(ctx); !ok || id != "0123456789abcdef" {
		t.Fatalf("unexpected id %q (%v)", id, ok)
	}
	if _, ok := logging.InvocationIDFromContext(context.Background()); ok {
		t.Fatal("expected no id on bare context")
	}
}
