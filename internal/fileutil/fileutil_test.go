package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "subtitles.srt")
	dst := filepath.Join(dir, "out", "nested", "captions.srt")

	content := []byte("1\n00:00:00,000 --> 00:00:01,000\nhello\n\n")
	if err := os.WriteFile(src, content, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("unexpected mode %v", info.Mode().Perm())
	}
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("much older content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Fatalf("expected truncated overwrite, got %q", got)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, err := os.Stat(filepath.Join(dir, "dst")); !os.IsNotExist(err) {
		t.Fatal("destination should not be created")
	}
}

func TestCopyFileLeavesNoStagingFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.srt")
	if err := os.WriteFile(src, []byte("caption"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	if err := CopyFile(src, filepath.Join(out, "captions.srt")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "captions.srt" {
		t.Fatalf("expected only the copied file, got %v", entries)
	}
}

func TestCopyFileSourceIsDirectory(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out", "dst")
	if err := CopyFile(dir, dst); err == nil {
		t.Fatal("expected error copying a directory")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatal("destination should not be created")
	}
}
