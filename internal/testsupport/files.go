package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path (and its parents) holding size filler bytes. A size
// <= 0 writes a single byte so the file is never empty.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()
	if size <= 0 {
		size = 1
	}
	write(t, path, bytes.Repeat([]byte{0x42}, int(size)), 0o644)
}

// WriteScript writes an executable shell script used to stand in for an
// external tool.
func WriteScript(t testing.TB, path, body string) {
	t.Helper()
	write(t, path, []byte(body), 0o755)
}

func write(t testing.TB, path string, data []byte, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
