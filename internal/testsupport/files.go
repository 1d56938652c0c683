package testsupport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"termplay/internal/frames"
)

// WriteArtifact creates a fake downloaded file of size bytes in dir and
// returns its path. A size <= 0 writes a single byte.
func WriteArtifact(t testing.TB, dir, name string, size int64) string {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x42}, int(size)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFrames writes count text frames into workspace, each containing
// "<frame N>", and returns the workspace path.
func WriteFrames(t testing.TB, workspace string, count int) string {
	t.Helper()

	if err := os.MkdirAll(frames.Dir(workspace), 0o755); err != nil {
		t.Fatalf("mkdir frames: %v", err)
	}
	for n := 1; n <= count; n++ {
		content := fmt.Sprintf("<frame %d>", n)
		if err := os.WriteFile(frames.TextPath(workspace, n), []byte(content), 0o644); err != nil {
			t.Fatalf("write frame %d: %v", n, err)
		}
	}
	return workspace
}
