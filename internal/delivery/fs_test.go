package delivery

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestOSFileSystemWriteFile tests writing through nested directories.
func TestOSFileSystemWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "2024", "report_sales.pdf")

	fs := NewOSFileSystem()
	if err := fs.WriteFile(path, []byte("rendered report")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if string(got) != "rendered report" {
		t.Errorf("got %q, expected %q", got, "rendered report")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	}
}

// TestOSFileSystemOverwrite tests that a second delivery to the same path
// replaces the file content.
func TestOSFileSystemOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.txt")
	fs := NewOSFileSystem()

	if err := fs.WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fs.WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back file: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("got %q, expected %q", got, "second")
	}
}
