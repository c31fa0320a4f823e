package delivery

import (
	"fmt"
	"os"
	"path/filepath"
)

// OSFileSystem is the FileSystem implementation backed by the local
// operating system. Report files are created with 0600 permissions and
// parent directories with 0750: reports can carry business figures, so
// they stay private to the owning user.
type OSFileSystem struct{}

// NewOSFileSystem creates a FileSystem writing to the local disk.
func NewOSFileSystem() *OSFileSystem { return &OSFileSystem{} }

// WriteFile persists data at path, creating parent directories as needed.
func (f *OSFileSystem) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
