// Package osfilesystem provides a filesystem implementation using the os package.
package osfilesystem

import (
	"os"

	"github.com/user/framegrab/pkg/ports"
)

// FileSystem implements ports.FileSystem using the os package.
type FileSystem struct {
	perm os.FileMode
}

// New creates a new FileSystem writing files with mode 0644.
func New() *FileSystem {
	return &FileSystem{perm: 0644}
}

// WriteFile writes data to a file, truncating it if it exists.
// Parent directories are not created.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, fs.perm)
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
