package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// WriteFile writes data to a file, replacing any existing content.
	// The parent directory must already exist.
	WriteFile(path string, data []byte) error
}
