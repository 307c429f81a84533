package storage

import (
	"io"

	"optest/internal/config"
)

// Storage persists and loads the raw output of the last run (e.g. for verify and the failures viewer).
type Storage interface {
	// Create truncates the capture file and returns a writer for the new run.
	Create() (io.WriteCloser, error)
	Load() (string, error)
	Path() string
}

// FileStorage stores output in a text file under the configured output path.
type FileStorage struct {
	cfg *config.Config
}

// NewFileStorage returns a Storage that reads/writes the config's output path.
func NewFileStorage(cfg *config.Config) *FileStorage {
	return &FileStorage{cfg: cfg}
}
