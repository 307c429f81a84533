package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Path returns the capture file location.
func (s *FileStorage) Path() string {
	return s.cfg.GetOutputPath()
}

// Create opens the capture file for writing, creating the output directory if needed.
func (s *FileStorage) Create() (io.WriteCloser, error) {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "create output dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create output file")
	}
	return f, nil
}

// Load reads the output captured by the last run.
func (s *FileStorage) Load() (string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return "", errors.Wrap(err, "read output file")
	}
	return string(data), nil
}
