package datafile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/taskmaster/questionbank/internal/domain/entities"
	"github.com/taskmaster/questionbank/internal/infrastructure/config"
)

// DataFile describes the question file backing the record store
type DataFile struct {
	path string
}

// New creates a handle for the configured store file
func New(cfg config.StoreConfig) *DataFile {
	return &DataFile{path: cfg.Path}
}

// Path returns the file path
func (d *DataFile) Path() string {
	return d.path
}

// Initialize creates the file holding only the header row. An existing
// file is left untouched and reported as not created.
func (d *DataFile) Initialize() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return false, &entities.IOError{Op: "mkdir", Path: d.path, Err: err}
	}

	f, err := os.OpenFile(d.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, &entities.IOError{Op: "create", Path: d.path, Err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(entities.Header + "\n"); err != nil {
		return false, &entities.IOError{Op: "write", Path: d.path, Err: err}
	}
	return true, nil
}

// HealthCheck verifies the file exists and can be opened for reading
func (d *DataFile) HealthCheck() error {
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("store health check failed: %w", &entities.IOError{Op: "open", Path: d.path, Err: err})
	}
	return f.Close()
}

// GetFileInfo returns file statistics for the detailed health endpoint
func (d *DataFile) GetFileInfo() map[string]interface{} {
	info, err := os.Stat(d.path)
	if err != nil {
		return map[string]interface{}{
			"path":  d.path,
			"error": err.Error(),
		}
	}

	return map[string]interface{}{
		"path":        d.path,
		"size_bytes":  info.Size(),
		"mode":        info.Mode().String(),
		"modified_at": info.ModTime().UTC().Format(time.RFC3339),
	}
}
