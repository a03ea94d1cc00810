package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lead-capture/pkg/logger"
	"lead-capture/pkg/models"
)

// FileStore keeps all leads in a single JSON array file.
// It does no locking: concurrent writers race and the last write wins.
type FileStore struct {
	path   string
	logger *logger.Logger
}

// NewFileStore creates a store backed by the JSON file at path
func NewFileStore(path string, log *logger.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("data file path is required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &FileStore{path: path, logger: log.WithComponent("file_store")}, nil
}

// Path returns the location of the backing file
func (s *FileStore) Path() string {
	return s.path
}

// ReadAll returns every stored lead. A missing or unparseable file reads as empty.
func (s *FileStore) ReadAll(ctx context.Context) ([]models.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Lead{}, nil
		}
		return nil, fmt.Errorf("error reading data file: %w", err)
	}

	var leads []models.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		s.logger.Warnw("Data file is not a valid lead array, treating as empty",
			"path", s.path,
			"error", err,
		)
		return []models.Lead{}, nil
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return leads, nil
}

// WriteAll serializes leads and replaces the file contents
func (s *FileStore) WriteAll(ctx context.Context, leads []models.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if leads == nil {
		leads = []models.Lead{}
	}

	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding leads: %w", err)
	}

	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("error writing data file: %w", err)
	}
	return nil
}

// writeFileAtomic writes to a sibling temp file and renames it over path
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
