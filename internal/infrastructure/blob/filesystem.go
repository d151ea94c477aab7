package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FilesystemStore keeps blobs as plain files under a single base
// directory, one file per generated storage name.
type FilesystemStore struct {
	basePath string
	log      *zap.Logger
}

func NewFilesystemStore(basePath string, logger *zap.Logger) (*FilesystemStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &FilesystemStore{
		basePath: basePath,
		log:      logger,
	}, nil
}

func (s *FilesystemStore) Write(name string, data io.Reader) (int64, error) {
	path := s.blobPath(name)

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create blob %s: %w", name, err)
	}
	defer f.Close()

	n, err := io.Copy(f, data)
	if err != nil {
		// partial blob is worse than no blob
		_ = os.Remove(path)
		return 0, fmt.Errorf("failed to write blob %s: %w", name, err)
	}

	return n, nil
}

func (s *FilesystemStore) Read(name string) ([]byte, error) {
	b, err := os.ReadFile(s.blobPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", name, err)
	}

	return b, nil
}

// Delete removes a blob. An already absent blob is a success: metadata
// and disk may have drifted and concurrent reapers race on purpose.
func (s *FilesystemStore) Delete(name string) error {
	if err := os.Remove(s.blobPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", name, err)
	}
	return nil
}

func (s *FilesystemStore) Exists(name string) bool {
	_, err := os.Stat(s.blobPath(name))
	return err == nil
}

// blobPath flattens the name to its base component so a crafted storage
// name can never escape the base directory.
func (s *FilesystemStore) blobPath(name string) string {
	return filepath.Join(s.basePath, filepath.Base(name))
}
