package leaderboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// Store persists ledger entries
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
	Close() error
}

// FileStore keeps the ledger in a plain text file
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a store backed by path. The file need not exist.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the file. A missing file is an empty ledger.
func (s *FileStore) Load() ([]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open leaderboard: %w", err)
	}
	defer f.Close()
	return Parse(f, s.logger), nil
}

// Save rewrites the file via a temp file and rename
func (s *FileStore) Save(entries []Entry) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create leaderboard: %w", err)
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace leaderboard: %w", err)
	}
	return nil
}

// Close is a no-op
func (s *FileStore) Close() error {
	return nil
}
