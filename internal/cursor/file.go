package cursor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pagefeed/internal/domain"
)

const (
	stateDirPerm  = 0o755
	stateFilePerm = 0o644
)

// FileStore keeps one JSON cursor file per source under a state
// directory. This is the default backend.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(sourceID string) string {
	return filepath.Join(s.dir, sourceID+".json")
}

// Load reads the cursor for sourceID. A missing file is the expected
// cold-start case and returns (nil, nil).
func (s *FileStore) Load(ctx context.Context, sourceID string) (*domain.Cursor, error) {
	data, err := os.ReadFile(s.path(sourceID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cursor for %s: %w", sourceID, err)
	}

	var c domain.Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cursor for %s: %w", sourceID, err)
	}
	return &c, nil
}

// Save writes the cursor for sourceID, creating the state directory on
// first use. The write goes through a temp file and rename.
func (s *FileStore) Save(ctx context.Context, sourceID string, c domain.Cursor) error {
	if err := os.MkdirAll(s.dir, stateDirPerm); err != nil {
		return fmt.Errorf("create state dir %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(&c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cursor for %s: %w", sourceID, err)
	}

	tmp := s.path(sourceID) + ".tmp"
	if err := os.WriteFile(tmp, data, stateFilePerm); err != nil {
		return fmt.Errorf("write cursor for %s: %w", sourceID, err)
	}
	if err := os.Rename(tmp, s.path(sourceID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename cursor for %s: %w", sourceID, err)
	}
	return nil
}
