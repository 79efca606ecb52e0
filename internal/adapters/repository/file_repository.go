package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

var _ domain.SnapshotRepository = (*FileSnapshotRepository)(nil)

// FileSnapshotRepository stores one JSON document per user under dir.
type FileSnapshotRepository struct {
	dir string
	mu  sync.Mutex
}

func NewFileSnapshotRepository(dir string) (*FileSnapshotRepository, error) {
	if dir == "" {
		return nil, errors.New("file repository: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file repository: create dir: %w", err)
	}
	return &FileSnapshotRepository{dir: dir}, nil
}

func (r *FileSnapshotRepository) path(userID string) string {
	return filepath.Join(r.dir, url.PathEscape(userID)+".json")
}

func (r *FileSnapshotRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("file repository: read: %w", err)
	}

	return domain.DecodeSnapshot(data)
}

func (r *FileSnapshotRepository) Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error {
	if err := checkUserID(userID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := snapshot.Encode()
	if err != nil {
		return fmt.Errorf("file repository: encode: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return atomicWriteFile(r.path(userID), data)
}

// atomicWriteFile writes to a sibling temp file and renames it over path,
// so readers see either the old or the new document.
func atomicWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
