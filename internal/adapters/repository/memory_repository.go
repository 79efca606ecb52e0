package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

var _ domain.SnapshotRepository = (*InMemorySnapshotRepository)(nil)

// InMemorySnapshotRepository keeps encoded documents so callers never share
// memory with the store.
type InMemorySnapshotRepository struct {
	store map[string][]byte

	mu sync.RWMutex
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{
		store: make(map[string][]byte),
	}
}

func (r *InMemorySnapshotRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	data, ok := r.store[userID]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return domain.DecodeSnapshot(data)
}

func (r *InMemorySnapshotRepository) Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error {
	if err := checkUserID(userID); err != nil {
		return err
	}

	data, err := snapshot.Encode()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[userID] = data
	return nil
}

func (r *InMemorySnapshotRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}

func checkUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrInvalidUserID
	}
	return nil
}
