package domain

import (
	"context"
	"errors"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidUserID    = errors.New("invalid user id")
)

type SnapshotRepository interface {
	// Load returns the stored snapshot of a user, or ErrSnapshotNotFound when
	// nothing was ever saved for them.
	Load(ctx context.Context, userID string) (*Snapshot, error)

	// Save overwrites the whole snapshot of a user. Concurrent saves resolve
	// as last write wins.
	Save(ctx context.Context, userID string, snapshot *Snapshot) error
}
