package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func TestInMemorySnapshotRepository(t *testing.T) {
	runSnapshotRepositoryContract(t, NewInMemorySnapshotRepository())
}

func TestInMemorySnapshotRepository_NoSharedMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemorySnapshotRepository()

	s := sampleSnapshot()
	require.NoError(t, repo.Save(ctx, "u1", s))
	s.CheckIns[0].Date = "1999-01-01"

	got, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	got.Triggers[0].Situation = "changed"

	again, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15", again.CheckIns[0].Date)
	assert.Equal(t, "Traffic", again.Triggers[0].Situation)
	assert.Equal(t, 1, repo.Len())

	_, err = repo.Load(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}
