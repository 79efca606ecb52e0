package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func sampleSnapshot() *domain.Snapshot {
	unlocked := time.Date(2026, 10, 14, 7, 0, 0, 0, time.UTC)

	s := domain.NewSnapshot()
	s.AddCheckIn(domain.CheckIn{Date: "2026-10-14", CheckInAnswers: domain.CheckInAnswers{ReactedCalmly: true, WasKinder: true}})
	s.AddCheckIn(domain.CheckIn{Date: "2026-10-15", CheckInAnswers: domain.CheckInAnswers{FeltRelaxed: true}})
	s.AddJournalEntry(domain.JournalEntry{ID: "j1", Timestamp: unlocked, Gratitude: "Tea with Sam & Jo", Emotion: "grateful", EmotionGlyph: "🙏"})
	s.AddTrigger(domain.TriggerEntry{ID: "t1", Timestamp: unlocked, Situation: "Traffic", Reaction: "Breathed", Emotion: "stressed", Intensity: 6})
	s.CurrentStreak = 2
	s.LongestStreak = 5
	s.Milestones[0].UnlockedAt = &unlocked
	s.UpdatedAt = unlocked
	return s
}

// runSnapshotRepositoryContract exercises the behaviour every backend shares.
func runSnapshotRepositoryContract(t *testing.T, repo domain.SnapshotRepository) {
	ctx := context.Background()

	t.Run("Unknown user is not found", func(t *testing.T) {
		_, err := repo.Load(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Empty user id is rejected", func(t *testing.T) {
		_, err := repo.Load(ctx, "")
		assert.ErrorIs(t, err, domain.ErrInvalidUserID)
		assert.ErrorIs(t, repo.Save(ctx, " ", domain.NewSnapshot()), domain.ErrInvalidUserID)
	})

	t.Run("Save then load round-trips", func(t *testing.T) {
		want := sampleSnapshot()
		require.NoError(t, repo.Save(ctx, "user/with:odd chars", want))

		got, err := repo.Load(ctx, "user/with:odd chars")
		require.NoError(t, err)

		assert.Equal(t, want.CheckInDates(), got.CheckInDates())
		assert.True(t, got.CheckIns[1].ReactedCalmly)
		assert.Equal(t, "Tea with Sam & Jo", got.JournalEntries[0].Gratitude)
		assert.Equal(t, "🙏", got.JournalEntries[0].EmotionGlyph)
		assert.Equal(t, 6, got.Triggers[0].Intensity)
		assert.Equal(t, 2, got.CurrentStreak)
		assert.Equal(t, 5, got.LongestStreak)
		require.NotNil(t, got.Milestones[0].UnlockedAt)
		assert.True(t, want.Milestones[0].UnlockedAt.Equal(*got.Milestones[0].UnlockedAt))
	})

	t.Run("Save overwrites (last write wins)", func(t *testing.T) {
		first := sampleSnapshot()
		require.NoError(t, repo.Save(ctx, "u-overwrite", first))

		second := domain.NewSnapshot()
		second.LongestStreak = 1
		require.NoError(t, repo.Save(ctx, "u-overwrite", second))

		got, err := repo.Load(ctx, "u-overwrite")
		require.NoError(t, err)
		assert.Empty(t, got.CheckIns)
		assert.Equal(t, 1, got.LongestStreak)
	})

	t.Run("Users are isolated", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "u-a", sampleSnapshot()))
		require.NoError(t, repo.Save(ctx, "u-b", domain.NewSnapshot()))

		b, err := repo.Load(ctx, "u-b")
		require.NoError(t, err)
		assert.Empty(t, b.CheckIns)
	})
}
