package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func TestDecodeSnapshot(t *testing.T) {
	t.Run("Empty document yields defaults", func(t *testing.T) {
		s, err := domain.DecodeSnapshot(nil)

		require.NoError(t, err)
		assert.NotNil(t, s.CheckIns)
		assert.NotNil(t, s.JournalEntries)
		assert.NotNil(t, s.Triggers)
		assert.Len(t, s.Milestones, len(domain.DefaultMilestones()))
	})

	t.Run("Missing fields default, known fields survive", func(t *testing.T) {
		s, err := domain.DecodeSnapshot([]byte(`{"check_ins":[{"date":"2026-10-14","reacted_calmly":true}],"longest_streak":9}`))

		require.NoError(t, err)
		require.Len(t, s.CheckIns, 1)
		assert.True(t, s.CheckIns[0].ReactedCalmly)
		assert.Equal(t, 9, s.LongestStreak)
		assert.Empty(t, s.Triggers)
		assert.Empty(t, s.JournalEntries)
	})

	t.Run("Restores one check-in per day, newest first", func(t *testing.T) {
		s, err := domain.DecodeSnapshot([]byte(`{"check_ins":[
			{"date":"2026-10-13"},
			{"date":"2026-10-15","was_kinder":true},
			{"date":"2026-10-15"},
			{"date":"bogus"}
		],"current_streak":-2}`))

		require.NoError(t, err)
		assert.Equal(t, []string{"2026-10-15", "2026-10-13"}, s.CheckInDates())
		assert.True(t, s.CheckIns[0].WasKinder, "first occurrence wins")
		assert.Equal(t, 0, s.CurrentStreak)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := domain.DecodeSnapshot([]byte(`{"check_ins":`))
		assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	})
}

func TestSnapshot_EncodeRoundTrip(t *testing.T) {
	s := domain.NewSnapshot()
	s.AddCheckIn(checkIn("2026-10-15", 4))
	s.AddTrigger(domain.TriggerEntry{ID: "t1", Situation: "Traffic", Intensity: 6, Timestamp: time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)})

	data, err := s.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"check_ins"`)
	assert.Contains(t, string(data), `"longest_streak"`)

	back, err := domain.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, s.CheckInDates(), back.CheckInDates())
	assert.Equal(t, "Traffic", back.Triggers[0].Situation)
}

func TestSnapshot_AddCheckIn(t *testing.T) {
	s := domain.NewSnapshot()

	assert.True(t, s.AddCheckIn(checkIn("2026-10-14", 2)))
	assert.True(t, s.AddCheckIn(checkIn("2026-10-15", 3)))
	assert.Equal(t, []string{"2026-10-15", "2026-10-14"}, s.CheckInDates())

	t.Run("Duplicate date is a no-op", func(t *testing.T) {
		assert.False(t, s.AddCheckIn(checkIn("2026-10-15", 5)))

		c, ok := s.FindCheckIn("2026-10-15")
		require.True(t, ok)
		assert.Equal(t, 3, c.TrueCount(), "original answers kept")
		assert.Len(t, s.CheckIns, 2)
	})
}

func TestSnapshot_AddEntriesPrepend(t *testing.T) {
	s := domain.NewSnapshot()
	s.AddJournalEntry(domain.JournalEntry{ID: "j1"})
	s.AddJournalEntry(domain.JournalEntry{ID: "j2"})
	s.AddTrigger(domain.TriggerEntry{ID: "t1"})
	s.AddTrigger(domain.TriggerEntry{ID: "t2"})

	assert.Equal(t, "j2", s.JournalEntries[0].ID)
	assert.Equal(t, "t2", s.Triggers[0].ID)
}

func TestSnapshot_Reconcile(t *testing.T) {
	now := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)

	s := domain.NewSnapshot()
	for _, d := range []string{"2026-10-13", "2026-10-14", "2026-10-15"} {
		s.AddCheckIn(checkIn(d, 3))
	}

	changed, unlocked := s.Reconcile("2026-10-15", now)

	assert.True(t, changed)
	require.NotNil(t, unlocked)
	assert.Equal(t, "checkins-1", unlocked.ID)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
	assert.True(t, findMilestone(t, s.Milestones, "streak-3").Unlocked())

	t.Run("Second call is stable", func(t *testing.T) {
		changed, unlocked := s.Reconcile("2026-10-15", now)
		assert.False(t, changed)
		assert.Nil(t, unlocked)
	})

	t.Run("Stale streak decays, longest survives", func(t *testing.T) {
		changed, _ := s.Reconcile("2026-10-20", now.AddDate(0, 0, 5))
		assert.True(t, changed)
		assert.Equal(t, 0, s.CurrentStreak)
		assert.Equal(t, 3, s.LongestStreak)
	})
}

func TestSnapshot_Clone(t *testing.T) {
	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	s := domain.NewSnapshot()
	s.AddCheckIn(checkIn("2026-10-15", 1))
	s.Milestones[0].UnlockedAt = &at

	c := s.Clone()
	c.AddCheckIn(checkIn("2026-10-16", 1))
	c.CheckIns[len(c.CheckIns)-1].WasKinder = true
	*c.Milestones[0].UnlockedAt = at.AddDate(1, 0, 0)

	assert.Len(t, s.CheckIns, 1)
	assert.False(t, s.CheckIns[0].WasKinder)
	assert.Equal(t, at, *s.Milestones[0].UnlockedAt)
}

func TestDecodeSnapshot_MilestonesWithoutIDKeepUnlockTime(t *testing.T) {
	s, err := domain.DecodeSnapshot([]byte(`{
		"check_ins":[{"date":"2024-05-31"}],
		"milestones":[{"type":"checkins","threshold":1,"unlocked_at":"2024-01-01T10:00:00Z"}]
	}`))
	require.NoError(t, err)

	unlockedAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	first := findMilestone(t, s.Milestones, "checkins-1")
	require.NotNil(t, first.UnlockedAt)
	assert.True(t, unlockedAt.Equal(*first.UnlockedAt))

	_, unlocked := s.Reconcile("2024-06-01", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	assert.Nil(t, unlocked)
	assert.True(t, unlockedAt.Equal(*findMilestone(t, s.Milestones, "checkins-1").UnlockedAt))
}

func TestSnapshot_Absorb(t *testing.T) {
	stored := domain.NewSnapshot()
	stored.AddCheckIn(domain.CheckIn{Date: "2026-10-13", CheckInAnswers: domain.CheckInAnswers{WasKinder: true}})
	stored.AddJournalEntry(domain.JournalEntry{ID: "j1"})
	stored.AddTrigger(domain.TriggerEntry{ID: "t1"})

	pending := domain.NewSnapshot()
	pending.AddCheckIn(domain.CheckIn{Date: "2026-10-13"})
	pending.AddCheckIn(domain.CheckIn{Date: "2026-10-15"})
	pending.AddJournalEntry(domain.JournalEntry{ID: "j1"})
	pending.AddJournalEntry(domain.JournalEntry{ID: "j2"})
	pending.AddTrigger(domain.TriggerEntry{ID: "t2"})

	stored.Absorb(pending)

	require.Len(t, stored.CheckIns, 2)
	assert.Equal(t, "2026-10-15", stored.CheckIns[0].Date)
	assert.True(t, stored.CheckIns[1].WasKinder, "stored answers win for the same day")
	require.Len(t, stored.JournalEntries, 2)
	assert.Equal(t, "j2", stored.JournalEntries[0].ID)
	require.Len(t, stored.Triggers, 2)
	assert.Equal(t, "t2", stored.Triggers[0].ID)

	assert.NotPanics(t, func() { stored.Absorb(nil) })
}
