package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func findMilestone(t *testing.T, ms []domain.Milestone, id string) domain.Milestone {
	t.Helper()
	for _, m := range ms {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("milestone %s not found", id)
	return domain.Milestone{}
}

func TestDefaultMilestones(t *testing.T) {
	ms := domain.DefaultMilestones()

	require.Len(t, ms, 15)
	assert.Equal(t, "checkins-1", ms[0].ID)
	assert.Equal(t, "streak-100", ms[len(ms)-1].ID)

	seen := map[string]bool{}
	for _, m := range ms {
		assert.False(t, m.Unlocked(), m.ID)
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}

func TestEvaluateMilestones(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	t.Run("Unlocks at threshold and reports the first", func(t *testing.T) {
		out, first := domain.EvaluateMilestones(domain.DefaultMilestones(), domain.MilestoneCounters{CheckIns: 5}, now)

		require.NotNil(t, first)
		assert.Equal(t, "checkins-1", first.ID)
		assert.True(t, findMilestone(t, out, "checkins-1").Unlocked())
		assert.True(t, findMilestone(t, out, "checkins-5").Unlocked())
		assert.False(t, findMilestone(t, out, "checkins-25").Unlocked())
		assert.Equal(t, now, *findMilestone(t, out, "checkins-5").UnlockedAt)
	})

	t.Run("Idempotent: second pass unlocks nothing and keeps timestamps", func(t *testing.T) {
		counters := domain.MilestoneCounters{CheckIns: 5, Streak: 3}
		once, _ := domain.EvaluateMilestones(domain.DefaultMilestones(), counters, now)
		twice, first := domain.EvaluateMilestones(once, counters, now.Add(24*time.Hour))

		assert.Nil(t, first)
		assert.Equal(t, now, *findMilestone(t, twice, "streak-3").UnlockedAt)
	})

	t.Run("Unlocks are never revoked", func(t *testing.T) {
		unlocked, _ := domain.EvaluateMilestones(domain.DefaultMilestones(), domain.MilestoneCounters{Streak: 7}, now)
		later, _ := domain.EvaluateMilestones(unlocked, domain.MilestoneCounters{Streak: 0}, now)

		assert.True(t, findMilestone(t, later, "streak-7").Unlocked())
	})

	t.Run("Does not mutate the input", func(t *testing.T) {
		in := domain.DefaultMilestones()
		_, _ = domain.EvaluateMilestones(in, domain.MilestoneCounters{Journal: 100}, now)

		for _, m := range in {
			assert.Nil(t, m.UnlockedAt, m.ID)
		}
	})

	t.Run("Below threshold stays locked", func(t *testing.T) {
		out, first := domain.EvaluateMilestones(domain.DefaultMilestones(), domain.MilestoneCounters{Streak: 2}, now)

		assert.Nil(t, first)
		assert.False(t, findMilestone(t, out, "streak-3").Unlocked())
	})
}

func TestMergeMilestones(t *testing.T) {
	at := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	existing := []domain.Milestone{
		{ID: "streak-7", Type: domain.MilestoneStreak, Threshold: 7, UnlockedAt: &at},
		{ID: "legacy-badge", Type: "legacy", Threshold: 1, Title: "Beta tester", UnlockedAt: &at},
		{ID: ""},
	}

	merged := domain.MergeMilestones(existing)

	require.Len(t, merged, 16)
	assert.Equal(t, at, *findMilestone(t, merged, "streak-7").UnlockedAt)
	assert.Equal(t, "One week streak", findMilestone(t, merged, "streak-7").Title)
	assert.Equal(t, "legacy-badge", merged[15].ID)
	assert.False(t, findMilestone(t, merged, "streak-3").Unlocked())
}

func TestMergeMilestones_EntriesWithoutID(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	existing := []domain.Milestone{
		{Type: domain.MilestoneCheckIns, Threshold: 1, UnlockedAt: &at},
		{Type: domain.MilestoneStreak, Threshold: 3},
		{Type: domain.MilestoneStreak, Threshold: 3, UnlockedAt: &at},
		{Type: "custom", Threshold: 2, Title: "Imported", UnlockedAt: &at},
	}

	merged := domain.MergeMilestones(existing)

	require.Len(t, merged, 16)
	assert.Equal(t, at, *findMilestone(t, merged, "checkins-1").UnlockedAt)
	assert.Equal(t, at, *findMilestone(t, merged, "streak-3").UnlockedAt, "unlocked duplicate wins")
	assert.Equal(t, "custom-2", merged[15].ID)
	assert.Equal(t, "Imported", merged[15].Title)

	_, first := domain.EvaluateMilestones(merged, domain.MilestoneCounters{CheckIns: 1, Streak: 3}, at.Add(24*time.Hour))
	assert.Nil(t, first, "already unlocked milestones are not reported again")
}
