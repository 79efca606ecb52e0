package domain

import (
	"fmt"
	"time"
)

type MilestoneType string

const (
	MilestoneStreak   MilestoneType = "streak"
	MilestoneCheckIns MilestoneType = "checkins"
	MilestoneTriggers MilestoneType = "triggers"
	MilestoneJournal  MilestoneType = "journal"
)

// Milestone is a one-time achievement. UnlockedAt is set at most once and never cleared.
type Milestone struct {
	ID         string        `json:"id"`
	Type       MilestoneType `json:"type"`
	Threshold  int           `json:"threshold"`
	Title      string        `json:"title"`
	UnlockedAt *time.Time    `json:"unlocked_at"`
}

func (m Milestone) Unlocked() bool {
	return m.UnlockedAt != nil
}

// MilestoneCounters are the aggregate values milestones are compared against.
type MilestoneCounters struct {
	Streak   int `json:"streak"`
	CheckIns int `json:"checkins"`
	Triggers int `json:"triggers"`
	Journal  int `json:"journal"`
}

func (c MilestoneCounters) Value(t MilestoneType) (int, bool) {
	switch t {
	case MilestoneStreak:
		return c.Streak, true
	case MilestoneCheckIns:
		return c.CheckIns, true
	case MilestoneTriggers:
		return c.Triggers, true
	case MilestoneJournal:
		return c.Journal, true
	default:
		return 0, false
	}
}

func milestoneID(t MilestoneType, threshold int) string {
	return fmt.Sprintf("%s-%d", t, threshold)
}

func newMilestone(t MilestoneType, threshold int, title string) Milestone {
	return Milestone{ID: milestoneID(t, threshold), Type: t, Threshold: threshold, Title: title}
}

// DefaultMilestones returns the fixed threshold table, all locked.
func DefaultMilestones() []Milestone {
	return []Milestone{
		newMilestone(MilestoneCheckIns, 1, "First check-in"),
		newMilestone(MilestoneJournal, 1, "First reflection"),
		newMilestone(MilestoneTriggers, 1, "First trigger noticed"),
		newMilestone(MilestoneStreak, 3, "Three days in a row"),
		newMilestone(MilestoneCheckIns, 5, "Five check-ins"),
		newMilestone(MilestoneStreak, 7, "One week streak"),
		newMilestone(MilestoneJournal, 10, "Ten reflections"),
		newMilestone(MilestoneTriggers, 10, "Ten triggers understood"),
		newMilestone(MilestoneStreak, 14, "Two week streak"),
		newMilestone(MilestoneCheckIns, 25, "Twenty-five check-ins"),
		newMilestone(MilestoneStreak, 30, "One month streak"),
		newMilestone(MilestoneJournal, 50, "Fifty reflections"),
		newMilestone(MilestoneTriggers, 25, "Twenty-five triggers understood"),
		newMilestone(MilestoneCheckIns, 100, "One hundred check-ins"),
		newMilestone(MilestoneStreak, 100, "One hundred day streak"),
	}
}

// Key identifies a milestone. Documents that predate IDs carry only type and
// threshold, which derive the same key.
func (m Milestone) Key() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Type == "" {
		return ""
	}
	return milestoneID(m.Type, m.Threshold)
}

// MergeMilestones returns the default table in its order, carrying over the
// unlock state of existing entries with the same key. Existing entries that
// are not in the table are kept at the end.
func MergeMilestones(existing []Milestone) []Milestone {
	byKey := make(map[string]Milestone, len(existing))
	for _, m := range existing {
		key := m.Key()
		if key == "" {
			continue
		}
		if prev, dup := byKey[key]; dup && (prev.Unlocked() || !m.Unlocked()) {
			continue
		}
		byKey[key] = m
	}

	defaults := DefaultMilestones()
	known := make(map[string]bool, len(defaults))
	merged := make([]Milestone, 0, len(defaults)+len(existing))

	for _, d := range defaults {
		known[d.ID] = true
		if old, ok := byKey[d.ID]; ok && old.UnlockedAt != nil {
			at := *old.UnlockedAt
			d.UnlockedAt = &at
		}
		merged = append(merged, d)
	}

	for _, m := range existing {
		key := m.Key()
		if key == "" || known[key] {
			continue
		}
		known[key] = true
		kept := byKey[key]
		kept.ID = key
		merged = append(merged, kept)
	}

	return merged
}

// EvaluateMilestones unlocks every locked milestone whose counter reached its
// threshold, stamping it with now. The input is left untouched.
//
// The second result is the first milestone unlocked in this pass, in table
// order, or nil; others unlocked in the same pass are marked silently.
func EvaluateMilestones(milestones []Milestone, counters MilestoneCounters, now time.Time) ([]Milestone, *Milestone) {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)

	var first *Milestone
	for i := range out {
		if out[i].Unlocked() {
			continue
		}

		value, ok := counters.Value(out[i].Type)
		if !ok || value < out[i].Threshold {
			continue
		}

		at := now.UTC()
		out[i].UnlockedAt = &at

		if first == nil {
			unlocked := out[i]
			first = &unlocked
		}
	}

	return out, first
}
