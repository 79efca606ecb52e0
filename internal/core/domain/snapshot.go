package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidSnapshot = errors.New("invalid snapshot document")
)

// Snapshot is the whole per-user document. The three collections are the
// source of truth; streak counters and milestone unlocks are derived caches.
type Snapshot struct {
	CheckIns       []CheckIn      `json:"check_ins"`
	JournalEntries []JournalEntry `json:"journal_entries"`
	Triggers       []TriggerEntry `json:"triggers"`
	CurrentStreak  int            `json:"current_streak"`
	LongestStreak  int            `json:"longest_streak"`
	Milestones     []Milestone    `json:"milestones"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.Normalize()
	return s
}

// DecodeSnapshot parses a stored document. Missing fields default to empty
// collections and zero counters so older documents keep loading.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}
	s.Normalize()
	return &s, nil
}

func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Normalize applies additive defaults and restores the one-check-in-per-day
// invariant on documents written by older or buggy clients.
func (s *Snapshot) Normalize() {
	if s.CheckIns == nil {
		s.CheckIns = []CheckIn{}
	}
	if s.JournalEntries == nil {
		s.JournalEntries = []JournalEntry{}
	}
	if s.Triggers == nil {
		s.Triggers = []TriggerEntry{}
	}
	if s.CurrentStreak < 0 {
		s.CurrentStreak = 0
	}
	if s.LongestStreak < 0 {
		s.LongestStreak = 0
	}

	seen := make(map[string]bool, len(s.CheckIns))
	unique := s.CheckIns[:0]
	for _, c := range s.CheckIns {
		if !IsValidDateKey(c.Date) || seen[c.Date] {
			continue
		}
		seen[c.Date] = true
		unique = append(unique, c)
	}
	s.CheckIns = unique
	sortCheckIns(s.CheckIns)

	s.Milestones = MergeMilestones(s.Milestones)
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.CheckIns = append([]CheckIn(nil), s.CheckIns...)
	c.JournalEntries = append([]JournalEntry(nil), s.JournalEntries...)
	c.Triggers = append([]TriggerEntry(nil), s.Triggers...)
	c.Milestones = make([]Milestone, len(s.Milestones))
	for i, m := range s.Milestones {
		if m.UnlockedAt != nil {
			at := *m.UnlockedAt
			m.UnlockedAt = &at
		}
		c.Milestones[i] = m
	}
	if c.CheckIns == nil {
		c.CheckIns = []CheckIn{}
	}
	if c.JournalEntries == nil {
		c.JournalEntries = []JournalEntry{}
	}
	if c.Triggers == nil {
		c.Triggers = []TriggerEntry{}
	}
	return &c
}

func (s *Snapshot) HasCheckIn(date string) bool {
	_, ok := s.FindCheckIn(date)
	return ok
}

func (s *Snapshot) FindCheckIn(date string) (CheckIn, bool) {
	for _, c := range s.CheckIns {
		if c.Date == date {
			return c, true
		}
	}
	return CheckIn{}, false
}

// AddCheckIn inserts c keeping newest-first order. It returns false and
// leaves the snapshot untouched when that date is already checked in.
func (s *Snapshot) AddCheckIn(c CheckIn) bool {
	if s.HasCheckIn(c.Date) {
		return false
	}
	s.CheckIns = append(s.CheckIns, c)
	sortCheckIns(s.CheckIns)
	return true
}

func (s *Snapshot) AddJournalEntry(e JournalEntry) {
	s.JournalEntries = append([]JournalEntry{e}, s.JournalEntries...)
}

func (s *Snapshot) AddTrigger(t TriggerEntry) {
	s.Triggers = append([]TriggerEntry{t}, s.Triggers...)
}

// Absorb folds records from other into s: check-ins for days s lacks, and
// journal and trigger entries with unseen IDs, placed ahead of the existing ones.
func (s *Snapshot) Absorb(other *Snapshot) {
	if other == nil {
		return
	}
	for _, c := range other.CheckIns {
		s.AddCheckIn(c)
	}

	journalIDs := make(map[string]bool, len(s.JournalEntries))
	for _, e := range s.JournalEntries {
		journalIDs[e.ID] = true
	}
	var journal []JournalEntry
	for _, e := range other.JournalEntries {
		if !journalIDs[e.ID] {
			journal = append(journal, e)
		}
	}
	s.JournalEntries = append(journal, s.JournalEntries...)

	triggerIDs := make(map[string]bool, len(s.Triggers))
	for _, t := range s.Triggers {
		triggerIDs[t.ID] = true
	}
	var triggers []TriggerEntry
	for _, t := range other.Triggers {
		if !triggerIDs[t.ID] {
			triggers = append(triggers, t)
		}
	}
	s.Triggers = append(triggers, s.Triggers...)
}

func (s *Snapshot) CheckInDates() []string {
	dates := make([]string, len(s.CheckIns))
	for i, c := range s.CheckIns {
		dates[i] = c.Date
	}
	return dates
}

func (s *Snapshot) Counters() MilestoneCounters {
	return MilestoneCounters{
		Streak:   s.CurrentStreak,
		CheckIns: len(s.CheckIns),
		Triggers: len(s.Triggers),
		Journal:  len(s.JournalEntries),
	}
}

// Reconcile recomputes the streak from raw check-in dates and evaluates
// milestones against the result. changed reports whether the derived cache
// moved; unlocked is the first milestone unlocked by this call.
func (s *Snapshot) Reconcile(todayKey string, now time.Time) (changed bool, unlocked *Milestone) {
	streak := ComputeStreak(s.CheckInDates(), todayKey, s.LongestStreak)
	if streak.Current != s.CurrentStreak || streak.Longest != s.LongestStreak {
		s.CurrentStreak = streak.Current
		s.LongestStreak = streak.Longest
		changed = true
	}

	s.Milestones, unlocked = EvaluateMilestones(s.Milestones, s.Counters(), now)
	if unlocked != nil {
		changed = true
	}

	return changed, unlocked
}

func sortCheckIns(checkIns []CheckIn) {
	sort.SliceStable(checkIns, func(i, j int) bool {
		return checkIns[i].Date > checkIns[j].Date
	})
}
