package services

import (
	"context"
	"errors"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/clock"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

// Persister accepts snapshots for asynchronous saving.
type Persister interface {
	Enqueue(userID string, snapshot *domain.Snapshot) bool
}

type session struct {
	mu       sync.Mutex
	loaded   bool
	snapshot *domain.Snapshot

	// dirty marks edits made while storage was unreachable; they are merged
	// into the stored snapshot once a load succeeds.
	dirty bool

	lastSeen time.Time // guarded by WellnessService.mu
}

// WellnessService owns one in-memory snapshot per user. Every operation on a
// user runs under that user's lock; different users never contend.
type WellnessService struct {
	repo      domain.SnapshotRepository
	persister Persister
	clock     clock.Clock
	log       logger.Logger
	policy    *bluemonday.Policy
	loadLimit time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

func NewWellnessService(repo domain.SnapshotRepository, persister Persister, clk clock.Clock, log logger.Logger) *WellnessService {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &WellnessService{
		repo:      repo,
		persister: persister,
		clock:     clk,
		log:       log,
		policy:    bluemonday.StrictPolicy(),
		loadLimit: 5 * time.Second,
		sessions:  make(map[string]*session),
	}
}

type SubmitCheckInInput struct {
	UserID   string
	Date     string
	Answers  domain.CheckInAnswers
	Location *time.Location
}

type CheckInResult struct {
	CheckIn  domain.CheckIn     `json:"check_in"`
	Accepted bool               `json:"accepted"`
	Streak   domain.StreakState `json:"streak"`
	Unlocked *domain.Milestone  `json:"unlocked_milestone,omitempty"`
}

type AddJournalInput struct {
	UserID       string
	Gratitude    string
	Reflection   string
	Emotion      string
	EmotionGlyph string
	Location     *time.Location
}

type JournalResult struct {
	Entry    domain.JournalEntry `json:"entry"`
	Unlocked *domain.Milestone   `json:"unlocked_milestone,omitempty"`
}

type AddTriggerInput struct {
	UserID    string
	Situation string
	Reaction  string
	Emotion   string
	Intensity int
	Location  *time.Location
}

type TriggerResult struct {
	Entry    domain.TriggerEntry `json:"entry"`
	Unlocked *domain.Milestone   `json:"unlocked_milestone,omitempty"`
}

// Snapshot returns a copy of the user's snapshot with the streak recomputed
// for the caller's today. Reads never persist.
func (s *WellnessService) Snapshot(ctx context.Context, userID string, loc *time.Location) (*domain.Snapshot, error) {
	var out *domain.Snapshot
	err := s.withSession(ctx, userID, loc, func(sess *session, todayKey string) error {
		out = sess.snapshot.Clone()
		streak := domain.ComputeStreak(out.CheckInDates(), todayKey, out.LongestStreak)
		out.CurrentStreak = streak.Current
		out.LongestStreak = streak.Longest
		return nil
	})
	return out, err
}

// SubmitCheckIn records the check-in for input.Date, or today when empty.
// A second check-in for the same day is a no-op reported with Accepted=false.
func (s *WellnessService) SubmitCheckIn(ctx context.Context, input SubmitCheckInInput) (*CheckInResult, error) {
	var res *CheckInResult
	err := s.withSession(ctx, input.UserID, input.Location, func(sess *session, todayKey string) error {
		date := strings.TrimSpace(input.Date)
		if date == "" {
			date = todayKey
		}
		if !domain.IsValidDateKey(date) {
			return domain.ErrInvalidDateKey
		}
		if date > todayKey {
			return domain.ErrCheckInFutureDate
		}

		snap := sess.snapshot
		if existing, ok := snap.FindCheckIn(date); ok {
			res = &CheckInResult{
				CheckIn:  existing,
				Accepted: false,
				Streak:   domain.ComputeStreak(snap.CheckInDates(), todayKey, snap.LongestStreak),
			}
			return nil
		}

		now := s.clock.Now()
		checkIn, err := domain.NewCheckIn(date, input.Answers, now)
		if err != nil {
			return err
		}
		snap.AddCheckIn(*checkIn)
		_, unlocked := snap.Reconcile(todayKey, now)
		s.persist(input.UserID, sess, now)

		res = &CheckInResult{
			CheckIn:  *checkIn,
			Accepted: true,
			Streak:   domain.StreakState{Current: snap.CurrentStreak, Longest: snap.LongestStreak},
			Unlocked: unlocked,
		}
		return nil
	})
	return res, err
}

func (s *WellnessService) AddJournalEntry(ctx context.Context, input AddJournalInput) (*JournalResult, error) {
	var res *JournalResult
	err := s.withSession(ctx, input.UserID, input.Location, func(sess *session, todayKey string) error {
		now := s.clock.Now()
		entry, err := domain.NewJournalEntry(
			s.sanitize(input.Gratitude),
			s.sanitize(input.Reflection),
			s.sanitize(input.Emotion),
			s.sanitize(input.EmotionGlyph),
			now,
		)
		if err != nil {
			return err
		}

		sess.snapshot.AddJournalEntry(*entry)
		_, unlocked := sess.snapshot.Reconcile(todayKey, now)
		s.persist(input.UserID, sess, now)

		res = &JournalResult{Entry: *entry, Unlocked: unlocked}
		return nil
	})
	return res, err
}

func (s *WellnessService) AddTrigger(ctx context.Context, input AddTriggerInput) (*TriggerResult, error) {
	var res *TriggerResult
	err := s.withSession(ctx, input.UserID, input.Location, func(sess *session, todayKey string) error {
		now := s.clock.Now()
		entry, err := domain.NewTriggerEntry(
			s.sanitize(input.Situation),
			s.sanitize(input.Reaction),
			s.sanitize(input.Emotion),
			input.Intensity,
			now,
		)
		if err != nil {
			return err
		}

		sess.snapshot.AddTrigger(*entry)
		_, unlocked := sess.snapshot.Reconcile(todayKey, now)
		s.persist(input.UserID, sess, now)

		res = &TriggerResult{Entry: *entry, Unlocked: unlocked}
		return nil
	})
	return res, err
}

// CheckIns lists check-ins newest first. A limit <= 0 returns all of them.
func (s *WellnessService) CheckIns(ctx context.Context, userID string, limit int) ([]domain.CheckIn, error) {
	var out []domain.CheckIn
	err := s.withSession(ctx, userID, nil, func(sess *session, _ string) error {
		out = append([]domain.CheckIn{}, head(sess.snapshot.CheckIns, limit)...)
		return nil
	})
	return out, err
}

func (s *WellnessService) JournalEntries(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	err := s.withSession(ctx, userID, nil, func(sess *session, _ string) error {
		out = append([]domain.JournalEntry{}, head(sess.snapshot.JournalEntries, limit)...)
		return nil
	})
	return out, err
}

func (s *WellnessService) Triggers(ctx context.Context, userID string, limit int) ([]domain.TriggerEntry, error) {
	var out []domain.TriggerEntry
	err := s.withSession(ctx, userID, nil, func(sess *session, _ string) error {
		out = append([]domain.TriggerEntry{}, head(sess.snapshot.Triggers, limit)...)
		return nil
	})
	return out, err
}

func (s *WellnessService) Milestones(ctx context.Context, userID string) ([]domain.Milestone, error) {
	var out []domain.Milestone
	err := s.withSession(ctx, userID, nil, func(sess *session, _ string) error {
		out = sess.snapshot.Clone().Milestones
		return nil
	})
	return out, err
}

// Evict drops the cached session so the next call reloads from storage.
func (s *WellnessService) Evict(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// SweepIdle evicts sessions not used for maxIdle. Sessions that are busy or
// hold unsaved edits stay.
func (s *WellnessService) SweepIdle(maxIdle time.Duration) int {
	cutoff := s.clock.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.sessions {
		if sess.lastSeen.After(cutoff) {
			continue
		}
		if !sess.mu.TryLock() {
			continue
		}
		dirty := sess.dirty
		sess.mu.Unlock()
		if dirty {
			continue
		}
		delete(s.sessions, userID)
		evicted++
	}
	return evicted
}

// RunSweeper calls SweepIdle every interval until ctx is cancelled.
func (s *WellnessService) RunSweeper(ctx context.Context, maxIdle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.SweepIdle(maxIdle); n > 0 {
				s.log.Debugf("evicted %d idle sessions", n)
			}
		}
	}
}

func (s *WellnessService) withSession(ctx context.Context, userID string, loc *time.Location, fn func(sess *session, todayKey string) error) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrInvalidUserID
	}

	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	todayKey := domain.LocalDateKey(s.clock.Now(), loc)
	if !sess.loaded {
		s.load(ctx, userID, sess, todayKey)
	}

	return fn(sess, todayKey)
}

func (s *WellnessService) session(userID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	sess.lastSeen = s.clock.Now()
	return sess
}

// load never fails. When storage errors the session runs on an in-memory
// copy that is not saved, and the next call tries the load again.
func (s *WellnessService) load(ctx context.Context, userID string, sess *session, todayKey string) {
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadLimit)
	defer cancel()

	snap, err := s.repo.Load(loadCtx, userID)
	switch {
	case err == nil:
		snap.Normalize()
	case errors.Is(err, domain.ErrSnapshotNotFound):
		snap = domain.NewSnapshot()
	default:
		s.log.Errorf("failed to load snapshot for user %s, changes stay unsaved until storage recovers: %v", userID, err)
		if sess.snapshot == nil {
			sess.snapshot = domain.NewSnapshot()
		}
		return
	}

	pending := sess.dirty
	if pending {
		snap.Absorb(sess.snapshot)
	}
	sess.snapshot = snap
	sess.loaded = true
	sess.dirty = false

	now := s.clock.Now()
	if changed, _ := snap.Reconcile(todayKey, now); changed || pending {
		s.persist(userID, sess, now)
	}
}

func (s *WellnessService) persist(userID string, sess *session, now time.Time) {
	sess.snapshot.UpdatedAt = now.UTC()
	if !sess.loaded {
		sess.dirty = true
		return
	}
	if s.persister == nil {
		return
	}
	s.persister.Enqueue(userID, sess.snapshot.Clone())
}

func (s *WellnessService) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func head[T any](items []T, limit int) []T {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}
