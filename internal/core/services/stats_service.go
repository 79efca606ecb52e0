package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/clock"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type SnapshotReader interface {
	Snapshot(ctx context.Context, userID string, loc *time.Location) (*domain.Snapshot, error)
}

type StatsService struct {
	reader SnapshotReader
	clock  clock.Clock
}

func NewStatsService(reader SnapshotReader, clk clock.Clock) *StatsService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &StatsService{
		reader: reader,
		clock:  clk,
	}
}

func (s *StatsService) Overview(ctx context.Context, input domain.StatsInput) (*domain.Overview, error) {
	snap, err := s.reader.Snapshot(ctx, input.UserID, input.Location)
	if err != nil {
		return nil, err
	}

	overview := domain.BuildOverview(snap, domain.LocalDateKey(s.clock.Now(), input.Location))
	return &overview, nil
}

func (s *StatsService) Weekly(ctx context.Context, input domain.StatsInput) (*domain.WeeklySummary, error) {
	snap, err := s.reader.Snapshot(ctx, input.UserID, input.Location)
	if err != nil {
		return nil, err
	}

	summary := domain.BuildWeeklySummary(snap.JournalEntries, snap.CheckIns, s.clock.Now(), input.Location)
	return &summary, nil
}

// Calendar builds the month view for month ("YYYY-MM"), defaulting to the
// caller's current month.
func (s *StatsService) Calendar(ctx context.Context, input domain.StatsInput, month string) (*domain.MonthCalendar, error) {
	var (
		year int
		mon  time.Month
	)
	if month == "" {
		loc := input.Location
		if loc == nil {
			loc = time.Local
		}
		now := s.clock.Now().In(loc)
		year, mon = now.Year(), now.Month()
	} else {
		var err error
		year, mon, err = domain.ParseMonth(month)
		if err != nil {
			return nil, err
		}
	}

	snap, err := s.reader.Snapshot(ctx, input.UserID, input.Location)
	if err != nil {
		return nil, err
	}

	cal := domain.BuildMonthCalendar(snap.CheckIns, year, mon)
	return &cal, nil
}
