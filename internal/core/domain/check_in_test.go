package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func answers(n int) domain.CheckInAnswers {
	flags := make([]bool, domain.CheckInFlagCount)
	for i := 0; i < n && i < len(flags); i++ {
		flags[i] = true
	}
	return domain.CheckInAnswers{
		ReactedCalmly:    flags[0],
		AvoidedSnapping:  flags[1],
		WasKinder:        flags[2],
		PositiveSelfTalk: flags[3],
		FeltRelaxed:      flags[4],
	}
}

func checkIn(date string, trueFlags int) domain.CheckIn {
	return domain.CheckIn{Date: date, CheckInAnswers: answers(trueFlags)}
}

func TestNewCheckIn(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.FixedZone("UTC+2", 7200))

	t.Run("Success", func(t *testing.T) {
		c, err := domain.NewCheckIn("2026-10-15", answers(3), now)

		require.NoError(t, err)
		assert.Equal(t, "2026-10-15", c.Date)
		assert.Equal(t, 3, c.TrueCount())
		assert.Equal(t, time.UTC, c.CreatedAt.Location())
	})

	t.Run("Error: Invalid date", func(t *testing.T) {
		_, err := domain.NewCheckIn("2026-13-01", answers(1), now)
		assert.ErrorIs(t, err, domain.ErrInvalidDateKey)
	})
}

func TestCheckIn_Quality(t *testing.T) {
	tests := []struct {
		trueFlags int
		want      domain.Quality
	}{
		{0, domain.QualityLow},
		{2, domain.QualityLow},
		{3, domain.QualityMedium},
		{4, domain.QualityHigh},
		{5, domain.QualityHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, checkIn("2026-10-15", tt.trueFlags).Quality(), "%d flags", tt.trueFlags)
	}
}

func eightDaysOneFlag() []domain.CheckIn {
	out := []domain.CheckIn{checkIn("2026-10-01", 1)}
	for day := 2; day <= 8; day++ {
		out = append(out, checkIn(time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC).Format(domain.DateKeyLayout), 0))
	}
	return out
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name     string
		checkIns []domain.CheckIn
		want     int
	}{
		{"Empty is zero", nil, 0},
		{"All true", []domain.CheckIn{checkIn("2026-10-14", 5), checkIn("2026-10-15", 5)}, 100},
		{"Two of five", []domain.CheckIn{checkIn("2026-10-15", 2)}, 40},
		{"Fifteen percent", []domain.CheckIn{checkIn("2026-10-13", 1), checkIn("2026-10-14", 1), checkIn("2026-10-15", 1), checkIn("2026-10-16", 0)}, 15},
		{"Half rounds away from zero", eightDaysOneFlag(), 3},
		{"Rounds to nearest", []domain.CheckIn{checkIn("2026-10-14", 1), checkIn("2026-10-15", 0), checkIn("2026-10-16", 0)}, 7},
		{"None true", []domain.CheckIn{checkIn("2026-10-15", 0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SuccessRate(tt.checkIns))
		})
	}
}
