package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrCheckInFutureDate = errors.New("check-in date cannot be in the future")
)

// CheckInFlagCount is the number of self-reported behaviours on every check-in.
const CheckInFlagCount = 5

// Quality buckets a check-in by how many behaviours were reported.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

type CheckInAnswers struct {
	ReactedCalmly    bool `json:"reacted_calmly"`
	AvoidedSnapping  bool `json:"avoided_snapping"`
	WasKinder        bool `json:"was_kinder"`
	PositiveSelfTalk bool `json:"positive_self_talk"`
	FeltRelaxed      bool `json:"felt_relaxed"`
}

func (a CheckInAnswers) TrueCount() int {
	n := 0
	for _, v := range []bool{a.ReactedCalmly, a.AvoidedSnapping, a.WasKinder, a.PositiveSelfTalk, a.FeltRelaxed} {
		if v {
			n++
		}
	}
	return n
}

// CheckIn is the single daily self-report of a user. There is at most one per Date.
type CheckIn struct {
	Date string `json:"date"`
	CheckInAnswers
	CreatedAt time.Time `json:"created_at"`
}

func NewCheckIn(date string, answers CheckInAnswers, now time.Time) (*CheckIn, error) {
	if !IsValidDateKey(date) {
		return nil, ErrInvalidDateKey
	}

	return &CheckIn{
		Date:           date,
		CheckInAnswers: answers,
		CreatedAt:      now.UTC(),
	}, nil
}

func (c CheckIn) Quality() Quality {
	switch n := c.TrueCount(); {
	case n >= 4:
		return QualityHigh
	case n == 3:
		return QualityMedium
	default:
		return QualityLow
	}
}

// SuccessRate is the percentage of true flags over every flag of every check-in,
// rounded half away from zero. An empty slice yields 0.
func SuccessRate(checkIns []CheckIn) int {
	if len(checkIns) == 0 {
		return 0
	}

	total := 0
	for _, c := range checkIns {
		total += c.TrueCount()
	}

	return int(math.Round(100 * float64(total) / float64(len(checkIns)*CheckInFlagCount)))
}
