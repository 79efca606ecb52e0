package domain

import (
	"fmt"
	"math"
	"time"
)

var positiveEmotions = map[string]bool{
	"happy":     true,
	"grateful":  true,
	"calm":      true,
	"hopeful":   true,
	"proud":     true,
	"content":   true,
	"excited":   true,
	"peaceful":  true,
	"loved":     true,
	"joyful":    true,
	"relaxed":   true,
	"motivated": true,
}

// moodScores maps an emotion label onto a 1..5 scale; unknown labels score neutral.
var moodScores = map[string]int{
	"joyful":      5,
	"happy":       5,
	"excited":     5,
	"loved":       5,
	"grateful":    5,
	"proud":       4,
	"hopeful":     4,
	"calm":        4,
	"content":     4,
	"peaceful":    4,
	"relaxed":     4,
	"motivated":   4,
	"neutral":     3,
	"tired":       2,
	"anxious":     2,
	"stressed":    2,
	"frustrated":  2,
	"irritated":   2,
	"sad":         1,
	"angry":       1,
	"overwhelmed": 1,
	"lonely":      1,
}

const neutralMood = 3

var insightMessages = map[InsightKind]string{
	InsightStart:       "Start your week by writing a short reflection or checking in.",
	InsightPositive:    "Your reflections have been mostly positive this week. Keep nurturing what works.",
	InsightCalm:        "You stayed calm on most days this week. That steadiness is worth celebrating.",
	InsightChallenging: "This week seems to have been hard. Be gentle with yourself; noticing it is a step forward.",
	InsightGrowth:      "Every entry is a step in your growth. Keep showing up for yourself.",
}

func IsPositiveEmotion(label string) bool {
	return positiveEmotions[NormalizeEmotion(label)]
}

func MoodScore(label string) int {
	if score, ok := moodScores[NormalizeEmotion(label)]; ok {
		return score
	}
	return neutralMood
}

func InsightMessage(kind InsightKind) string {
	return insightMessages[kind]
}

// BuildWeeklySummary buckets journal entries and check-ins into the week
// starting at the most recent local Sunday midnight and the week before it.
func BuildWeeklySummary(entries []JournalEntry, checkIns []CheckIn, now time.Time, loc *time.Location) WeeklySummary {
	if loc == nil {
		loc = time.Local
	}

	weekStart := WeekStart(now, loc)
	nextWeekStart := weekStart.AddDate(0, 0, 7)
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	summary := WeeklySummary{
		WeekStart: LocalDateKey(weekStart, loc),
		WeekEnd:   LocalDateKey(nextWeekStart.AddDate(0, 0, -1), loc),
		DailyMood: make([]float64, 7),
	}

	emotionCounts := make(map[string]int)
	var emotionOrder []string
	dayMoodTotals := make([]int, 7)
	dayMoodCounts := make([]int, 7)
	positive := 0
	moodTotal := 0

	for _, e := range entries {
		ts := e.Timestamp.In(loc)

		switch {
		case !ts.Before(weekStart) && ts.Before(nextWeekStart):
			summary.ThisWeekCount++
		case !ts.Before(lastWeekStart) && ts.Before(weekStart):
			summary.LastWeekCount++
			continue
		default:
			continue
		}

		label := NormalizeEmotion(e.Emotion)
		if label != "" {
			if _, seen := emotionCounts[label]; !seen {
				emotionOrder = append(emotionOrder, label)
			}
			emotionCounts[label]++
		}
		if positiveEmotions[label] {
			positive++
		}

		score := MoodScore(label)
		moodTotal += score
		day := int(ts.Weekday())
		dayMoodTotals[day] += score
		dayMoodCounts[day]++
	}

	best := 0
	for _, label := range emotionOrder {
		if emotionCounts[label] > best {
			best = emotionCounts[label]
			summary.TopEmotionThisWeek = label
		}
	}

	ratio := 0.0
	if summary.ThisWeekCount > 0 {
		ratio = float64(positive) / float64(summary.ThisWeekCount)
		summary.PositiveRatio = int(math.Round(ratio * 100))
		summary.MoodScore = round2(float64(moodTotal) / float64(summary.ThisWeekCount))
	}

	for day := range dayMoodTotals {
		if dayMoodCounts[day] > 0 {
			summary.DailyMood[day] = round2(float64(dayMoodTotals[day]) / float64(dayMoodCounts[day]))
		}
	}

	summary.WeekOverWeekDelta = summary.ThisWeekCount - summary.LastWeekCount

	var weekCheckIns []CheckIn
	for _, c := range checkIns {
		if c.Date >= summary.WeekStart && c.Date <= summary.WeekEnd {
			weekCheckIns = append(weekCheckIns, c)
			if c.ReactedCalmly {
				summary.CalmDaysThisWeek++
			}
		}
	}
	summary.CheckInsThisWeek = len(weekCheckIns)
	summary.SuccessRateThisWeek = SuccessRate(weekCheckIns)

	summary.InsightKind = pickInsight(summary.ThisWeekCount, summary.CheckInsThisWeek, summary.CalmDaysThisWeek, ratio)
	summary.Insight = InsightMessage(summary.InsightKind)

	return summary
}

// pickInsight evaluates the rules top-down; the first match wins.
func pickInsight(entries, checkIns, calmDays int, positiveRatio float64) InsightKind {
	switch {
	case entries == 0 && checkIns == 0:
		return InsightStart
	case positiveRatio >= 0.7 && entries >= 3:
		return InsightPositive
	case calmDays >= 4:
		return InsightCalm
	case entries > 0 && positiveRatio < 0.3:
		return InsightChallenging
	default:
		return InsightGrowth
	}
}

// BuildMonthCalendar maps each checked-in day of the month onto its quality bucket.
func BuildMonthCalendar(checkIns []CheckIn, year int, month time.Month) MonthCalendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prefix := first.Format("2006-01")

	cal := MonthCalendar{
		Month:       prefix,
		DaysInMonth: first.AddDate(0, 1, -1).Day(),
		Days:        make(map[int]Quality),
	}

	for _, c := range checkIns {
		t, err := ParseDateKey(c.Date)
		if err != nil || t.Year() != year || t.Month() != month {
			continue
		}
		if _, dup := cal.Days[t.Day()]; dup {
			continue
		}
		cal.Days[t.Day()] = c.Quality()
	}
	cal.CheckedInDays = len(cal.Days)

	return cal
}

// ParseMonth parses a YYYY-MM value.
func ParseMonth(value string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month must be YYYY-MM", ErrInvalidDateKey)
	}
	return t.Year(), t.Month(), nil
}

// BuildOverview derives headline numbers. The streak is recomputed from the
// raw dates, so a stale cached counter never leaks out.
func BuildOverview(s *Snapshot, todayKey string) Overview {
	streak := ComputeStreak(s.CheckInDates(), todayKey, s.LongestStreak)

	o := Overview{
		CurrentStreak:   streak.Current,
		LongestStreak:   streak.Longest,
		SuccessRate:     SuccessRate(s.CheckIns),
		CheckIns:        len(s.CheckIns),
		JournalEntries:  len(s.JournalEntries),
		Triggers:        len(s.Triggers),
		CheckedInToday:  s.HasCheckIn(todayKey),
		TotalMilestones: len(s.Milestones),
	}

	if len(s.CheckIns) > 0 {
		o.LastCheckIn = s.CheckIns[0].Date
	}
	for _, m := range s.Milestones {
		if m.Unlocked() {
			o.UnlockedMilestones++
		}
	}

	return o
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
