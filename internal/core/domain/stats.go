package domain

import "time"

type InsightKind string

const (
	InsightStart       InsightKind = "start"
	InsightPositive    InsightKind = "positive_trend"
	InsightCalm        InsightKind = "calm_week"
	InsightChallenging InsightKind = "challenging_week"
	InsightGrowth      InsightKind = "growth"
)

type WeeklySummary struct {
	WeekStart           string      `json:"week_start"`
	WeekEnd             string      `json:"week_end"`
	ThisWeekCount       int         `json:"this_week_count"`
	LastWeekCount       int         `json:"last_week_count"`
	WeekOverWeekDelta   int         `json:"week_over_week_delta"`
	CheckInsThisWeek    int         `json:"check_ins_this_week"`
	CalmDaysThisWeek    int         `json:"calm_days_this_week"`
	SuccessRateThisWeek int         `json:"success_rate_this_week"`
	TopEmotionThisWeek  string      `json:"top_emotion_this_week"`
	PositiveRatio       int         `json:"positive_ratio"`
	MoodScore           float64     `json:"mood_score"`
	DailyMood           []float64   `json:"daily_mood"`
	InsightKind         InsightKind `json:"insight_kind"`
	Insight             string      `json:"insight"`
}

type MonthCalendar struct {
	Month         string          `json:"month"`
	DaysInMonth   int             `json:"days_in_month"`
	CheckedInDays int             `json:"checked_in_days"`
	Days          map[int]Quality `json:"days"`
}

type Overview struct {
	CurrentStreak      int    `json:"current_streak"`
	LongestStreak      int    `json:"longest_streak"`
	SuccessRate        int    `json:"success_rate"`
	CheckIns           int    `json:"check_ins"`
	JournalEntries     int    `json:"journal_entries"`
	Triggers           int    `json:"triggers"`
	LastCheckIn        string `json:"last_check_in,omitempty"`
	CheckedInToday     bool   `json:"checked_in_today"`
	UnlockedMilestones int    `json:"unlocked_milestones"`
	TotalMilestones    int    `json:"total_milestones"`
}

type StatsInput struct {
	UserID   string
	Location *time.Location
}
