package domain

// StreakState is derived from the check-in dates; the persisted copy is only a cache.
type StreakState struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// ComputeStreak counts consecutive check-in days ending today or yesterday.
//
// dates are local day keys; invalid keys and keys after todayKey are ignored.
// Longest is a high-water mark: max(Current, previousLongest). It is never
// rebuilt from history, so callers must feed back the persisted value.
func ComputeStreak(dates []string, todayKey string, previousLongest int) StreakState {
	if previousLongest < 0 {
		previousLongest = 0
	}

	current := currentStreak(dates, todayKey)

	longest := previousLongest
	if current > longest {
		longest = current
	}

	return StreakState{Current: current, Longest: longest}
}

func currentStreak(dates []string, todayKey string) int {
	yesterdayKey, err := ShiftDateKey(todayKey, -1)
	if err != nil {
		return 0
	}

	days := make(map[string]bool, len(dates))
	latest := ""
	for _, d := range dates {
		if !IsValidDateKey(d) || d > todayKey {
			continue
		}
		days[d] = true
		if d > latest {
			latest = d
		}
	}

	if latest != todayKey && latest != yesterdayKey {
		return 0
	}

	streak := 0
	cursor := latest
	for days[cursor] {
		streak++
		cursor, err = ShiftDateKey(cursor, -1)
		if err != nil {
			break
		}
	}

	return streak
}
