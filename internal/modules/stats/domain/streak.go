package domain

import (
	"sort"
	"time"
)

// PracticeDay is a calendar day in the local timezone of computation.
// Sessions are attributed to the day they started, never the day they ended.
type PracticeDay struct {
	Year  int
	Month time.Month
	Day   int
}

func DayOf(t time.Time, loc *time.Location) PracticeDay {
	year, month, day := t.In(loc).Date()
	return PracticeDay{Year: year, Month: month, Day: day}
}

func (d PracticeDay) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// CurrentStreak counts consecutive practice days ending today. A day
// without practice before today breaks the run, and a missing today means
// the streak is 0 even if yesterday has sessions: the streak stays broken
// until a new session is logged today.
func CurrentStreak(starts []time.Time, today time.Time, loc *time.Location) int {
	if len(starts) == 0 {
		return 0
	}
	days := practiceDays(starts, loc)
	cursor := today.In(loc)
	if _, ok := days[DayOf(cursor, loc)]; !ok {
		return 0
	}
	streak := 1
	for {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := days[DayOf(cursor, loc)]; !ok {
			return streak
		}
		streak++
	}
}

// LongestStreak is the longest run of consecutive practice days anywhere in
// the history, independent of today.
func LongestStreak(starts []time.Time, loc *time.Location) int {
	days := practiceDays(starts, loc)
	if len(days) == 0 {
		return 0
	}
	ordered := make([]time.Time, 0, len(days))
	for day := range days {
		ordered = append(ordered, day.Time(loc))
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	longest, run := 1, 1
	for i := 1; i < len(ordered); i++ {
		if DayOf(ordered[i-1].AddDate(0, 0, 1), loc) == DayOf(ordered[i], loc) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func practiceDays(starts []time.Time, loc *time.Location) map[PracticeDay]struct{} {
	days := make(map[PracticeDay]struct{}, len(starts))
	for _, start := range starts {
		days[DayOf(start, loc)] = struct{}{}
	}
	return days
}
