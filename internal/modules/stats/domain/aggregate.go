package domain

import "time"

// Entry is one completed session as the statistics care about it.
type Entry struct {
	StartedAt time.Time
	Duration  time.Duration
}

type Totals struct {
	Sessions        int
	TotalDuration   time.Duration
	AverageDuration time.Duration
}

func ComputeTotals(entries []Entry) Totals {
	totals := Totals{Sessions: len(entries)}
	for _, entry := range entries {
		totals.TotalDuration += entry.Duration
	}
	if totals.Sessions > 0 {
		totals.AverageDuration = totals.TotalDuration / time.Duration(totals.Sessions)
	}
	return totals
}

type DayTotal struct {
	Day   PracticeDay
	Total time.Duration
}

// DailyTotals buckets practice time for the n days ending today, oldest
// first. Days without practice appear with a zero total so the chart keeps
// its gaps.
func DailyTotals(entries []Entry, today time.Time, n int, loc *time.Location) []DayTotal {
	byDay := make(map[PracticeDay]time.Duration, len(entries))
	for _, entry := range entries {
		byDay[DayOf(entry.StartedAt, loc)] += entry.Duration
	}
	out := make([]DayTotal, 0, n)
	cursor := today.In(loc).AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		day := DayOf(cursor, loc)
		out = append(out, DayTotal{Day: day, Total: byDay[day]})
		cursor = cursor.AddDate(0, 0, 1)
	}
	return out
}
