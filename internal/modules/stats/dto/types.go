package dto

import "time"

type DayBucket struct {
	Date  time.Time
	Total time.Duration
}

type OverviewOutput struct {
	CurrentStreak   int
	LongestStreak   int
	TotalSessions   int
	TotalDuration   time.Duration
	AverageDuration time.Duration
	Days            []DayBucket
}
