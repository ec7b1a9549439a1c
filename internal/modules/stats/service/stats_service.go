package service

import (
	"time"

	"zazen/internal/modules/stats/domain"
)

const chartDays = 14

// StatsService derives every figure from the raw entry list on each call.
type StatsService struct {
	location *time.Location
}

func NewStatsService(location *time.Location) *StatsService {
	if location == nil {
		location = time.Local
	}
	return &StatsService{location: location}
}

type Overview struct {
	CurrentStreak int
	LongestStreak int
	Totals        domain.Totals
	Days          []domain.DayTotal
}

func (s *StatsService) Overview(entries []domain.Entry, today time.Time) Overview {
	starts := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		starts = append(starts, entry.StartedAt)
	}
	return Overview{
		CurrentStreak: domain.CurrentStreak(starts, today, s.location),
		LongestStreak: domain.LongestStreak(starts, s.location),
		Totals:        domain.ComputeTotals(entries),
		Days:          domain.DailyTotals(entries, today, chartDays, s.location),
	}
}

func (s *StatsService) Location() *time.Location {
	return s.location
}
