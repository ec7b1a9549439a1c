package usecase

import (
	"context"

	historyin "zazen/internal/modules/history/port/in"
	"zazen/internal/modules/stats/domain"
	"zazen/internal/modules/stats/dto"
	statsin "zazen/internal/modules/stats/port/in"
	"zazen/internal/modules/stats/service"
	"zazen/internal/platform/clock"
)

type Interactor struct {
	svc     *service.StatsService
	history historyin.Usecase
	clock   clock.Clock
}

func NewInteractor(svc *service.StatsService, history historyin.Usecase, clk clock.Clock) statsin.Usecase {
	return &Interactor{svc: svc, history: history, clock: clk}
}

func (i *Interactor) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	sessions, err := i.history.List(ctx)
	if err != nil {
		return dto.OverviewOutput{}, err
	}

	entries := make([]domain.Entry, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, domain.Entry{
			StartedAt: session.StartedAt,
			Duration:  session.EffectiveDuration,
		})
	}

	overview := i.svc.Overview(entries, i.clock.Now())

	days := make([]dto.DayBucket, 0, len(overview.Days))
	for _, day := range overview.Days {
		days = append(days, dto.DayBucket{
			Date:  day.Day.Time(i.svc.Location()),
			Total: day.Total,
		})
	}

	return dto.OverviewOutput{
		CurrentStreak:   overview.CurrentStreak,
		LongestStreak:   overview.LongestStreak,
		TotalSessions:   overview.Totals.Sessions,
		TotalDuration:   overview.Totals.TotalDuration,
		AverageDuration: overview.Totals.AverageDuration,
		Days:            days,
	}, nil
}
