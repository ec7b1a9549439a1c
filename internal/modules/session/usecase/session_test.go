package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	historydto "zazen/internal/modules/history/dto"
	sessionoutadapter "zazen/internal/modules/session/adapter/out"
	sessiondto "zazen/internal/modules/session/dto"
	sessionin "zazen/internal/modules/session/port/in"
	"zazen/internal/modules/session/service"
	"zazen/internal/modules/session/usecase"
	syncdto "zazen/internal/modules/sync/dto"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakeID struct{}

func (fakeID) New() string { return "sit-1" }

type fakeHistory struct {
	appends []historydto.AppendInput
}

func (f *fakeHistory) Load(context.Context) error { return nil }
func (f *fakeHistory) Append(_ context.Context, input historydto.AppendInput) (historydto.SessionOutput, error) {
	f.appends = append(f.appends, input)
	return historydto.SessionOutput{ID: input.ID}, nil
}
func (f *fakeHistory) List(context.Context) ([]historydto.SessionOutput, error) { return nil, nil }
func (f *fakeHistory) Remove(context.Context, string) error                     { return nil }
func (f *fakeHistory) RemoveAll(context.Context) error                          { return nil }

type fakeSink struct {
	records []syncdto.RecordInput
	deletes []string
}

func (f *fakeSink) RecordSession(_ context.Context, input syncdto.RecordInput) error {
	f.records = append(f.records, input)
	return nil
}
func (f *fakeSink) DeleteSession(_ context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return nil
}
func (f *fakeSink) List(context.Context) ([]syncdto.SinkInfo, error)       { return nil, nil }
func (f *fakeSink) Doctor(context.Context) ([]syncdto.DoctorResult, error) { return nil, nil }

type publishedEnd struct {
	sessionID string
	completed bool
}

type fakePublisher struct {
	started []string
	ended   []publishedEnd
}

func (f *fakePublisher) SessionStarted(_ context.Context, sessionID string, _ time.Time, _ time.Duration) error {
	f.started = append(f.started, sessionID)
	return nil
}
func (f *fakePublisher) SessionEnded(_ context.Context, sessionID string, _ time.Time, completed bool) error {
	f.ended = append(f.ended, publishedEnd{sessionID: sessionID, completed: completed})
	return nil
}

func newInteractor(t *testing.T, clk *fakeClock) (sessionin.Usecase, *fakeHistory, *fakeSink, *fakePublisher) {
	t.Helper()
	history := &fakeHistory{}
	sink := &fakeSink{}
	publisher := &fakePublisher{}
	uc := usecase.NewInteractor(
		service.NewTimerService(clk, fakeID{}),
		sessionoutadapter.NewFileActiveSessionStore(t.TempDir()),
		history,
		sink,
		publisher,
		zerolog.Nop(),
	)
	return uc, history, sink, publisher
}

func TestImmediateStopRecordsZeroDuration(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{start, start}}
	uc, history, sink, publisher := newInteractor(t, clk)

	out, err := uc.Start(context.Background(), sessiondto.StartInput{Duration: 10 * time.Minute})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.SessionID == "" || out.AlreadyRunning {
		t.Fatalf("unexpected start output: %+v", out)
	}

	stopped, err := uc.Stop(context.Background())
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !stopped.Stopped {
		t.Fatalf("expected a stopped session")
	}
	if stopped.Session.ActualDuration != 0 {
		t.Fatalf("expected zero actual duration, got %s", stopped.Session.ActualDuration)
	}
	if stopped.Session.CompletionPercentage != 0 {
		t.Fatalf("expected 0%% completion, got %.2f", stopped.Session.CompletionPercentage)
	}

	if len(history.appends) != 1 || history.appends[0].ActualDuration != 0 {
		t.Fatalf("expected one zero-duration history append, got %+v", history.appends)
	}
	if len(sink.records) != 1 || sink.records[0].SessionID != out.SessionID {
		t.Fatalf("expected sink record for %s, got %+v", out.SessionID, sink.records)
	}
	if len(publisher.ended) != 1 || publisher.ended[0].completed {
		t.Fatalf("an immediate stop must not count as completed: %+v", publisher.ended)
	}

	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status after stop: %v", err)
	}
	if status.Running || status.Finalized != nil {
		t.Fatalf("expected idle status, got %+v", status)
	}
}

func TestExpiredCountdownFinalizesOnStatusRead(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	detected := start.Add(10*time.Minute + 3*time.Second)
	clk := &fakeClock{values: []time.Time{start, detected, detected}}
	uc, history, _, publisher := newInteractor(t, clk)

	if _, err := uc.Start(context.Background(), sessiondto.StartInput{Duration: 10 * time.Minute}); err != nil {
		t.Fatalf("start: %v", err)
	}

	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Running {
		t.Fatalf("expired session must not report running")
	}
	if status.Finalized == nil {
		t.Fatalf("expected the read to finalize the expired session")
	}
	// The end is stamped at detection, not at the planned deadline.
	if !status.Finalized.EndedAt.Equal(detected) {
		t.Fatalf("expected end at detection %s, got %s", detected, status.Finalized.EndedAt)
	}
	if status.Finalized.CompletionPercentage != 1 {
		t.Fatalf("expected 100%% completion, got %.2f", status.Finalized.CompletionPercentage)
	}
	if len(history.appends) != 1 {
		t.Fatalf("expected one history append, got %d", len(history.appends))
	}
	if len(publisher.ended) != 1 || !publisher.ended[0].completed {
		t.Fatalf("a full run must publish completed=true: %+v", publisher.ended)
	}

	again, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("second status: %v", err)
	}
	if again.Finalized != nil {
		t.Fatalf("finalization must happen exactly once")
	}
}

func TestStartWhileRunningKeepsOriginalSession(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{start, start.Add(time.Minute)}}
	uc, history, _, publisher := newInteractor(t, clk)

	first, err := uc.Start(context.Background(), sessiondto.StartInput{Duration: 20 * time.Minute})
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	second, err := uc.Start(context.Background(), sessiondto.StartInput{Duration: 5 * time.Minute})
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if !second.AlreadyRunning {
		t.Fatalf("expected second start to be a no-op")
	}
	if !second.StartedAt.Equal(first.StartedAt) || second.PlannedDuration != 20*time.Minute {
		t.Fatalf("no-op start must describe the original session, got %+v", second)
	}
	if len(history.appends) != 0 {
		t.Fatalf("no-op start must not finalize anything")
	}
	if len(publisher.started) != 1 {
		t.Fatalf("only the first start may announce, got %d", len(publisher.started))
	}
}

func TestStopWhileIdleIsNoOp(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)}}
	uc, history, sink, _ := newInteractor(t, clk)

	out, err := uc.Stop(context.Background())
	if err != nil {
		t.Fatalf("idle stop must not error: %v", err)
	}
	if out.Stopped {
		t.Fatalf("nothing should have been stopped")
	}
	if len(history.appends) != 0 || len(sink.records) != 0 {
		t.Fatalf("idle stop must not touch history or sinks")
	}
}

func TestCompanionSamplesMergeIntoActiveSession(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{start, start.Add(time.Minute), start.Add(2 * time.Minute)}}
	uc, history, _, _ := newInteractor(t, clk)

	// Samples arriving while idle are dropped silently.
	if err := uc.AddSamples(context.Background(), []sessiondto.SampleInput{{At: start, BPM: 61}}); err != nil {
		t.Fatalf("idle samples: %v", err)
	}

	if _, err := uc.Start(context.Background(), sessiondto.StartInput{Duration: 30 * time.Minute}); err != nil {
		t.Fatalf("start: %v", err)
	}
	err := uc.AddSamples(context.Background(), []sessiondto.SampleInput{
		{At: start.Add(10 * time.Second), BPM: 62},
		{At: start.Add(20 * time.Second), BPM: 59},
	})
	if err != nil {
		t.Fatalf("add samples: %v", err)
	}

	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.SampleCount != 2 {
		t.Fatalf("expected 2 samples attached, got %d", status.SampleCount)
	}

	stopped, err := uc.Stop(context.Background())
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !stopped.Stopped {
		t.Fatalf("expected a stopped session")
	}
	if len(history.appends) != 1 || len(history.appends[0].Samples) != 2 {
		t.Fatalf("expected samples to reach history, got %+v", history.appends)
	}
}

func TestStartRejectsNonPositiveDuration(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)}}
	uc, _, _, _ := newInteractor(t, clk)

	if _, err := uc.Start(context.Background(), sessiondto.StartInput{Duration: 0}); err == nil {
		t.Fatalf("zero duration must fail")
	}
	if _, err := uc.Start(context.Background(), sessiondto.StartInput{Duration: -time.Minute}); err == nil {
		t.Fatalf("negative duration must fail")
	}
}
