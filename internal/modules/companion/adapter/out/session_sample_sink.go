package out

import (
	"context"

	"zazen/internal/modules/companion/domain"
	companionout "zazen/internal/modules/companion/port/out"
	sessiondto "zazen/internal/modules/session/dto"
	sessionin "zazen/internal/modules/session/port/in"
)

var _ companionout.SampleSink = (*SessionSampleSink)(nil)

// SessionSampleSink forwards decoded companion readings to the timer.
// The timer usecase is bound after construction because the timer itself
// publishes lifecycle events through the companion bridge.
type SessionSampleSink struct {
	session sessionin.Usecase
}

func NewSessionSampleSink() *SessionSampleSink {
	return &SessionSampleSink{}
}

func (s *SessionSampleSink) Bind(session sessionin.Usecase) {
	s.session = session
}

func (s *SessionSampleSink) AddSamples(ctx context.Context, samples []domain.Sample) error {
	if s.session == nil {
		return nil
	}
	inputs := make([]sessiondto.SampleInput, 0, len(samples))
	for _, sample := range samples {
		inputs = append(inputs, sessiondto.SampleInput{At: sample.At, BPM: sample.BPM})
	}
	return s.session.AddSamples(ctx, inputs)
}
