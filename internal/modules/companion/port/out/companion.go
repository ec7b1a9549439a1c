package out

import (
	"context"

	"zazen/internal/modules/companion/domain"
)

// Transport moves opaque frames between this process and paired devices.
type Transport interface {
	Run(ctx context.Context, addr string, onMessage func(context.Context, []byte)) error
	Broadcast(ctx context.Context, payload []byte) error
}

// SampleSink receives decoded biometric readings.
type SampleSink interface {
	AddSamples(ctx context.Context, samples []domain.Sample) error
}
