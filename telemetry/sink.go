package telemetry

import (
	"context"

	maestro "github.com/maestro-marketing/go-maestro"
)

// Collector is the slice of the learning loop the sink needs.
type Collector interface {
	CollectUserInteractions(ctx context.Context, interaction map[string]any) (bool, error)
}

// Sink forwards normalized session events to the interaction collector. It
// satisfies maestro.ActivitySink so it can be attached directly to a session
// store.
type Sink struct {
	collector Collector
	opts      []Option
}

var _ maestro.ActivitySink = (*Sink)(nil)

// NewSink builds a sink that publishes through the given collector, normally
// a maestro.LearningLoopService.
func NewSink(collector Collector, opts ...Option) *Sink {
	return &Sink{collector: collector, opts: opts}
}

// Record implements maestro.ActivitySink.
func (s *Sink) Record(ctx context.Context, event maestro.ActivityEvent) error {
	if s == nil || s.collector == nil {
		return nil
	}
	_, err := s.collector.CollectUserInteractions(ctx, Normalize(event, s.opts...).Interaction())
	return err
}
