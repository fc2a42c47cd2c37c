package events

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/reoring/catalogpatch/catalog"
)

// LogSink writes one log line per event.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink returns a sink logging at info level. nil means zap.NewNop().
func NewLogSink(l *zap.Logger) *LogSink {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogSink{log: l.Named("events")}
}

func (s *LogSink) Publish(_ context.Context, events []catalog.Event) error {
	for _, e := range events {
		env := Seal(e)
		s.log.Info("domain event",
			zap.String("event_id", env.ID.String()),
			zap.String("type", env.Type),
			zap.String("sku", env.SKU),
			zap.Any("old", env.Old),
			zap.Any("new", env.New),
			zap.Time("occurred_at", env.OccurredAt),
		)
	}
	return nil
}

// Recorder keeps published events in memory. Err, when set, is returned by
// Publish after recording.
type Recorder struct {
	mu     sync.Mutex
	events []catalog.Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, events []catalog.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return r.Err
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []catalog.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]catalog.Event(nil), r.events...)
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type multi []catalog.EventSink

// Multi fans events out to every sink. All sinks are called; their errors
// are combined.
func Multi(sinks ...catalog.EventSink) catalog.EventSink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) Publish(ctx context.Context, events []catalog.Event) error {
	var err error
	for _, s := range m {
		err = multierr.Append(err, s.Publish(ctx, events))
	}
	return err
}

type nop struct{}

func (nop) Publish(context.Context, []catalog.Event) error { return nil }

// Nop discards events.
func Nop() catalog.EventSink { return nop{} }
