package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Outcome is the result of a successful Handle.
type Outcome struct {
	Before Product
	After  Product
	Events []Event
}

// Changed reports whether the update raised any event.
func (o Outcome) Changed() bool { return len(o.Events) > 0 }

// Handler runs one partial update: load, apply, save, publish.
type Handler struct {
	repo      Repository
	sink      EventSink
	log       *zap.Logger
	now       func() time.Time
	mutations Mutations
}

// Option configures a Handler.
type Option func(*Handler)

// WithEventSink sets where events go after a confirmed save.
func WithEventSink(s EventSink) Option { return func(h *Handler) { h.sink = s } }

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithClock sets the event timestamp source.
func WithClock(now func() time.Time) Option { return func(h *Handler) { h.now = now } }

// WithMutations replaces the update path table.
func WithMutations(m Mutations) Option { return func(h *Handler) { h.mutations = m } }

// NewHandler builds a Handler over repo.
func NewHandler(repo Repository, opts ...Option) *Handler {
	h := &Handler{
		repo:      repo,
		log:       zap.NewNop(),
		now:       time.Now,
		mutations: DefaultMutations(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Handle applies cmd to the stored product.
//
// The product is saved even when nothing changed, so a row deleted since the
// load is reported as ErrNotFound. Events reach the sink only once the save
// is confirmed and the request is still live; sink failures are logged and
// do not fail the update.
func (h *Handler) Handle(ctx context.Context, cmd Command) (Outcome, error) {
	log := h.log.With(zap.String("sku", cmd.SKU))

	before, err := h.repo.GetBySKU(ctx, cmd.SKU)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Outcome{}, err
		}
		return Outcome{}, fmt.Errorf("load product %s: %w", cmd.SKU, err)
	}

	after, events, err := ApplyWith(h.mutations, before, cmd, h.now().UTC())
	if err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	n, err := h.repo.Save(ctx, after)
	if err != nil {
		return Outcome{}, fmt.Errorf("save product %s: %w", cmd.SKU, err)
	}
	if n == 0 {
		return Outcome{}, ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		log.Warn("request cancelled during save; events not published", zap.Error(err))
		return Outcome{}, err
	}

	if len(events) > 0 {
		if doc, err := ChangeDocument(before, after); err != nil {
			log.Warn("build change document", zap.Error(err))
		} else {
			log.Info("product updated", zap.ByteString("change", doc), zap.Int("events", len(events)))
		}
		if h.sink != nil {
			// The save is committed; deliver even if the caller goes away now.
			if err := h.sink.Publish(context.WithoutCancel(ctx), events); err != nil {
				log.Error("publish events", zap.Error(err), zap.Int("events", len(events)))
			}
		}
	} else {
		log.Debug("product unchanged")
	}

	return Outcome{Before: before, After: after, Events: events}, nil
}
