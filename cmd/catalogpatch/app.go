package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/reoring/catalogpatch/catalog"
	"github.com/reoring/catalogpatch/config"
	"github.com/reoring/catalogpatch/events"
	"github.com/reoring/catalogpatch/i18n"
	"github.com/reoring/catalogpatch/server"
	"github.com/reoring/catalogpatch/store"
	"github.com/reoring/catalogpatch/store/memory"
	"github.com/reoring/catalogpatch/store/sqlite"
)

type productStore interface {
	catalog.Repository
	catalog.ReadService
	Seed(ctx context.Context, products []catalog.Product) (bool, error)
}

// app holds the wired dependencies of one command run.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  productStore
	sqlite *sqlite.Store
	outbox *events.OutboxSink
	sink   catalog.EventSink
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	switch strings.ToLower(cfg.Database.Driver) {
	case "memory":
		a.store = memory.New()
	default:
		if err := ensureDir(cfg.Database.DSN); err != nil {
			return nil, err
		}
		st, err := sqlite.Open(ctx, cfg.Database.DSN, log)
		if err != nil {
			return nil, err
		}
		a.store, a.sqlite = st, st
	}

	var sinks []catalog.EventSink
	switch strings.ToLower(cfg.Events.Sink) {
	case "log":
		sinks = append(sinks, events.NewLogSink(log))
	case "outbox":
		if a.sqlite == nil {
			a.Close()
			return nil, fmt.Errorf("outbox sink requires the sqlite driver")
		}
		ob, err := events.NewOutboxSink(ctx, a.sqlite.DB())
		if err != nil {
			a.Close()
			return nil, err
		}
		a.outbox = ob
		sinks = append(sinks, ob, events.NewLogSink(log))
	}
	a.sink = events.Multi(sinks...)

	if cfg.Database.Seed {
		if _, err := a.seed(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// ensureDir creates the parent directory of a file DSN.
func ensureDir(dsn string) error {
	if dsn == "" || strings.Contains(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	return nil
}

func (a *app) seed(ctx context.Context) (bool, error) {
	seeded, err := a.store.Seed(ctx, store.SeedProducts())
	if err != nil {
		return false, fmt.Errorf("seed products: %w", err)
	}
	return seeded, nil
}

func (a *app) handler() *catalog.Handler {
	return catalog.NewHandler(a.store,
		catalog.WithEventSink(a.sink),
		catalog.WithLogger(a.log.Named("catalog")),
	)
}

func (a *app) server() (*server.Server, error) {
	versions, err := server.NewVersions(a.cfg.API.DefaultVersion, a.cfg.API.Versions...)
	if err != nil {
		return nil, err
	}
	sc := server.Config{
		Handler:      a.handler(),
		Read:         a.store,
		Versions:     versions,
		Translator:   i18n.New(a.cfg.API.Language),
		Logger:       a.log,
		Development:  a.cfg.Server.Development,
		MaxBodyBytes: a.cfg.Server.MaxBodyBytes,
	}
	if a.sqlite != nil {
		db := a.sqlite.DB()
		sc.Health = db.PingContext
	}
	return server.New(sc)
}

func (a *app) Close() error {
	if a.sqlite == nil {
		return nil
	}
	return a.sqlite.Close()
}
