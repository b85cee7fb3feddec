package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quarterback/quarterback/internal/config"
	"github.com/quarterback/quarterback/pkg/loader"
	"github.com/quarterback/quarterback/pkg/models"
	"github.com/quarterback/quarterback/pkg/store"
)

// app bundles the configuration, loader and snapshot cache behind the data
// accessors the subcommands use. The cache is owned here, never by the
// engine: engine calls always receive fully materialized snapshots.
type app struct {
	cfg       *config.Config
	logger    *logrus.Logger
	loader    *loader.Loader
	snapshots *store.Snapshots
	asOf      time.Time
}

func newApp(cfg *config.Config, logger *logrus.Logger) (*app, error) {
	asOf, err := cfg.ValuationDate()
	if err != nil {
		return nil, err
	}

	snapshots, err := store.New(cfg.CacheTTL(), logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		loader:    loader.New(logger),
		snapshots: snapshots,
		asOf:      asOf,
	}, nil
}

func (a *app) dataPath(name string) string {
	return filepath.Join(a.cfg.Data.Dir, name)
}

// cached runs parse on a cache miss, keyed by the file's content hash.
func cached[T any](a *app, kind, path string, parse func(string) ([]T, error)) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var rows []T
	hit, err := a.snapshots.Load(kind, raw, &rows)
	if err != nil {
		a.logger.WithError(err).WithField("kind", kind).Warn("Snapshot cache read failed")
	}
	if hit {
		return rows, nil
	}

	rows, err = parse(path)
	if err != nil {
		return nil, err
	}
	if err := a.snapshots.Save(kind, raw, rows); err != nil {
		a.logger.WithError(err).WithField("kind", kind).Warn("Snapshot cache write failed")
	}
	return rows, nil
}

func (a *app) positions() ([]models.Position, error) {
	return cached(a, "positions", a.dataPath(a.cfg.Data.PositionsFile), a.loader.Positions)
}

func (a *app) benchmark() ([]models.BenchmarkConstituent, error) {
	return cached(a, "benchmark", a.dataPath(a.cfg.Data.BenchmarkFile), a.loader.Benchmark)
}

func (a *app) futuresCurve() ([]models.FuturesContract, error) {
	return cached(a, "futures", a.dataPath(a.cfg.Data.FuturesFile), a.loader.FuturesCurve)
}

func (a *app) corpActions() ([]models.CorporateAction, error) {
	return cached(a, "corpactions", a.dataPath(a.cfg.Data.CorpActionsFile), a.loader.CorporateActions)
}

// printJSON writes a result record to stdout; rendering beyond plain JSON
// belongs to downstream consumers.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
