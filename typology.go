package typology

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-typology/domain"
	"github.com/jamesainslie/go-typology/profile"
	"github.com/jamesainslie/go-typology/split"
	"github.com/jamesainslie/go-typology/table"
)

// Source supplies the raw feature table for a domain.
type Source interface {
	Table(d *domain.Domain) (name, text string, err error)
}

// Generator runs the join-and-encode pipeline over a Source.
// A Generator configured with WithRand must not be used concurrently.
type Generator struct {
	source Source
	cfg    config
	logger *slog.Logger
}

// New creates a Generator reading tables from src.
func New(src Source, opts ...Option) (*Generator, error) {
	if src == nil {
		return nil, ErrNoSource
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.ratios.Validate(); err != nil {
		return nil, err
	}

	return &Generator{
		source: src,
		cfg:    cfg,
		logger: cfg.logger,
	}, nil
}

// Dataset is the result of Build.
type Dataset struct {
	// Languages is the number of distinct join keys seen in any table.
	Languages int
	// Profiles are the completed profiles sorted by name.
	Profiles []profile.Profile
	Split    split.Split[profile.Profile]
}

// Merge loads all five tables and folds them into one draft per language.
// The passes run concurrently; each touches only its own domain slot.
func (g *Generator) Merge(ctx context.Context) (*profile.Set, error) {
	set := profile.NewSet()
	eg, ctx := errgroup.WithContext(ctx)

	for _, d := range domain.All() {
		eg.Go(func() error {
			name, text, err := g.source.Table(d)
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			n, err := set.MergeTable(d.ID(), table.Parse(name, text))
			if err != nil {
				return fmt.Errorf("merging %s: %w", d.Name(), err)
			}
			g.logger.Debug("merged table",
				slog.String("table", name),
				slog.String("domain", d.Name()),
				slog.Int("records", n))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

// Build merges the tables, keeps complete profiles and partitions them.
func (g *Generator) Build(ctx context.Context) (*Dataset, error) {
	set, err := g.Merge(ctx)
	if err != nil {
		return nil, err
	}

	profiles := set.Finalize()
	parts, err := split.Partition(profiles, g.shuffleRand(), g.cfg.ratios)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Languages: set.Len(),
		Profiles:  profiles,
		Split:     parts,
	}
	g.logger.Info("built dataset",
		slog.Int("languages", ds.Languages),
		slog.Int("complete", len(profiles)),
		slog.Int("dropped", ds.Languages-len(profiles)),
		slog.Int("train", len(parts.Train)),
		slog.Int("valid", len(parts.Valid)),
		slog.Int("test", len(parts.Test)))
	return ds, nil
}

// shuffleRand returns the shuffle generator for one Build.
func (g *Generator) shuffleRand() *rand.Rand {
	switch {
	case g.cfg.rng != nil:
		return g.cfg.rng
	case g.cfg.seed != nil:
		return split.NewRand(*g.cfg.seed)
	default:
		return split.RandomRand()
	}
}
