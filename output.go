package typology

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-typology/dataset"
	"github.com/jamesainslie/go-typology/internal/manifest"
	"github.com/jamesainslie/go-typology/profile"
)

// Subset names as they appear in results and manifests.
const (
	SubsetTrain = "train"
	SubsetValid = "valid"
	SubsetTest  = "test"
)

// File describes one written subset file.
type File struct {
	Subset   string
	Path     string
	Profiles int
	Rows     int
	Bytes    int
}

// Result is the outcome of Write.
type Result struct {
	Dataset  *Dataset
	Files    []File
	Manifest string // empty unless WithManifest was set
}

type subset struct {
	name     string
	file     string
	profiles []profile.Profile
}

func (g *Generator) subsets(ds *Dataset) []subset {
	return []subset{
		{name: SubsetTrain, file: g.cfg.files.Train, profiles: ds.Split.Train},
		{name: SubsetValid, file: g.cfg.files.Valid, profiles: ds.Split.Valid},
		{name: SubsetTest, file: g.cfg.files.Test, profiles: ds.Split.Test},
	}
}

// Write builds the dataset and writes the three subset files into dir,
// creating it if needed. Each file is rendered in memory and replaced
// atomically; the files are written in parallel.
func (g *Generator) Write(ctx context.Context, dir string) (*Result, error) {
	ds, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}
	return g.WriteDataset(ctx, ds, dir)
}

// WriteDataset writes an already built dataset into dir.
func (g *Generator) WriteDataset(ctx context.Context, ds *Dataset, dir string) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %w", ErrOutputWrite, dir, err)
	}

	subsets := g.subsets(ds)
	files := make([]File, len(subsets))

	eg, ctx := errgroup.WithContext(ctx)
	for i, s := range subsets {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, s.file)
			data := dataset.Serialize(s.profiles)
			if err := writeFileAtomic(path, data); err != nil {
				return err
			}
			files[i] = File{
				Subset:   s.name,
				Path:     path,
				Profiles: len(s.profiles),
				Rows:     dataset.RowCount(len(s.profiles)),
				Bytes:    len(data),
			}
			g.logger.Debug("wrote subset",
				slog.String("subset", s.name),
				slog.String("path", path),
				slog.Int("rows", files[i].Rows))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Dataset: ds, Files: files}
	if g.cfg.manifest != "" {
		path := g.cfg.manifest
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if err := g.writeManifest(path, res); err != nil {
			return nil, err
		}
		res.Manifest = path
	}
	return res, nil
}

func (g *Generator) writeManifest(path string, res *Result) error {
	run := manifest.Run{
		ID:        manifest.NewID(),
		Seed:      g.cfg.seed,
		CreatedAt: time.Now(),
		Source:    fmt.Sprint(g.source),
		Languages: res.Dataset.Languages,
		Profiles:  len(res.Dataset.Profiles),
	}
	for _, f := range res.Files {
		run.Subsets = append(run.Subsets, manifest.Subset{
			Name:     f.Subset,
			File:     filepath.Base(f.Path),
			Profiles: f.Profiles,
			Rows:     f.Rows,
			Bytes:    f.Bytes,
		})
	}

	data, err := manifest.Marshal(run)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	g.logger.Info("wrote manifest", slog.String("path", path), slog.String("run_id", run.ID))
	return nil
}

// writeFileAtomic writes data to a temp file next to path, then renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	return nil
}
